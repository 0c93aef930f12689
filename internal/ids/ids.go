// Package ids derives stable identifiers for profile list entries.
package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// namespace roots every generator so profile ids never collide with other UUIDv5 users.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://portfolio-builder/profile-entries"))

// Generator issues UUIDv5 ids derived from a seed. The same seed, kind and
// index always yield the same id, which keeps extraction idempotent.
type Generator struct {
	ns uuid.UUID
}

// New returns a generator seeded by the input being transformed.
func New(seed string) *Generator {
	return &Generator{ns: uuid.NewSHA1(namespace, []byte(seed))}
}

// ID returns the id for the index-th entry of the given kind.
func (g *Generator) ID(kind string, index int) string {
	return uuid.NewSHA1(g.ns, []byte(fmt.Sprintf("%s/%d", kind, index))).String()
}

// Rekey returns id unchanged when it is free, otherwise a deterministic
// replacement that is not in taken. The returned id is added to taken.
func Rekey(id string, taken map[string]struct{}) string {
	candidate := id
	for attempt := 1; ; attempt++ {
		if _, used := taken[candidate]; !used && candidate != "" {
			taken[candidate] = struct{}{}
			return candidate
		}
		candidate = uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s#%d", id, attempt))).String()
	}
}
