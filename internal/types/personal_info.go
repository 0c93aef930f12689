package types

import "encoding/json"

// PersonalInfo scalars that can be cleared on purpose, by JSON name.
var personalInfoScalars = []string{"fullName", "title", "location", "email", "phone", "avatarUrl"}

// personalInfoFields has PersonalInfo's fields without its JSON methods.
type personalInfoFields PersonalInfo

// field returns the scalar behind a JSON name, or nil.
func (pi *PersonalInfo) field(name string) *string {
	switch name {
	case "fullName":
		return &pi.FullName
	case "title":
		return &pi.Title
	case "location":
		return &pi.Location
	case "email":
		return &pi.Email
	case "phone":
		return &pi.Phone
	case "avatarUrl":
		return &pi.AvatarURL
	}
	return nil
}

// IsBlank reports whether the field named by its JSON name is present but
// empty, as opposed to never set.
func (pi *PersonalInfo) IsBlank(name string) bool {
	if pi == nil || !pi.blank[name] {
		return false
	}
	f := pi.field(name)
	return f != nil && *f == ""
}

// MarkBlank records the field named by its JSON name as present. It only
// reads as blank while the field stays empty.
func (pi *PersonalInfo) MarkBlank(name string) {
	if pi.field(name) == nil {
		return
	}
	if pi.blank == nil {
		pi.blank = make(map[string]bool)
	}
	pi.blank[name] = true
}

// BlankFields lists the JSON names of present-but-blank scalars.
func (pi *PersonalInfo) BlankFields() []string {
	var names []string
	for _, name := range personalInfoScalars {
		if pi.IsBlank(name) {
			names = append(names, name)
		}
	}
	return names
}

// UnmarshalJSON remembers scalars sent as "" so they survive a round trip.
func (pi *PersonalInfo) UnmarshalJSON(data []byte) error {
	var plain personalInfoFields
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*pi = PersonalInfo(plain)
	pi.blank = nil
	for _, name := range personalInfoScalars {
		if v, ok := raw[name]; ok && string(v) != "null" && *pi.field(name) == "" {
			pi.MarkBlank(name)
		}
	}
	return nil
}

// MarshalJSON writes blank-marked scalars as "" instead of omitting them.
func (pi PersonalInfo) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(personalInfoFields(pi))
	if err != nil {
		return nil, err
	}

	blanks := pi.BlankFields()
	if len(blanks) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for _, name := range blanks {
		obj[name] = json.RawMessage(`""`)
	}
	return json.Marshal(obj)
}
