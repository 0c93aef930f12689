package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func encodeRecord(record *types.ProfileRecord) ([]byte, error) {
	if record == nil {
		record = &types.ProfileRecord{}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, &RecordError{Message: "failed to marshal profile record", Cause: err}
	}
	return data, nil
}

func decodeRecord(data []byte) (*types.ProfileRecord, error) {
	var record types.ProfileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &RecordError{Message: "failed to unmarshal profile record", Cause: err}
	}
	return &record, nil
}

// SaveProfile stores a new profile snapshot and returns it with its id and timestamps.
func (db *DB) SaveProfile(ctx context.Context, owner, source string, record *types.ProfileRecord) (*Profile, error) {
	data, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}

	p := &Profile{Owner: owner, Source: source, Record: record.Clone()}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (owner, source, record)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		owner, source, data,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// UpdateProfile replaces the record of an existing profile.
// Returns *NotFoundError when no profile has the id.
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, source string, record *types.ProfileRecord) (*Profile, error) {
	data, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}

	p := &Profile{ID: id, Source: source, Record: record.Clone()}
	err = db.pool.QueryRow(ctx,
		`UPDATE profiles SET source = $2, record = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING owner, created_at, updated_at`,
		id, source, data,
	).Scan(&p.Owner, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to update profile %s: %w", id, err)
	}
	return p, nil
}

// GetProfile retrieves a profile by id. Returns nil, nil when it does not exist.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, owner, source, record, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Owner, &p.Source, &data, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	if p.Record, err = decodeRecord(data); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProfiles returns profiles, most recently updated first.
func (db *DB) ListProfiles(ctx context.Context, opts ListOptions) ([]Profile, error) {
	opts = opts.normalized()

	rows, err := db.pool.Query(ctx,
		`SELECT id, owner, source, record, created_at, updated_at
		 FROM profiles
		 WHERE ($1 = '' OR owner = $1)
		 ORDER BY updated_at DESC, id
		 LIMIT $2 OFFSET $3`,
		opts.Owner, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		var data []byte
		if err := rows.Scan(&p.ID, &p.Owner, &p.Source, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if p.Record, err = decodeRecord(data); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile and its import history.
// Returns *NotFoundError when no profile has the id.
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}
