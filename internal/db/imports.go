package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RecordImport appends an import attempt to a profile's history.
func (db *DB) RecordImport(ctx context.Context, imp *ProfileImport) error {
	errs, err := json.Marshal(nonNilStrings(imp.Errors))
	if err != nil {
		return fmt.Errorf("failed to marshal import errors: %w", err)
	}
	warnings, err := json.Marshal(nonNilStrings(imp.Warnings))
	if err != nil {
		return fmt.Errorf("failed to marshal import warnings: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO profile_imports (profile_id, source, filename, content_hash, success, errors, warnings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		imp.ProfileID, imp.Source, imp.Filename, imp.ContentHash, imp.Success, errs, warnings,
	).Scan(&imp.ID, &imp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record import for profile %s: %w", imp.ProfileID, err)
	}
	return nil
}

// ListImports returns a profile's import history, newest first.
func (db *DB) ListImports(ctx context.Context, profileID uuid.UUID) ([]ProfileImport, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, source, filename, content_hash, success, errors, warnings, created_at
		 FROM profile_imports WHERE profile_id = $1
		 ORDER BY created_at DESC, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	imports := []ProfileImport{}
	for rows.Next() {
		var imp ProfileImport
		var errs, warnings []byte
		if err := rows.Scan(&imp.ID, &imp.ProfileID, &imp.Source, &imp.Filename, &imp.ContentHash,
			&imp.Success, &errs, &warnings, &imp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		if err := json.Unmarshal(errs, &imp.Errors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal import errors: %w", err)
		}
		if err := json.Unmarshal(warnings, &imp.Warnings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal import warnings: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return imports, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
