package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/subsel/internal/vocab"
)

// LoadOverrides returns every stored identifier.
// Results are ordered by domain, label COLLATE BINARY.
//
// Returns an empty slice (not nil) for an empty snapshot.
func (s *Store) LoadOverrides(ctx context.Context) ([]vocab.Override, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, label, id
		FROM valid_values
		ORDER BY domain COLLATE BINARY ASC, label COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query valid values: %w", err)
	}
	return scanOverrides(rows)
}

// ValidValues returns the stored identifiers of one domain, ordered by label.
func (s *Store) ValidValues(ctx context.Context, domain string) ([]vocab.Override, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, label, id
		FROM valid_values
		WHERE domain = ?
		ORDER BY label COLLATE BINARY ASC
	`, domain)
	if err != nil {
		return nil, fmt.Errorf("query valid values for %q: %w", domain, err)
	}
	return scanOverrides(rows)
}

func scanOverrides(rows *sql.Rows) ([]vocab.Override, error) {
	defer rows.Close()

	out := []vocab.Override{}
	for rows.Next() {
		var o vocab.Override
		if err := rows.Scan(&o.Domain, &o.Label, &o.ID); err != nil {
			return nil, fmt.Errorf("scan valid value: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate valid values: %w", err)
	}
	return out, nil
}

// Imports lists recorded imports in seq order.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, source, row_count, checksum
		FROM imports
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	out := []Import{}
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.Seq, &imp.Source, &imp.Rows, &imp.Checksum); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		out = append(out, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return out, nil
}

// Vocabulary returns base with every stored identifier applied.
func (s *Store) Vocabulary(ctx context.Context, base *vocab.Set) (*vocab.Set, error) {
	overrides, err := s.LoadOverrides(ctx)
	if err != nil {
		return nil, err
	}
	set, err := base.WithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("apply stored vocabulary: %w", err)
	}
	return set, nil
}
