package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/subsel/internal/vocab"
)

// Import records one ImportOverrides call.
type Import struct {
	ID       string
	Seq      int64
	Source   string
	Rows     int
	Checksum string
}

// PutValidValue inserts or replaces one identifier outside of any import.
// The row is checked against the built-in vocabulary first: an unknown
// domain or an empty label is rejected before anything is written.
func (s *Store) PutValidValue(ctx context.Context, o vocab.Override) error {
	if _, err := vocab.Default().WithOverrides([]vocab.Override{o}); err != nil {
		return fmt.Errorf("put valid value: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO valid_values (domain, label, id, import_id)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT(domain, label) DO UPDATE SET id = excluded.id, import_id = NULL
	`, o.Domain, o.Label, o.ID)
	if err != nil {
		return fmt.Errorf("put valid value: %w", err)
	}
	return nil
}

// DeleteValidValue removes one identifier. Deleting a missing row is not an error.
func (s *Store) DeleteValidValue(ctx context.Context, domain, label string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM valid_values WHERE domain = ? AND label = ?`, domain, label); err != nil {
		return fmt.Errorf("delete valid value: %w", err)
	}
	return nil
}

// ImportOverrides writes rows in a single transaction and records the
// import under a new UUIDv7 id. Either every row is written or none is.
//
// Rows replace existing identifiers with the same domain and label.
func (s *Store) ImportOverrides(ctx context.Context, source string, rows []vocab.Override) (Import, error) {
	if _, err := vocab.Default().WithOverrides(rows); err != nil {
		return Import{}, fmt.Errorf("import overrides: %w", err)
	}
	sum, err := Checksum(rows)
	if err != nil {
		return Import{}, fmt.Errorf("import overrides: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Import{}, fmt.Errorf("import overrides: generate id: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, fmt.Errorf("import overrides: begin: %w", err)
	}
	defer tx.Rollback()

	imp := Import{ID: id.String(), Source: source, Rows: len(rows), Checksum: sum}
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM imports`).Scan(&imp.Seq); err != nil {
		return Import{}, fmt.Errorf("import overrides: next seq: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO imports (id, seq, source, row_count, checksum)
		VALUES (?, ?, ?, ?, ?)
	`, imp.ID, imp.Seq, imp.Source, imp.Rows, imp.Checksum); err != nil {
		return Import{}, fmt.Errorf("import overrides: record import: %w", err)
	}

	if err := upsertRows(ctx, tx, imp.ID, rows); err != nil {
		return Import{}, err
	}

	if err := tx.Commit(); err != nil {
		return Import{}, fmt.Errorf("import overrides: commit: %w", err)
	}
	return imp, nil
}

func upsertRows(ctx context.Context, tx *sql.Tx, importID string, rows []vocab.Override) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO valid_values (domain, label, id, import_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain, label) DO UPDATE SET id = excluded.id, import_id = excluded.import_id
	`)
	if err != nil {
		return fmt.Errorf("import overrides: prepare: %w", err)
	}
	defer stmt.Close()

	for _, o := range rows {
		if _, err := stmt.ExecContext(ctx, o.Domain, o.Label, o.ID, importID); err != nil {
			return fmt.Errorf("import overrides: %s/%s: %w", o.Domain, o.Label, err)
		}
	}
	return nil
}
