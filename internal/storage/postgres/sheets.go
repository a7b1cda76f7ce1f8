package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// sheetTable holds one row per sheet; Pool.Ready requires it.
const sheetTable = "character_sheets"

// SheetRepository is a sheet.Store over the character_sheets and
// character_stats tables.
type SheetRepository struct {
	db *pgxpool.Pool
}

// NewSheetRepository creates a SheetRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSheetRepository(db *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{db: db}
}

// Load returns the sheet for id with attributes in their stored order.
//
// Postcondition: Returns the Sheet or sheet.ErrNotFound.
func (r *SheetRepository) Load(ctx context.Context, id int) (*sheet.Sheet, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM character_sheets WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("querying sheet: %w", err)
	}
	if !exists {
		return nil, sheet.ErrNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT name, value FROM character_stats
		WHERE sheet_id = $1 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[sheet.Entry])
	if err != nil {
		return nil, fmt.Errorf("scanning stat row: %w", err)
	}
	return sheet.FromEntries(entries), nil
}

// Save replaces every attribute of the sheet for id in one transaction and
// stamps its updated_at.
//
// Postcondition: Returns nil on success; the previous attributes are gone.
func (r *SheetRepository) Save(ctx context.Context, id int, s *sheet.Sheet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO character_sheets (id, updated_at) VALUES ($1, NOW())
		ON CONFLICT (id) DO UPDATE SET updated_at = NOW()`,
		id,
	); err != nil {
		return fmt.Errorf("upserting sheet: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM character_stats WHERE sheet_id = $1`, id); err != nil {
		return fmt.Errorf("clearing stats: %w", err)
	}

	entries := s.Entries()
	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{id, i, e.Name, e.Value}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"character_stats"},
		[]string{"sheet_id", "position", "name", "value"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copying stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing sheet: %w", err)
	}
	return nil
}

// List returns every stored sheet id in ascending order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SheetRepository) List(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM character_sheets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning sheet id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes the sheet for id and, by cascade, its attributes.
func (r *SheetRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM character_sheets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting sheet: %w", err)
	}
	return nil
}

// Purge removes sheets whose updated_at is older than maxAge.
//
// Postcondition: Returns the number of sheets removed.
func (r *SheetRepository) Purge(ctx context.Context, maxAge time.Duration) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM character_sheets WHERE updated_at < $1`,
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, fmt.Errorf("purging sheets: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Touch sets updated_at for id to at. It exists so retention can be exercised
// without waiting.
func (r *SheetRepository) Touch(ctx context.Context, id int, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE character_sheets SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touching sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sheet.ErrNotFound
	}
	return nil
}

var _ sheet.Store = (*SheetRepository)(nil)
