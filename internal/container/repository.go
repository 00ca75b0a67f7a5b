package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository persists registry snapshots. The Registry stays authoritative;
// a repository only lets state survive a restart.
type Repository interface {
	// List returns all saved entries ordered by id.
	List(ctx context.Context) ([]Entry, error)

	// LastID returns the highest id ever issued.
	LastID(ctx context.Context) (int, error)

	// Save inserts or replaces an entry and raises the saved id counter to at
	// least its id.
	Save(ctx context.Context, entry Entry) error

	// Delete removes an entry. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int) error

	// Clear removes every entry and resets the saved id counter to 0.
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository using the containers and
// container_sequence tables from the migrations package.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open, migrated SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// List returns all saved entries ordered by id.
func (r *SQLiteRepository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, capacity, level
		FROM containers
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying containers: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e               Entry
			capacity, level float64
		)
		if err := rows.Scan(&e.ID, &e.Name, &capacity, &level); err != nil {
			return nil, fmt.Errorf("scanning container row: %w", err)
		}
		e.Container = New(capacity, level)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating containers: %w", err)
	}
	return entries, nil
}

// LastID returns the saved id counter.
func (r *SQLiteRepository) LastID(ctx context.Context) (int, error) {
	var lastID int
	err := r.db.QueryRowContext(ctx, "SELECT last_id FROM container_sequence WHERE id = 1").Scan(&lastID)
	if err != nil {
		return 0, fmt.Errorf("querying container sequence: %w", err)
	}
	return lastID, nil
}

// Save upserts the entry and advances the id counter in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, entry Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO containers (id, name, capacity, level, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			capacity = excluded.capacity,
			level = excluded.level,
			updated_at = excluded.updated_at`,
		entry.ID,
		entry.Name,
		entry.Container.Capacity(),
		entry.Container.Level(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving container: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE container_sequence SET last_id = MAX(last_id, ?) WHERE id = 1",
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("advancing container sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing container: %w", err)
	}
	return nil
}

// Delete removes the entry with the given id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM containers WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting container: %w", err)
	}
	return nil
}

// Clear removes every entry and resets the id counter.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM containers"); err != nil {
		return fmt.Errorf("clearing containers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE container_sequence SET last_id = 0 WHERE id = 1"); err != nil {
		return fmt.Errorf("resetting container sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}
