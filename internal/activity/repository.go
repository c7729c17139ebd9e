package activity

import (
	"context"
	"database/sql"
	"strconv"
)

// Repository persists activity events in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the activity table when missing.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hostel_activity (
			id          UUID PRIMARY KEY,
			collection  TEXT NOT NULL,
			action      TEXT NOT NULL,
			position    INTEGER NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_hostel_activity_time ON hostel_activity (occurred_at DESC);
	`)
	return err
}

// Record inserts an event. Redelivered events are ignored.
func (r *Repository) Record(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO hostel_activity (id, collection, action, position, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.Collection, e.Action, e.Position, e.OccurredAt)
	return err
}

// List returns the newest events first, optionally filtered by collection.
func (r *Repository) List(ctx context.Context, collection string, limit int) ([]Event, error) {
	query, args := listQuery(collection, limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Collection, &e.Action, &e.Position, &e.OccurredAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// listQuery builds the List statement. Limits outside 1..500 fall back to 50.
func listQuery(collection string, limit int) (string, []any) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := `SELECT id, collection, action, position, occurred_at FROM hostel_activity`
	args := []any{}
	if collection != "" {
		query += ` WHERE collection = $1`
		args = append(args, collection)
	}
	query += ` ORDER BY occurred_at DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)
	return query, args
}
