// Package events provides a PostgreSQL-backed repository for calendar events.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dvolkov8/eventide/internal/common"
	"github.com/dvolkov8/eventide/internal/dbx"
	"github.com/dvolkov8/eventide/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all events sorted by start, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, starts_at, ends_at, all_day, created_at
		FROM events
		ORDER BY starts_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.AllDay, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Create inserts a new event.
func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (id, title, description, starts_at, ends_at, all_day)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.StartsAt, event.EndsAt, event.AllDay).
		Scan(&event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return event, nil
}

// Update overwrites the stored event.
func (r *PostgresRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, starts_at = $3, ends_at = $4, all_day = $5
		WHERE id = $6
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.Title, event.Description, event.StartsAt, event.EndsAt, event.AllDay, event.ID).
		Scan(&event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return event, nil
}

// Delete removes an event by id; absence is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM events
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
