// Package events declares the persistence contract for calendar events.
package events

import (
	"context"

	"github.com/dvolkov8/eventide/internal/server/models"
)

// Repository persists calendar events.
type Repository interface {
	// List returns all events, most recent start first.
	List(ctx context.Context) ([]models.Event, error)

	// Create inserts a new event with a caller-assigned id.
	Create(ctx context.Context, event *models.Event) (*models.Event, error)

	// Update overwrites an existing event. Returns common.ErrorNotFound if
	// the event is absent.
	Update(ctx context.Context, event *models.Event) (*models.Event, error)

	// Delete removes an event by id. Deleting a non-existent event is not an
	// error.
	Delete(ctx context.Context, id string) error
}
