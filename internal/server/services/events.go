package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvolkov8/eventide/internal/server/models"
	"github.com/dvolkov8/eventide/internal/server/repositories/repomanager"
)

// EventService manages calendar events. It assigns ids on creation and
// delegates persistence to the events repository.
type EventService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewEventService constructs an EventService.
func NewEventService(db *sql.DB, m repomanager.RepositoryManager) *EventService {
	return &EventService{db: db, repos: m}
}

// List returns all events, most recent start first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	items, err := s.repos.Events(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return items, nil
}

// Create stores a new event under a freshly generated id. Any id set by the
// caller is discarded.
func (s *EventService) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.ID = uuid.NewString()

	created, err := s.repos.Events(s.db).Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return created, nil
}

// Update overwrites an existing event. Updating an absent event fails with
// common.ErrorNotFound.
func (s *EventService) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	updated, err := s.repos.Events(s.db).Update(ctx, event)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an event by id. Deleting a missing event succeeds.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Events(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}
