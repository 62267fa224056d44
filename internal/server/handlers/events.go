package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dvolkov8/eventide/internal/logging"
	"github.com/dvolkov8/eventide/internal/server/models"
	"github.com/dvolkov8/eventide/pkg/api"
)

// EventService is the calendar surface the event endpoints need.
// Implemented by services.EventService.
type EventService interface {
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler serves /api/v1/events.
type EventHandler struct {
	logger logging.Logger
	events EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(logger logging.Logger, events EventService) *EventHandler {
	return &EventHandler{logger: logger, events: events}
}

// List handles GET /api/v1/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.events.List(ctx)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	out := make([]api.EventResponse, len(items))
	for i, e := range items {
		out[i] = eventResponse(&e)
	}
	sendJSON(w, out, http.StatusOK)
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	created, err := h.events.Create(ctx, event)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	h.logger.Info(ctx, "event created", "event_id", created.ID)
	sendJSON(w, eventResponse(created), http.StatusCreated)
}

// Update handles PUT /api/v1/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		sendError(w, "event id is required", http.StatusBadRequest)
		return
	}

	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	event.ID = id

	updated, err := h.events.Update(ctx, event)
	if err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	sendJSON(w, eventResponse(updated), http.StatusOK)
}

// Delete handles DELETE /api/v1/events/{id}. Deleting a missing event still
// returns 204.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		sendError(w, "event id is required", http.StatusBadRequest)
		return
	}

	if err := h.events.Delete(ctx, id); err != nil {
		sendDomainError(ctx, w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	var req api.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if req.Title == "" {
		sendError(w, "title is required", http.StatusBadRequest)
		return nil, false
	}
	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		sendError(w, "end must not precede start", http.StatusBadRequest)
		return nil, false
	}
	return &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AllDay:      req.AllDay,
	}, true
}

func eventResponse(e *models.Event) api.EventResponse {
	return api.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		AllDay:      e.AllDay,
		CreatedAt:   e.CreatedAt,
	}
}
