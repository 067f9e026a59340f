package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

type EventHandler struct {
	svc         *service.EventService
	occurrences *service.OccurrenceService
}

func NewEventHandler(svc *service.EventService, occurrences *service.OccurrenceService) *EventHandler {
	return &EventHandler{svc: svc, occurrences: occurrences}
}

// ServeHTTP routes /api/v1/events, /api/v1/events/{id}, /api/v1/events/{id}/status
// and /api/v1/events/{id}/occurrences/{date}[/status]
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/events")
	path = strings.TrimPrefix(path, "/")

	parts := strings.Split(path, "/")
	eventID := parts[0]

	if eventID != "" && len(parts) > 1 {
		switch parts[1] {
		case "status":
			h.handleUpdateStatus(w, r, eventID)
		case "occurrences":
			occurrenceRoutes(w, r, h.occurrences, schedule.KindEvent, eventID, parts[2:])
		default:
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		}
		return
	}

	// /api/v1/events/{id}
	if eventID != "" {
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, eventID)
		case http.MethodPut:
			h.handleUpdate(w, r, eventID)
		case http.MethodDelete:
			h.handleDelete(w, r, eventID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /api/v1/events
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	h.handleCreate(w, r)
}

type createEventRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Location    string                   `json:"location,omitempty"`
	Color       string                   `json:"color,omitempty"`
	AllDay      bool                     `json:"all_day,omitempty"`
	Status      string                   `json:"status,omitempty"`
	StartAt     *string                  `json:"start_at,omitempty"`
	EndAt       *string                  `json:"end_at,omitempty"`
	TagIDs      []string                 `json:"tag_ids,omitempty"`
	Recurrence  *service.RecurrenceInput `json:"recurrence,omitempty"`
}

func (h *EventHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Color:       req.Color,
		AllDay:      req.AllDay,
		Status:      req.Status,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		TagIDs:      req.TagIDs,
		Recurrence:  req.Recurrence,
	}

	event, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) handleGetByID(w http.ResponseWriter, r *http.Request, eventID string) {
	userID := getUserID(r)

	event, err := h.svc.GetByID(r.Context(), userID, eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

type updateEventRequest struct {
	Title           *string                  `json:"title,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	Location        *string                  `json:"location,omitempty"`
	Color           *string                  `json:"color,omitempty"`
	AllDay          *bool                    `json:"all_day,omitempty"`
	StartAt         *string                  `json:"start_at,omitempty"`
	EndAt           *string                  `json:"end_at,omitempty"`
	TagIDs          []string                 `json:"tag_ids,omitempty"`
	Recurrence      *service.RecurrenceInput `json:"recurrence,omitempty"`
	ClearRecurrence bool                     `json:"clear_recurrence,omitempty"`
}

func (h *EventHandler) handleUpdate(w http.ResponseWriter, r *http.Request, eventID string) {
	userID := getUserID(r)

	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Color:           req.Color,
		AllDay:          req.AllDay,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		TagIDs:          req.TagIDs,
		Recurrence:      req.Recurrence,
		ClearRecurrence: req.ClearRecurrence,
	}

	event, err := h.svc.Update(r.Context(), userID, eventID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request, eventID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, eventID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

func (h *EventHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, eventID string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	userID := getUserID(r)

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	event, err := h.svc.UpdateStatus(r.Context(), userID, eventID, model.EventStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}
