package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/middleware"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

type occurrenceStatusRequest struct {
	Status string `json:"status"`
}

type occurrenceMoveRequest struct {
	StartAt *string `json:"start_at,omitempty"`
	EndAt   *string `json:"end_at,omitempty"`
}

// occurrenceRoutes serves the {id}/occurrences/{date} and
// {id}/occurrences/{date}/status sub-paths shared by the task and event
// handlers. parts is the path split after "occurrences".
func occurrenceRoutes(w http.ResponseWriter, r *http.Request, svc *service.OccurrenceService, kind schedule.Kind, seriesID string, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "occurrence date required")
		return
	}

	date, err := time.Parse(schedule.DateKeyLayout, parts[0])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "occurrence date must be YYYY-MM-DD")
		return
	}

	userID := getUserID(r)

	// {id}/occurrences/{date}/status
	if len(parts) > 1 && parts[1] == "status" {
		if r.Method != http.MethodPatch {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		var req occurrenceStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
		ov, err := svc.SetStatus(r.Context(), userID, kind, seriesID, date, req.Status)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ov)
		return
	}

	if len(parts) > 1 {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	// {id}/occurrences/{date}
	switch r.Method {
	case http.MethodPatch:
		var req occurrenceMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
		newStart, err := parseOptionalTime(req.StartAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid start_at format, expected RFC3339")
			return
		}
		newEnd, err := parseOptionalTime(req.EndAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid end_at format, expected RFC3339")
			return
		}
		ov, err := svc.Move(r.Context(), userID, kind, seriesID, date, newStart, newEnd)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ov)
	case http.MethodDelete:
		if err := svc.Delete(r.Context(), userID, kind, seriesID, date); err != nil {
			handleServiceError(w, err)
			return
		}
		WriteNoContent(w)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
