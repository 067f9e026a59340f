package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

type TaskHandler struct {
	svc         *service.TaskService
	occurrences *service.OccurrenceService
}

func NewTaskHandler(svc *service.TaskService, occurrences *service.OccurrenceService) *TaskHandler {
	return &TaskHandler{svc: svc, occurrences: occurrences}
}

// ServeHTTP routes /api/v1/tasks, /api/v1/tasks/{id}, /api/v1/tasks/{id}/status
// and /api/v1/tasks/{id}/occurrences/{date}[/status]
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.TrimPrefix(path, "/")

	parts := strings.Split(path, "/")
	taskID := parts[0]

	if taskID != "" && len(parts) > 1 {
		switch parts[1] {
		case "status":
			h.handleUpdateStatus(w, r, taskID)
		case "occurrences":
			occurrenceRoutes(w, r, h.occurrences, schedule.KindTask, taskID, parts[2:])
		default:
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		}
		return
	}

	// /api/v1/tasks/{id}
	if taskID != "" {
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, taskID)
		case http.MethodPut:
			h.handleUpdate(w, r, taskID)
		case http.MethodDelete:
			h.handleDelete(w, r, taskID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /api/v1/tasks
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	h.handleCreate(w, r)
}

type createTaskRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	ProjectID   *string                  `json:"project_id,omitempty"`
	Status      string                   `json:"status,omitempty"`
	Priority    string                   `json:"priority,omitempty"`
	Complexity  string                   `json:"complexity,omitempty"`
	DurationMin int                      `json:"duration_min,omitempty"`
	StartAt     *string                  `json:"start_at,omitempty"`
	EndAt       *string                  `json:"end_at,omitempty"`
	TagIDs      []string                 `json:"tag_ids,omitempty"`
	Recurrence  *service.RecurrenceInput `json:"recurrence,omitempty"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Status:      req.Status,
		Priority:    req.Priority,
		Complexity:  req.Complexity,
		DurationMin: req.DurationMin,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		TagIDs:      req.TagIDs,
		Recurrence:  req.Recurrence,
	}

	task, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleGetByID(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	task, err := h.svc.GetByID(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title           *string                  `json:"title,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	ProjectID       *string                  `json:"project_id,omitempty"`
	Priority        *string                  `json:"priority,omitempty"`
	Complexity      *string                  `json:"complexity,omitempty"`
	DurationMin     *int                     `json:"duration_min,omitempty"`
	StartAt         *string                  `json:"start_at,omitempty"`
	EndAt           *string                  `json:"end_at,omitempty"`
	TagIDs          []string                 `json:"tag_ids,omitempty"`
	Recurrence      *service.RecurrenceInput `json:"recurrence,omitempty"`
	ClearRecurrence bool                     `json:"clear_recurrence,omitempty"`
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		ProjectID:       req.ProjectID,
		Priority:        req.Priority,
		Complexity:      req.Complexity,
		DurationMin:     req.DurationMin,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		TagIDs:          req.TagIDs,
		Recurrence:      req.Recurrence,
		ClearRecurrence: req.ClearRecurrence,
	}

	task, err := h.svc.Update(r.Context(), userID, taskID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, taskID string) {
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

	task, err := h.svc.UpdateStatus(r.Context(), userID, taskID, model.TaskStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}
