package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aandrewjuan1/planner-api/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ServeHTTP routes /api/v1/projects and /api/v1/projects/{id}
func (h *ProjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/projects")
	path = strings.TrimPrefix(path, "/")

	if strings.Contains(path, "/") {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	projectID := path

	if projectID != "" {
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, projectID)
		case http.MethodPut:
			h.handleUpdate(w, r, projectID)
		case http.MethodDelete:
			h.handleDelete(w, r, projectID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

func (h *ProjectHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	project, err := h.svc.Create(r.Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) handleGetByID(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := getUserID(r)

	project, err := h.svc.GetByID(r.Context(), userID, projectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *ProjectHandler) handleUpdate(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := getUserID(r)

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	project, err := h.svc.Update(r.Context(), userID, projectID, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) handleDelete(w http.ResponseWriter, r *http.Request, projectID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, projectID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

func (h *ProjectHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	projects, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"projects": projects})
}
