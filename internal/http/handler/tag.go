package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aandrewjuan1/planner-api/internal/service"
)

type TagHandler struct {
	svc *service.TagService
}

func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// ServeHTTP routes /api/v1/tags and /api/v1/tags/{id}
func (h *TagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tags")
	path = strings.TrimPrefix(path, "/")

	if strings.Contains(path, "/") {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	tagID := path

	if tagID != "" {
		if r.Method != http.MethodDelete {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleDelete(w, r, tagID)
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

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (h *TagHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	tag, err := h.svc.Create(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) handleDelete(w http.ResponseWriter, r *http.Request, tagID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, tagID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

func (h *TagHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	tags, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"tags": tags})
}
