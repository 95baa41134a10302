package handler

import (
	"encoding/json"
	"net/http"

	"formforge/internal/model"
	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// FormHandler handles form CRUD and bookmark endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// SaveFormRequest is the request body for creating or updating a form
type SaveFormRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
}

// Create handles POST /api/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.formSvc.Create(r.Context(), userID, req.Title, req.Description, req.Questions)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, form)
}

// List handles GET /api/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	forms, err := h.formSvc.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forms)
}

// ListBookmarked handles GET /api/forms/bookmarked
func (h *FormHandler) ListBookmarked(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	forms, err := h.formSvc.ListBookmarked(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forms)
}

// GetPublic handles GET /api/forms/{id}. Respondents fetch the published
// document here, so there is no auth.
func (h *FormHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	form, err := h.formSvc.GetPublic(r.Context(), formID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /api/forms/{id}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.formSvc.Update(r.Context(), formID, userID, req.Title, req.Description, req.Questions)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Delete handles DELETE /api/forms/{id}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.formSvc.Delete(r.Context(), formID, userID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Bookmark handles POST /api/forms/{id}/bookmark
func (h *FormHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookmarks, err := h.formSvc.ToggleBookmark(r.Context(), userID, formID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": bookmarks})
}
