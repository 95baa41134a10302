package handler

import (
	"encoding/json"
	"net/http"

	"formforge/internal/model"
	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ResponseHandler handles submission and response-listing endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// SubmitRequest is the request body for an anonymous submission
type SubmitRequest struct {
	Answers []model.Answer `json:"answers"`
}

// Submit handles POST /api/forms/{id}/submit
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.responseSvc.Submit(r.Context(), formID, req.Answers)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// List handles GET /api/forms/{id}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.responseSvc.ListByForm(r.Context(), formID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if responses == nil {
		responses = []*model.Response{}
	}

	writeJSON(w, http.StatusOK, responses)
}
