package handler

import (
	"net/http"

	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// AnalyticsHandler handles the per-form analytics endpoint
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Report handles GET /api/forms/{id}/analytics
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.analyticsSvc.FormReport(r.Context(), formID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
