package handler

import (
	"encoding/json"
	"net/http"

	"formforge/internal/model"
	"formforge/internal/service"
)

// AIHandler handles the AI form-generation endpoint
type AIHandler struct {
	generatorSvc *service.GeneratorService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(generatorSvc *service.GeneratorService) *AIHandler {
	return &AIHandler{generatorSvc: generatorSvc}
}

// GenerateForm handles POST /api/ai/generate-form
func (h *AIHandler) GenerateForm(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.generatorSvc.Generate(r.Context(), req.Prompt)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}
