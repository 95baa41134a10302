package model

// GenerateFormRequest is the request body for POST /ai/generate-form.
type GenerateFormRequest struct {
	Prompt string `json:"prompt"`
}

// GeneratedElement is one question skeleton proposed by the AI. The editor
// turns these into full Question documents with fresh ids and default meta.
type GeneratedElement struct {
	Type     QuestionType `json:"type"`
	Label    string       `json:"label"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
}

// GeneratedForm is the form skeleton returned by the AI endpoint.
type GeneratedForm struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Elements    []GeneratedElement `json:"elements"`
}
