package model

import "time"

// SummaryType tags which shape of statistics a question summary carries.
type SummaryType string

const (
	SummaryText   SummaryType = "text"   // answered count + latest raw values
	SummaryNumber SummaryType = "number" // count, average, min, max
	SummaryChart  SummaryType = "chart"  // option frequency table
)

// OptionCount is one row of a categorical frequency table. Order is not
// significant; callers sort at render time.
type OptionCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// QuestionSummary is the display-ready aggregation of all answers to one
// question. Total counts every answer entry, including ones that failed
// numeric parsing in number mode.
type QuestionSummary struct {
	QuestionID string      `json:"questionId"`
	Label      string      `json:"label"`
	Type       SummaryType `json:"type"`
	Total      int         `json:"total"`

	// text mode
	Latest []AnswerValue `json:"latest,omitempty"`

	// number mode
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// chart mode
	Data []OptionCount `json:"data,omitempty"`
}

// FormReport bundles the summaries for every question of a form.
type FormReport struct {
	FormID      string            `json:"formId"`
	Total       int               `json:"total"`
	Questions   []QuestionSummary `json:"questions"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
