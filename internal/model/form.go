package model

import "time"

// QuestionType is the closed set of field kinds the editor can place on a form.
type QuestionType string

const (
	QuestionNameField   QuestionType = "nameField"
	QuestionEmailField  QuestionType = "emailField"
	QuestionPhoneField  QuestionType = "phoneField"
	QuestionShortText   QuestionType = "shortText"
	QuestionLongText    QuestionType = "longText"
	QuestionNumberField QuestionType = "numberField"
	QuestionDecimal     QuestionType = "decimalField"
	QuestionCurrency    QuestionType = "currencyField"
	QuestionFormula     QuestionType = "formulaField"
	QuestionSingleSel   QuestionType = "singleSelect"
	QuestionMultiSel    QuestionType = "multiSelect"
	QuestionDropdown    QuestionType = "dropdown"
	QuestionImageChoice QuestionType = "imageChoice"
	QuestionEmojiRating QuestionType = "emojiRating"
	QuestionStarRating  QuestionType = "starRating"
	QuestionSliderScale QuestionType = "sliderScale"
	QuestionMatrixGrid  QuestionType = "matrixGrid"
	QuestionDatePicker  QuestionType = "datePicker"
	QuestionTimePicker  QuestionType = "timePicker"
	QuestionDateTime    QuestionType = "dateTimeCombo"
	QuestionMonthYear   QuestionType = "monthYearPicker"
	QuestionFileUpload  QuestionType = "fileUpload"
	QuestionImageUpload QuestionType = "imageUpload"
	QuestionMediaUpload QuestionType = "mediaUpload"
)

// IsText reports whether answers to this kind are summarized as plain text.
func (t QuestionType) IsText() bool {
	switch t {
	case QuestionNameField, QuestionEmailField, QuestionPhoneField,
		QuestionShortText, QuestionLongText,
		QuestionDatePicker, QuestionTimePicker, QuestionDateTime, QuestionMonthYear:
		return true
	}
	return false
}

// IsNumeric reports whether answers to this kind are summarized numerically.
func (t QuestionType) IsNumeric() bool {
	switch t {
	case QuestionNumberField, QuestionDecimal, QuestionCurrency, QuestionFormula,
		QuestionStarRating, QuestionSliderScale:
		return true
	}
	return false
}

// Operator compares a respondent's answer against a rule value.
type Operator string

const (
	OpGreater      Operator = "gt"
	OpLess         Operator = "lt"
	OpGreaterEqual Operator = "gte"
	OpLessEqual    Operator = "lte"
	OpEqual        Operator = "eq"
	OpNotEqual     Operator = "neq"
	OpBefore       Operator = "before"
	OpAfter        Operator = "after"
	OpIs           Operator = "is"
)

// ConditionalMode selects how date answers are interpreted by rules.
type ConditionalMode string

const (
	ModeDate ConditionalMode = "date" // compare the answer as a calendar date
	ModeAge  ConditionalMode = "age"  // derive an age in years and compare numerically
)

// Rule reveals its target questions when the comparison matches.
type Rule struct {
	ID       string   `json:"id,omitempty" bson:"id,omitempty"`
	Operator Operator `json:"operator" bson:"operator"`
	Value    string   `json:"value" bson:"value"`
	Targets  []string `json:"targets,omitempty" bson:"targets,omitempty"`
}

// Conditional is the branching block attached to a question. Rules are
// evaluated in insertion order and every matching rule contributes its targets.
type Conditional struct {
	Enabled bool            `json:"enabled" bson:"enabled"`
	Mode    ConditionalMode `json:"mode,omitempty" bson:"mode,omitempty"`
	Rules   []Rule          `json:"rules,omitempty" bson:"rules,omitempty"`
}

// Meta carries the type-specific configuration of a question. The fields
// mirror the open map the editor historically sent; unknown keys are dropped.
type Meta struct {
	Options   []string `json:"options,omitempty" bson:"options,omitempty"`
	Rows      []string `json:"rows,omitempty" bson:"rows,omitempty"`
	Columns   []string `json:"columns,omitempty" bson:"columns,omitempty"`
	Min       *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" bson:"max,omitempty"`
	MaxStars  int      `json:"maxStars,omitempty" bson:"maxStars,omitempty"`
	MaxFiles  int      `json:"maxFiles,omitempty" bson:"maxFiles,omitempty"`
	MaxSizeMB int      `json:"maxSizeMB,omitempty" bson:"maxSizeMB,omitempty"`
}

// Question is one field definition on a form. The ID is assigned by the
// editor and stays stable across edits so responses keep referring to it.
type Question struct {
	ID          string       `json:"id" bson:"id"`
	Type        QuestionType `json:"type" bson:"type"`
	Label       string       `json:"label" bson:"label"`
	Required    bool         `json:"required" bson:"required"`
	Meta        Meta         `json:"meta" bson:"meta"`
	Conditional Conditional  `json:"conditional" bson:"conditional"`
}

// Form is a persistent document owned by exactly one user.
type Form struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	OwnerID     string     `json:"ownerId" bson:"ownerId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question `json:"questions" bson:"questions"`
	Views       int64      `json:"views" bson:"views"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// FormWithCount annotates a form with its response count for dashboard lists.
type FormWithCount struct {
	Form
	ResponseCount int64 `json:"responseCount"`
}
