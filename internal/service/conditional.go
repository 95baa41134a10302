package service

import (
	"strconv"
	"strings"
	"time"

	"formforge/internal/model"
)

const dateLayout = "2006-01-02"

// VisibleTargets evaluates a question's conditional block against the
// respondent's answer and returns the ids of the follow-up questions to
// reveal. Every matching rule contributes its targets, in rule order; a rule
// with an empty value or an unparsable comparison never matches. The function
// is pure and never panics on malformed input.
func VisibleTargets(q model.Question, answer model.AnswerValue) []string {
	if !q.Conditional.Enabled || answer.IsEmpty() {
		return nil
	}

	var targets []string
	for _, rule := range q.Conditional.Rules {
		if strings.TrimSpace(rule.Value) == "" {
			continue // incomplete rule, skip
		}
		if ruleMatches(q, rule, answer, time.Now()) {
			targets = append(targets, rule.Targets...)
		}
	}
	return targets
}

func ruleMatches(q model.Question, rule model.Rule, answer model.AnswerValue, now time.Time) bool {
	switch rule.Operator {
	case model.OpBefore, model.OpAfter, model.OpIs:
		return dateMatches(rule.Operator, answer, rule.Value)
	case model.OpGreater, model.OpGreaterEqual, model.OpLess, model.OpLessEqual,
		model.OpEqual, model.OpNotEqual:
		return numericMatches(q, rule, answer, now)
	}
	return false
}

func dateMatches(op model.Operator, answer model.AnswerValue, ruleValue string) bool {
	lhs, err := time.Parse(dateLayout, strings.TrimSpace(answer.Display()))
	if err != nil {
		return false
	}
	rhs, err := time.Parse(dateLayout, strings.TrimSpace(ruleValue))
	if err != nil {
		return false
	}

	switch op {
	case model.OpBefore:
		return lhs.Before(rhs)
	case model.OpAfter:
		return lhs.After(rhs)
	case model.OpIs:
		return lhs.Equal(rhs)
	}
	return false
}

func numericMatches(q model.Question, rule model.Rule, answer model.AnswerValue, now time.Time) bool {
	lhs, lhsOK := numericAnswer(q, answer, now)
	rhs, rhsOK := parseFloat(rule.Value)

	if lhsOK && rhsOK {
		switch rule.Operator {
		case model.OpGreater:
			return lhs > rhs
		case model.OpGreaterEqual:
			return lhs >= rhs
		case model.OpLess:
			return lhs < rhs
		case model.OpLessEqual:
			return lhs <= rhs
		case model.OpEqual:
			return lhs == rhs
		case model.OpNotEqual:
			return lhs != rhs
		}
		return false
	}

	// Equality still works for non-numeric answers (choice fields); ordering
	// operators fail closed.
	switch rule.Operator {
	case model.OpEqual:
		return answer.Display() == rule.Value
	case model.OpNotEqual:
		return answer.Display() != rule.Value
	}
	return false
}

func numericAnswer(q model.Question, answer model.AnswerValue, now time.Time) (float64, bool) {
	if q.Type == model.QuestionDatePicker && q.Conditional.Mode == model.ModeAge {
		birth, err := time.Parse(dateLayout, strings.TrimSpace(answer.Display()))
		if err != nil {
			return 0, false
		}
		return float64(ageAt(birth, now)), true
	}
	return answer.Float()
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ageAt returns whole years between birth and ref, never negative.
func ageAt(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(ref) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
