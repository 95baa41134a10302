package service

import (
	"context"
	"math"
	"time"

	"formforge/internal/cache"
	"formforge/internal/logx"
	"formforge/internal/model"
	"formforge/internal/repository"
)

// latestAnswers is how many raw values a text summary carries.
const latestAnswers = 5

// Summarize aggregates every answer to one question across the given
// responses into a display-ready summary. Responses are expected newest
// first, which is how the repository returns them. The function does not
// mutate its inputs and recomputes from scratch on every call.
func Summarize(q model.Question, responses []*model.Response) model.QuestionSummary {
	var answers []model.AnswerValue
	for _, resp := range responses {
		for _, a := range resp.Answers {
			if a.QuestionID == q.ID {
				answers = append(answers, a.Value)
			}
		}
	}

	summary := model.QuestionSummary{
		QuestionID: q.ID,
		Label:      q.Label,
		Total:      len(answers),
	}

	switch {
	case q.Type.IsText():
		summary.Type = model.SummaryText
		n := len(answers)
		if n > latestAnswers {
			n = latestAnswers
		}
		summary.Latest = append([]model.AnswerValue{}, answers[:n]...)

	case q.Type.IsNumeric():
		summary.Type = model.SummaryNumber
		var values []float64
		for _, v := range answers {
			if f, ok := v.Float(); ok {
				values = append(values, f)
			}
		}
		if len(values) > 0 {
			sum, min, max := 0.0, values[0], values[0]
			for _, f := range values {
				sum += f
				if f < min {
					min = f
				}
				if f > max {
					max = f
				}
			}
			summary.Avg = math.Round(sum/float64(len(values))*100) / 100
			summary.Min = min
			summary.Max = max
		}

	default:
		summary.Type = model.SummaryChart
		counts := make(map[string]int)
		for _, v := range answers {
			for _, bucket := range v.Buckets() {
				counts[bucket]++
			}
		}
		summary.Data = make([]model.OptionCount, 0, len(counts))
		for name, value := range counts {
			summary.Data = append(summary.Data, model.OptionCount{Name: name, Value: value})
		}
	}

	return summary
}

// AnalyticsService produces per-form analytics reports, with a short-lived
// Redis cache in front of the recomputation.
type AnalyticsService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, statsCache cache.StatsCache) *AnalyticsService {
	return &AnalyticsService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		statsCache:   statsCache,
	}
}

// FormReport returns the aggregated analytics for a form, restricted to its
// owner.
func (s *AnalyticsService) FormReport(ctx context.Context, formID, ownerID string) (*model.FormReport, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	if form.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if cached, err := s.statsCache.GetReport(ctx, formID); err == nil && cached != nil {
		return cached, nil
	}

	responses, err := s.responseRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	report := &model.FormReport{
		FormID:      formID,
		Total:       len(responses),
		Questions:   make([]model.QuestionSummary, 0, len(form.Questions)),
		GeneratedAt: time.Now(),
	}
	for _, q := range form.Questions {
		report.Questions = append(report.Questions, Summarize(q, responses))
	}

	if err := s.statsCache.SetReport(ctx, report); err != nil {
		logx.Warnf("analytics: failed to cache report for form %s: %v", formID, err)
	}
	return report, nil
}
