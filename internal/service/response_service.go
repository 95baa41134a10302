package service

import (
	"context"
	"fmt"

	"formforge/internal/cache"
	"formforge/internal/logx"
	"formforge/internal/model"
	"formforge/internal/repository"
)

// ResponseService handles anonymous submissions and owner-scoped reads.
type ResponseService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
	broadcaster  Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, statsCache cache.StatsCache) *ResponseService {
	return &ResponseService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		statsCache:   statsCache,
	}
}

// SetBroadcaster injects the live-feed hub for submission events.
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SubmittedEvent is pushed to the owner's live analytics feed on every
// submission.
type SubmittedEvent struct {
	FormID     string `json:"formId"`
	ResponseID string `json:"responseId"`
	Total      int64  `json:"total"`
}

// Submit stores an anonymous submission after checking the form exists and
// every required question was answered.
func (s *ResponseService) Submit(ctx context.Context, formID string, answers []model.Answer) (*model.Response, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	answered := make(map[string]model.AnswerValue, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = a.Value
	}

	// A follow-up question behind a branching rule only exists for the
	// respondent once a rule reveals it, so Required is enforced against the
	// revealed set, not the whole form.
	dependent := make(map[string]bool)
	visible := make(map[string]bool)
	for _, q := range form.Questions {
		if !q.Conditional.Enabled {
			continue
		}
		for _, rule := range q.Conditional.Rules {
			for _, target := range rule.Targets {
				dependent[target] = true
			}
		}
		for _, target := range VisibleTargets(q, answered[q.ID]) {
			visible[target] = true
		}
	}

	for _, q := range form.Questions {
		if !q.Required {
			continue
		}
		if dependent[q.ID] && !visible[q.ID] {
			continue
		}
		if v, ok := answered[q.ID]; !ok || v.IsEmpty() {
			return nil, fmt.Errorf("%w: %q requires an answer", ErrInvalidInput, q.Label)
		}
	}

	response := &model.Response{
		FormID:  formID,
		Answers: answers,
	}
	id, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return nil, err
	}
	response.ID = id

	if err := s.statsCache.InvalidateForm(ctx, formID); err != nil {
		logx.Warnf("responses: failed to invalidate stats for %s: %v", formID, err)
	}

	if s.broadcaster != nil {
		total, err := s.responseRepo.CountByFormID(ctx, formID)
		if err != nil {
			total = 0
		}
		s.broadcaster.BroadcastToOwner(formID, "response_submitted", SubmittedEvent{
			FormID:     formID,
			ResponseID: id,
			Total:      total,
		})
	}

	return response, nil
}

// ListByForm returns all responses for a form, newest first, owner-only.
func (s *ResponseService) ListByForm(ctx context.Context, formID, ownerID string) ([]*model.Response, error) {
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

	return s.responseRepo.GetByFormID(ctx, formID)
}
