package service

import (
	"context"

	"formforge/internal/cache"
	"formforge/internal/logx"
	"formforge/internal/model"
	"formforge/internal/repository"

	"github.com/google/uuid"
)

// FormService handles form CRUD, ownership checks and bookmarks.
type FormService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	userRepo     repository.UserRepo
	statsCache   cache.StatsCache
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, userRepo repository.UserRepo, statsCache cache.StatsCache) *FormService {
	return &FormService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		statsCache:   statsCache,
	}
}

// Create saves a new form for the given owner. Question ids are assigned when
// the editor did not provide them so responses have a stable reference.
func (s *FormService) Create(ctx context.Context, ownerID, title, description string, questions []model.Question) (*model.Form, error) {
	if title == "" {
		title = "Untitled Form"
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = string(questions[i].Type) + "_" + uuid.New().String()[:8]
		}
	}

	form := &model.Form{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Questions:   questions,
	}
	id, err := s.formRepo.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	form.ID = id
	return form, nil
}

// ListByOwner returns the caller's forms, newest first, annotated with their
// response counts.
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]model.FormWithCount, error) {
	forms, err := s.formRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, forms)
}

// ListBookmarked returns the caller's bookmarked forms with response counts.
// Bookmarks pointing at deleted forms are silently dropped.
func (s *FormService) ListBookmarked(ctx context.Context, userID string) ([]model.FormWithCount, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if len(user.Bookmarks) == 0 {
		return []model.FormWithCount{}, nil
	}

	forms, err := s.formRepo.GetByIDs(ctx, user.Bookmarks)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, forms)
}

func (s *FormService) withCounts(ctx context.Context, forms []*model.Form) ([]model.FormWithCount, error) {
	out := make([]model.FormWithCount, 0, len(forms))
	for _, form := range forms {
		count, err := s.responseCount(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.FormWithCount{Form: *form, ResponseCount: count})
	}
	return out, nil
}

func (s *FormService) responseCount(ctx context.Context, formID string) (int64, error) {
	if n, ok, err := s.statsCache.GetResponseCount(ctx, formID); err == nil && ok {
		return n, nil
	}
	n, err := s.responseRepo.CountByFormID(ctx, formID)
	if err != nil {
		return 0, err
	}
	if err := s.statsCache.SetResponseCount(ctx, formID, n); err != nil {
		logx.Warnf("forms: failed to cache response count for %s: %v", formID, err)
	}
	return n, nil
}

// GetPublic returns a form by id for respondents and bumps its view counter.
func (s *FormService) GetPublic(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	if err := s.formRepo.IncrementViews(ctx, id); err != nil {
		logx.Warnf("forms: failed to bump views for %s: %v", id, err)
	} else {
		form.Views++
	}
	return form, nil
}

// getOwned re-fetches a form and verifies the caller owns it. Every mutating
// operation goes through here; the client-supplied owner field is never
// trusted.
func (s *FormService) getOwned(ctx context.Context, id, ownerID string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	if form.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return form, nil
}

// GetOwned exposes the ownership check for collaborating services.
func (s *FormService) GetOwned(ctx context.Context, id, ownerID string) (*model.Form, error) {
	return s.getOwned(ctx, id, ownerID)
}

// Update replaces a form's title, description and questions, owner-only.
func (s *FormService) Update(ctx context.Context, id, ownerID, title, description string, questions []model.Question) (*model.Form, error) {
	form, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		form.Title = title
	}
	form.Description = description
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = string(questions[i].Type) + "_" + uuid.New().String()[:8]
		}
	}
	form.Questions = questions

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// Delete removes a form and cascades to all of its responses, owner-only.
func (s *FormService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.formRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.responseRepo.DeleteByFormID(ctx, id); err != nil {
		return err
	}
	if err := s.statsCache.InvalidateForm(ctx, id); err != nil {
		logx.Warnf("forms: failed to invalidate stats for %s: %v", id, err)
	}
	return nil
}

// ToggleBookmark flips the form's membership in the user's bookmark list and
// returns the updated list. Concurrent toggles are last-write-wins.
func (s *FormService) ToggleBookmark(ctx context.Context, userID, formID string) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	bookmarks := make([]string, 0, len(user.Bookmarks)+1)
	found := false
	for _, b := range user.Bookmarks {
		if b == formID {
			found = true
			continue
		}
		bookmarks = append(bookmarks, b)
	}
	if !found {
		bookmarks = append(bookmarks, formID)
	}

	if err := s.userRepo.UpdateBookmarks(ctx, userID, bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}
