package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"formforge/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("user%d", r.seq)
	u := *user
	u.ID = id
	u.CreatedAt = time.Now()
	r.users[id] = &u
	return id, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateBookmarks(ctx context.Context, id string, bookmarks []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.Bookmarks = bookmarks
	return nil
}

type fakeFormRepo struct {
	mu    sync.Mutex
	seq   int
	forms map[string]*model.Form
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: make(map[string]*model.Form)}
}

func (r *fakeFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("form%d", r.seq)
	f := *form
	f.ID = id
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	r.forms[id] = &f
	return id, nil
}

func (r *fakeFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFormRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Form
	for _, f := range r.forms {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeFormRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Form
	for _, id := range ids {
		if f, ok := r.forms[id]; ok {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFormRepo) Update(ctx context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.forms[form.ID]; !ok {
		return fmt.Errorf("form %s not found", form.ID)
	}
	f := *form
	f.UpdatedAt = time.Now()
	r.forms[form.ID] = &f
	return nil
}

func (r *fakeFormRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

func (r *fakeFormRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[id]; ok {
		f.Views++
	}
	return nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	seq       int
	responses map[string]*model.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[string]*model.Response)}
}

func (r *fakeResponseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("resp%d", r.seq)
	resp := *response
	resp.ID = id
	resp.SubmittedAt = time.Now()
	r.responses[id] = &resp
	return id, nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return nil, nil
	}
	cp := *resp
	return &cp, nil
}

func (r *fakeResponseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.FormID == formID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID }) // newest first
	return out, nil
}

func (r *fakeResponseRepo) CountByFormID(ctx context.Context, formID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, resp := range r.responses {
		if resp.FormID == formID {
			n++
		}
	}
	return n, nil
}

func (r *fakeResponseRepo) DeleteByFormID(ctx context.Context, formID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resp := range r.responses {
		if resp.FormID == formID {
			delete(r.responses, id)
		}
	}
	return nil
}

// fakeStatsCache is a no-op pass-through: every lookup misses.
type fakeStatsCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *fakeStatsCache) GetResponseCount(ctx context.Context, formID string) (int64, bool, error) {
	return 0, false, nil
}

func (c *fakeStatsCache) SetResponseCount(ctx context.Context, formID string, count int64) error {
	return nil
}

func (c *fakeStatsCache) GetReport(ctx context.Context, formID string) (*model.FormReport, error) {
	return nil, nil
}

func (c *fakeStatsCache) SetReport(ctx context.Context, report *model.FormReport) error {
	return nil
}

func (c *fakeStatsCache) InvalidateForm(ctx context.Context, formID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, formID)
	return nil
}
