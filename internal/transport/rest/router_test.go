package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"formforge/internal/config"
	"formforge/internal/model"
	"formforge/internal/service"
	"formforge/internal/transport/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing a full router under test.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*model.User
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("user%d", r.seq)
	u := *user
	u.ID = id
	r.users[id] = &u
	return id, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
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

func (r *memUserRepo) UpdateBookmarks(ctx context.Context, id string, bookmarks []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Bookmarks = bookmarks
	}
	return nil
}

type memFormRepo struct {
	mu    sync.Mutex
	seq   int
	forms map[string]*model.Form
}

func (r *memFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
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

func (r *memFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *memFormRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
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

func (r *memFormRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Form, error) {
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

func (r *memFormRepo) Update(ctx context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := *form
	r.forms[form.ID] = &f
	return nil
}

func (r *memFormRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

func (r *memFormRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[id]; ok {
		f.Views++
	}
	return nil
}

type memResponseRepo struct {
	mu        sync.Mutex
	seq       int
	responses map[string]*model.Response
}

func (r *memResponseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
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

func (r *memResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return nil, nil
	}
	cp := *resp
	return &cp, nil
}

func (r *memResponseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.FormID == formID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memResponseRepo) CountByFormID(ctx context.Context, formID string) (int64, error) {
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

func (r *memResponseRepo) DeleteByFormID(ctx context.Context, formID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resp := range r.responses {
		if resp.FormID == formID {
			delete(r.responses, id)
		}
	}
	return nil
}

type memStatsCache struct{}

func (memStatsCache) GetResponseCount(ctx context.Context, formID string) (int64, bool, error) {
	return 0, false, nil
}
func (memStatsCache) SetResponseCount(ctx context.Context, formID string, count int64) error {
	return nil
}
func (memStatsCache) GetReport(ctx context.Context, formID string) (*model.FormReport, error) {
	return nil, nil
}
func (memStatsCache) SetReport(ctx context.Context, report *model.FormReport) error { return nil }
func (memStatsCache) InvalidateForm(ctx context.Context, formID string) error       { return nil }

func newTestRouter() http.Handler {
	userRepo := &memUserRepo{users: make(map[string]*model.User)}
	formRepo := &memFormRepo{forms: make(map[string]*model.Form)}
	responseRepo := &memResponseRepo{responses: make(map[string]*model.Response)}
	statsCache := memStatsCache{}

	authSvc := service.NewAuthService(userRepo, "test-secret")
	formSvc := service.NewFormService(formRepo, responseRepo, userRepo, statsCache)
	responseSvc := service.NewResponseService(formRepo, responseRepo, statsCache)
	analyticsSvc := service.NewAnalyticsService(formRepo, responseRepo, statsCache)
	generatorSvc := service.NewGeneratorService(&config.AIConfig{})

	return NewRouter(&Container{
		AuthService:      authSvc,
		FormService:      formSvc,
		ResponseService:  responseSvc,
		AnalyticsService: analyticsSvc,
		GeneratorService: generatorSvc,
		WSHub:            ws.NewHub(),
		CORSOrigins:      "*",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupToken(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/auth/signup", "", map[string]string{
		"name":     "Test",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupSigninFlow(t *testing.T) {
	router := newTestRouter()

	signupToken(t, router, "ada@example.com")

	rec := doJSON(t, router, "POST", "/api/auth/signup", "", map[string]string{
		"email":    "ada@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/api/auth/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "POST", "/api/auth/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFormEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/api/forms", "", map[string]interface{}{"title": "X"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "GET", "/api/forms", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookmarkedRouteNotShadowedByFormID(t *testing.T) {
	router := newTestRouter()
	token := signupToken(t, router, "ada@example.com")

	// Must hit the bookmarked list, not GET /forms/{id} with id "bookmarked".
	rec := doJSON(t, router, "GET", "/api/forms/bookmarked", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var forms []model.FormWithCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forms))
	assert.Empty(t, forms)
}

func TestFormLifecycle(t *testing.T) {
	router := newTestRouter()
	owner := signupToken(t, router, "owner@example.com")
	intruder := signupToken(t, router, "intruder@example.com")

	rec := doJSON(t, router, "POST", "/api/forms", owner, map[string]interface{}{
		"title": "Colors",
		"questions": []map[string]interface{}{
			{"id": "singleSelect_q1", "type": "singleSelect", "label": "Favorite color",
				"meta": map[string]interface{}{"options": []string{"Red", "Blue"}}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var form model.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	require.NotEmpty(t, form.ID)

	// Anyone can fetch the published document.
	rec = doJSON(t, router, "GET", "/api/forms/"+form.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Only the owner can edit it.
	rec = doJSON(t, router, "PUT", "/api/forms/"+form.ID, intruder, map[string]interface{}{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Anonymous submissions, then owner-side analytics.
	for _, color := range []string{"Red", "Red", "Blue"} {
		rec = doJSON(t, router, "POST", "/api/forms/"+form.ID+"/submit", "", map[string]interface{}{
			"answers": []map[string]interface{}{
				{"questionId": "singleSelect_q1", "value": color},
			},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/api/forms/"+form.ID+"/analytics", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report model.FormReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Total)
	require.Len(t, report.Questions, 1)
	counts := map[string]int{}
	for _, oc := range report.Questions[0].Data {
		counts[oc.Name] = oc.Value
	}
	assert.Equal(t, map[string]int{"Red": 2, "Blue": 1}, counts)

	rec = doJSON(t, router, "GET", "/api/forms/"+form.ID+"/analytics", intruder, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Delete cascades; the responses listing 404s afterwards.
	rec = doJSON(t, router, "DELETE", "/api/forms/"+form.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/forms/"+form.ID+"/responses", owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitValidation(t *testing.T) {
	router := newTestRouter()
	owner := signupToken(t, router, "owner@example.com")

	rec := doJSON(t, router, "POST", "/api/forms", owner, map[string]interface{}{
		"title": "Survey",
		"questions": []map[string]interface{}{
			{"id": "shortText_q1", "type": "shortText", "label": "Name", "required": true},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var form model.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))

	rec = doJSON(t, router, "POST", "/api/forms/"+form.ID+"/submit", "", map[string]interface{}{
		"answers": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/api/forms/missing/submit", "", map[string]interface{}{
		"answers": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateFormUnavailableWithoutKey(t *testing.T) {
	router := newTestRouter()
	token := signupToken(t, router, "ada@example.com")

	rec := doJSON(t, router, "POST", "/api/ai/generate-form", token, map[string]string{
		"prompt": "a feedback form",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
