package ws

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"formforge/internal/model"
	"formforge/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	seq   int
	users map[string]*model.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.seq++
	id := fmt.Sprintf("user%d", r.seq)
	u := *user
	u.ID = id
	r.users[id] = &u
	return id, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) UpdateBookmarks(ctx context.Context, id string, bookmarks []string) error {
	return nil
}

type stubFormRepo struct {
	forms map[string]*model.Form
}

func (r *stubFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	id := fmt.Sprintf("form%d", len(r.forms)+1)
	f := *form
	f.ID = id
	r.forms[id] = &f
	return id, nil
}

func (r *stubFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	return r.forms[id], nil
}

func (r *stubFormRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	return nil, nil
}

func (r *stubFormRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Form, error) {
	return nil, nil
}

func (r *stubFormRepo) Update(ctx context.Context, form *model.Form) error { return nil }

func (r *stubFormRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *stubFormRepo) IncrementViews(ctx context.Context, id string) error { return nil }

type stubResponseRepo struct{}

func (stubResponseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	return "", nil
}
func (stubResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	return nil, nil
}
func (stubResponseRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Response, error) {
	return nil, nil
}
func (stubResponseRepo) CountByFormID(ctx context.Context, formID string) (int64, error) {
	return 0, nil
}
func (stubResponseRepo) DeleteByFormID(ctx context.Context, formID string) error { return nil }

type stubStatsCache struct{}

func (stubStatsCache) GetResponseCount(ctx context.Context, formID string) (int64, bool, error) {
	return 0, false, nil
}
func (stubStatsCache) SetResponseCount(ctx context.Context, formID string, count int64) error {
	return nil
}
func (stubStatsCache) GetReport(ctx context.Context, formID string) (*model.FormReport, error) {
	return nil, nil
}
func (stubStatsCache) SetReport(ctx context.Context, report *model.FormReport) error { return nil }
func (stubStatsCache) InvalidateForm(ctx context.Context, formID string) error       { return nil }

func liveFeedFixture(t *testing.T) (*mux.Router, *service.AuthService, *stubFormRepo) {
	t.Helper()
	userRepo := &stubUserRepo{users: make(map[string]*model.User)}
	formRepo := &stubFormRepo{forms: make(map[string]*model.Form)}

	authSvc := service.NewAuthService(userRepo, "test-secret")
	formSvc := service.NewFormService(formRepo, stubResponseRepo{}, userRepo, stubStatsCache{})
	handler := NewHandler(NewHub(), authSvc, formSvc)

	router := mux.NewRouter()
	router.HandleFunc("/api/ws/forms/{id}/live", handler.LiveFeed)
	return router, authSvc, formRepo
}

func TestLiveFeedRejectsBadTokens(t *testing.T) {
	router, _, _ := liveFeedFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ws/forms/form1/live", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ws/forms/form1/live?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLiveFeedUnknownFormIsNotFound(t *testing.T) {
	router, authSvc, _ := liveFeedFixture(t)

	resp, err := authSvc.Signup(context.Background(), "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ws/forms/missing/live?token="+resp.Token, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLiveFeedRejectsNonOwner(t *testing.T) {
	router, authSvc, formRepo := liveFeedFixture(t)

	resp, err := authSvc.Signup(context.Background(), "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	formID, err := formRepo.Create(context.Background(), &model.Form{OwnerID: "someone-else"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ws/forms/"+formID+"/live?token="+resp.Token, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
