package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vericv-backend/config"
	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"
	"vericv-backend/internal/usecase"
	"vericv-backend/pkg/apperror"
	"vericv-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUC struct {
	domain.AuthUsecase
	mock.Mock
}

func (m *mockAuthUC) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockCVUC struct {
	domain.CVUsecase
	mock.Mock
}

func (m *mockCVUC) DeleteCV(ctx context.Context, cvID, userID int64) (domain.CascadeDeleteResult, error) {
	args := m.Called(ctx, cvID, userID)
	return args.Get(0).(domain.CascadeDeleteResult), args.Error(1)
}

func (m *mockCVUC) GetPublicCV(ctx context.Context, cvID int64) (*domain.CVDetails, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVDetails), args.Error(1)
}

type mockDirectoryUC struct {
	domain.DirectoryUsecase
	mock.Mock
}

func (m *mockDirectoryUC) SearchDirectory(ctx context.Context, keyword string) ([]domain.DirectoryEntry, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).([]domain.DirectoryEntry), args.Error(1)
}

func (m *mockDirectoryUC) GetPublicProfile(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryEntry), args.Error(1)
}

func (m *mockDirectoryUC) AddToDirectory(ctx context.Context, userID int64) (*domain.DirectoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryEntry), args.Error(1)
}

type mockVerificationUC struct {
	domain.VerificationUsecase
	mock.Mock
}

func (m *mockVerificationUC) VerifyUser(ctx context.Context, a domain.Actor, userID int64, verified bool) (*domain.User, error) {
	args := m.Called(ctx, a, userID, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router  *gin.Engine
	tokens  *auth.TokenService
	authUC  *mockAuthUC
	cvUC    *mockCVUC
	dirUC   *mockDirectoryUC
	verifUC *mockVerificationUC
}

func newTestServer(t *testing.T, db usecase.Pinger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		tokens:  auth.NewTokenService("test-secret-test-secret-test-secret", time.Hour),
		authUC:  new(mockAuthUC),
		cvUC:    new(mockCVUC),
		dirUC:   new(mockDirectoryUC),
		verifUC: new(mockVerificationUC),
	}
	s.router = NewRouter(RouterDeps{
		AuthUC:         s.authUC,
		CVUC:           s.cvUC,
		DirectoryUC:    s.dirUC,
		VerificationUC: s.verifUC,
		HealthUC:       usecase.NewHealthUsecase(db, nil),
		Tokens:         s.tokens,
		Config: &config.Config{
			Environment:              "test",
			FrontendURL:              "http://localhost:3000",
			RateLimitWindowSeconds:   60,
			RateLimitLoginThreshold:  100,
			RateLimitGlobalThreshold: 1000,
		},
	})
	return s
}

// login registers user with the auth mock and returns a bearer token for them.
func (s *testServer) login(t *testing.T, user *domain.User) string {
	t.Helper()
	id := user.ID
	token, err := s.tokens.Issue(user.Email, &id)
	require.NoError(t, err)
	s.authUC.On("GetCurrentUser", mock.Anything, user.ID).Return(user, nil)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func activeUser(id int64, roles ...string) *domain.User {
	return &domain.User{ID: id, Email: "user@example.com", FullName: "Ada", IsActive: true, Roles: append([]string{domain.RoleUser}, roles...)}
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		w, resp := s.do(http.MethodGet, "/v1/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("database down", func(t *testing.T) {
		s := newTestServer(t, pinger{err: errors.New("refused")})
		w, resp := s.do(http.MethodGet, "/v1/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
	})
}

func TestDirectorySearch(t *testing.T) {
	s := newTestServer(t, pinger{})
	entries := []domain.DirectoryEntry{{ID: 1, UserID: 7, FullName: "Ada", IsVisible: true, VerificationBadge: domain.BadgeBronze}}
	s.dirUC.On("SearchDirectory", mock.Anything, "golang").Return(entries, nil)

	w, resp := s.do(http.MethodGet, "/v1/directory/search?q=golang", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
	s.dirUC.AssertExpectations(t)
}

func TestDirectoryPublicProfile(t *testing.T) {
	t.Run("visible", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		s.dirUC.On("GetPublicProfile", mock.Anything, int64(7)).
			Return(&domain.DirectoryEntry{UserID: 7, IsVisible: true, ProfileViews: 3}, nil)

		w, _ := s.do(http.MethodGet, "/v1/directory/profile/7", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		s.dirUC.On("GetPublicProfile", mock.Anything, int64(7)).
			Return(nil, apperror.NotFound("Directory entry not found"))

		w, resp := s.do(http.MethodGet, "/v1/directory/profile/7", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("bad id", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		w, _ := s.do(http.MethodGet, "/v1/directory/profile/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.dirUC.AssertNotCalled(t, "GetPublicProfile", mock.Anything, mock.Anything)
	})
}

func TestDirectoryFilterByBadge_Invalid(t *testing.T) {
	s := newTestServer(t, pinger{})
	w, _ := s.do(http.MethodGet, "/v1/directory/filter/badge/diamond", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDirectoryJoin(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		w, _ := s.do(http.MethodPost, "/v1/directory/me/join", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("joins as the token owner", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		token := s.login(t, activeUser(7))
		s.dirUC.On("AddToDirectory", mock.Anything, int64(7)).
			Return(&domain.DirectoryEntry{ID: 1, UserID: 7, IsVisible: true}, nil)

		w, resp := s.do(http.MethodPost, "/v1/directory/me/join", token, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("already a member", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		token := s.login(t, activeUser(7))
		s.dirUC.On("AddToDirectory", mock.Anything, int64(7)).
			Return(nil, apperror.AlreadyExists("User is already in the directory"))

		w, _ := s.do(http.MethodPost, "/v1/directory/me/join", token, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDeleteCV_NotOwner(t *testing.T) {
	s := newTestServer(t, pinger{})
	token := s.login(t, activeUser(7))
	s.cvUC.On("DeleteCV", mock.Anything, int64(2), int64(7)).
		Return(domain.CascadeDeleteResult{}, apperror.Unauthorized("You do not own this CV"))

	w, _ := s.do(http.MethodDelete, "/v1/cv/2", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminVerifyUser(t *testing.T) {
	t.Run("non admin is forbidden", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		token := s.login(t, activeUser(7))

		w, _ := s.do(http.MethodPut, "/v1/admin/users/3/verification", token, map[string]bool{"verified": true})
		assert.Equal(t, http.StatusForbidden, w.Code)
		s.verifUC.AssertNotCalled(t, "VerifyUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin sets the flag", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		admin := activeUser(1, domain.RoleAdmin)
		token := s.login(t, admin)
		actor := domain.Actor{UserID: 1, Roles: admin.Roles}
		s.verifUC.On("VerifyUser", mock.Anything, actor, int64(3), true).
			Return(&domain.User{ID: 3, IsVerified: true}, nil)

		w, resp := s.do(http.MethodPut, "/v1/admin/users/3/verification", token, map[string]bool{"verified": true})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		s.verifUC.AssertExpectations(t)
	})

	t.Run("missing flag", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		token := s.login(t, activeUser(1, domain.RoleAdmin))

		w, _ := s.do(http.MethodPut, "/v1/admin/users/3/verification", token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPublicCVChildLists(t *testing.T) {
	details := &domain.CVDetails{
		CV:         &domain.CV{ID: 4, UserID: 7, IsPublic: true},
		Education:  []domain.Education{{ID: 1, CVID: 4}, {ID: 2, CVID: 4}},
		Experience: []domain.Experience{{ID: 3, CVID: 4}},
	}

	t.Run("education comes from the loaded details", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		s.cvUC.On("GetPublicCV", mock.Anything, int64(4)).Return(details, nil).Once()

		w, resp := s.do(http.MethodGet, "/v1/cv/4/education", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, data, 2)
		s.cvUC.AssertExpectations(t)
	})

	t.Run("experience comes from the loaded details", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		s.cvUC.On("GetPublicCV", mock.Anything, int64(4)).Return(details, nil).Once()

		w, resp := s.do(http.MethodGet, "/v1/cv/4/experience", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, data, 1)
	})

	t.Run("private cv", func(t *testing.T) {
		s := newTestServer(t, pinger{})
		s.cvUC.On("GetPublicCV", mock.Anything, int64(4)).Return(nil, apperror.Forbidden("This CV is private"))

		w, _ := s.do(http.MethodGet, "/v1/cv/4/education", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
