package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/FinFellows/Server/internal/auth"
	"github.com/FinFellows/Server/internal/auth/credentials"
	"github.com/FinFellows/Server/internal/auth/token"
	"github.com/FinFellows/Server/internal/middleware"
	"github.com/FinFellows/Server/internal/user"
)

// ----------------------------
// Fakes
// ----------------------------

type fakeProvider struct {
	profile auth.Profile
	err     error
}

func (p fakeProvider) ExchangeCode(_ context.Context, _ string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "provider-token", nil
}

func (p fakeProvider) FetchProfile(_ context.Context, _ string) (auth.Profile, error) {
	return p.profile, p.err
}

type memUserStore struct {
	users map[string]*user.User
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) Create(_ context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range s.users {
		if u.ID == id {
			delete(s.users, email)
		}
	}
	return nil
}

type memCredStore struct {
	creds map[string]credentials.Credential
}

func (s *memCredStore) FindByRefreshToken(_ context.Context, refreshToken string) (*credentials.Credential, error) {
	for _, c := range s.creds {
		if c.RefreshToken == refreshToken {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memCredStore) FindByEmail(_ context.Context, email string) (*credentials.Credential, error) {
	c, ok := s.creds[email]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (s *memCredStore) Save(_ context.Context, cred credentials.Credential) error {
	s.creds[cred.Email] = cred
	return nil
}

func (s *memCredStore) Update(_ context.Context, cred credentials.Credential) error {
	s.creds[cred.Email] = cred
	return nil
}

func (s *memCredStore) Delete(_ context.Context, email string) error {
	delete(s.creds, email)
	return nil
}

type passTx struct{}

func (passTx) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestRouter(t *testing.T, provider auth.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := token.NewCodec(token.Config{
		Secret:     []byte("test-secret"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	svc := auth.NewService(
		provider,
		codec,
		&memUserStore{users: map[string]*user.User{}},
		&memCredStore{creds: map[string]credentials.Credential{}},
		passTx{},
	)

	r := gin.New()
	NewHandler(svc, middleware.NewAuthMiddleware(codec, svc)).RegisterRoutes(r)
	return r
}

func goodProvider() fakeProvider {
	return fakeProvider{profile: auth.Profile{ID: "kakao-1001", Email: "a@b.com", Nickname: "anna"}}
}

func do(r *gin.Engine, method, path, body, authz string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", "Bearer "+authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signIn(t *testing.T, r *gin.Engine) auth.AuthResult {
	t.Helper()
	w := do(r, "GET", "/auth/sign-in?code=auth-code", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res auth.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	return res
}

// ----------------------------
// Tests
// ----------------------------

func TestSignInIssuesTokens(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	res := signIn(t, r)
	require.Equal(t, user.RoleUser, res.Role)
}

func TestAdminSignInIssuesAdminRole(t *testing.T) {
	r := newTestRouter(t, goodProvider())

	w := do(r, "GET", "/auth/admin/sign-in?code=auth-code", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res auth.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, user.RoleAdmin, res.Role)
}

func TestSignInMissingCode(t *testing.T) {
	r := newTestRouter(t, goodProvider())

	w := do(r, "GET", "/auth/sign-in", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInProviderFailure(t *testing.T) {
	r := newTestRouter(t, fakeProvider{
		err: &auth.ExternalProviderError{Op: "exchange code", Err: errors.New("boom")},
	})

	w := do(r, "GET", "/auth/sign-in?code=auth-code", "", "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	// no token material leaks into the body
	require.NotContains(t, w.Body.String(), "token")
}

func TestSignInProfileWithoutEmail(t *testing.T) {
	r := newTestRouter(t, fakeProvider{profile: auth.Profile{ID: "kakao-1001"}})

	w := do(r, "GET", "/auth/sign-in?code=auth-code", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	res := signIn(t, r)

	w := do(r, "POST", "/auth/refresh", `{"refresh_token":"`+res.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed auth.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	require.Equal(t, res.RefreshToken, refreshed.RefreshToken)
}

func TestRefreshRejectsMissingBody(t *testing.T) {
	r := newTestRouter(t, goodProvider())

	w := do(r, "POST", "/auth/refresh", `{}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	signIn(t, r)

	w := do(r, "POST", "/auth/refresh", `{"refresh_token":"bogus"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWhoAmI(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	res := signIn(t, r)

	w := do(r, "GET", "/auth", "", res.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var u user.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "anna", u.Name)
}

func TestWhoAmIRequiresToken(t *testing.T) {
	r := newTestRouter(t, goodProvider())

	w := do(r, "GET", "/auth", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignOutEndpoint(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	res := signIn(t, r)

	body := `{"refresh_token":"` + res.RefreshToken + `"}`
	w := do(r, "POST", "/auth/sign-out", body, res.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	// the session is gone; a repeat is a 401
	w = do(r, "POST", "/auth/sign-out", body, res.AccessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	r := newTestRouter(t, goodProvider())
	res := signIn(t, r)

	w := do(r, "DELETE", "/auth", "", res.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	// the identity no longer resolves
	w = do(r, "GET", "/auth", "", res.AccessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
