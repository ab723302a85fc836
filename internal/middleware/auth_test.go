package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-api/internal/model"
	"pantry-api/internal/token"
)

type stubVerifier struct {
	claims token.Claims
	err    error
}

func (s *stubVerifier) VerifyToken(raw string) (token.Claims, error) {
	return s.claims, s.err
}

type stubRevocation struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocation) IsTokenRevoked(_ context.Context, raw string) (bool, error) {
	return s.revoked[raw], s.err
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{}, &stubRevocation{revoked: map[string]bool{}})

	var called bool
	handler := mw.RequireAuth(okHandler(&called))

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	for _, kind := range []error{token.ErrMalformed, token.ErrBadSignature, token.ErrExpired} {
		mw := NewAuthMiddleware(&stubVerifier{err: kind}, &stubRevocation{revoked: map[string]bool{}})

		var called bool
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		mw.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	}
}

func TestRequireAuthRevokedToken(t *testing.T) {
	verifier := &stubVerifier{claims: token.Claims{UserID: "u1", Role: model.RoleUser}}
	mw := NewAuthMiddleware(verifier, &stubRevocation{revoked: map[string]bool{"revoked-token": true}})

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuthRevocationCheckFailure(t *testing.T) {
	verifier := &stubVerifier{claims: token.Claims{UserID: "u1", Role: model.RoleUser}}
	mw := NewAuthMiddleware(verifier, &stubRevocation{err: errors.New("db down")})

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
}

func TestRequireAuthAttachesClaimsAndToken(t *testing.T) {
	verifier := &stubVerifier{claims: token.Claims{UserID: "u1", Email: "a@x.com", Role: model.RoleAdmin}}
	mw := NewAuthMiddleware(verifier, &stubRevocation{revoked: map[string]bool{}})

	var gotClaims token.Claims
	var gotRaw string
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims

		raw, ok := RawTokenFromContext(r.Context())
		require.True(t, ok)
		gotRaw = raw
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotClaims.UserID)
	assert.Equal(t, model.RoleAdmin, gotClaims.Role)
	assert.Equal(t, "valid-token", gotRaw)
}

func TestRequireRoles(t *testing.T) {
	verifier := &stubVerifier{claims: token.Claims{UserID: "u1", Role: model.RoleUser}}
	mw := NewAuthMiddleware(verifier, &stubRevocation{revoked: map[string]bool{}})

	var called bool
	adminOnly := mw.RequireAuth(mw.RequireRoles(model.RoleAdmin)(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	verifier.claims.Role = model.RoleAdmin
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	adminOnly.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRolesWithoutAuthContext(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{}, &stubRevocation{revoked: map[string]bool{}})

	var called bool
	handler := mw.RequireRoles(model.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
