package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"pantry-api/internal/model"
	"pantry-api/internal/token"
)

type tokenVerifier interface {
	VerifyToken(raw string) (token.Claims, error)
}

type revocationChecker interface {
	IsTokenRevoked(ctx context.Context, raw string) (bool, error)
}

type contextKey string

const (
	authClaimsContextKey contextKey = "auth_claims"
	rawTokenContextKey   contextKey = "raw_token"
)

// AuthMiddleware is the per-request authorization gate: bearer extraction,
// token verification, revocation check, then role matching. Each step short
// circuits on failure.
type AuthMiddleware struct {
	verifier tokenVerifier
	revoked  revocationChecker
}

func NewAuthMiddleware(verifier tokenVerifier, revoked revocationChecker) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, revoked: revoked}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeGateError(w, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		raw := strings.TrimSpace(header[7:])
		claims, err := m.verifier.VerifyToken(raw)
		if err != nil {
			// Malformed, bad signature and expired all collapse to the
			// same external outcome; the distinction stays in the logs.
			slog.Debug("token rejected", "reason", err.Error())
			writeGateError(w, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		revoked, err := m.revoked.IsTokenRevoked(r.Context(), raw)
		if err != nil {
			slog.Error("revocation check failed", "error", err.Error())
			writeGateError(w, "INTERNAL_ERROR", "unexpected server error")
			return
		}
		if revoked {
			writeGateError(w, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		ctx = context.WithValue(ctx, rawTokenContextKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireRoles(allowedRoles ...model.Role) func(http.Handler) http.Handler {
	roleSet := map[model.Role]struct{}{}
	for _, role := range allowedRoles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeGateError(w, "UNAUTHORIZED", "authentication required")
				return
			}

			if _, allowed := roleSet[claims.Role]; !allowed {
				writeGateError(w, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(token.Claims)
	return claims, ok
}

// RawTokenFromContext returns the bearer token the request presented; logout
// needs it to revoke exactly that token.
func RawTokenFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(rawTokenContextKey).(string)
	return raw, ok
}

func writeGateError(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	switch code {
	case "FORBIDDEN":
		w.WriteHeader(http.StatusForbidden)
	case "INTERNAL_ERROR":
		w.WriteHeader(http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusUnauthorized)
	}

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
