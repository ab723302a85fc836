package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-api/internal/model"
)

func testUser() model.User {
	return model.User{
		ID:    "2f3f9a1c-6f46-4b65-9a20-0f0a6f3c1d11",
		Email: "a@x.com",
		Role:  model.RoleUser,
	}
}

func TestIssueAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	raw, issued, err := manager.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := manager.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, issued.UserID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager("test-secret", time.Hour).WithClock(func() time.Time { return issuedAt })

	raw, _, err := manager.Issue(testUser())
	require.NoError(t, err)

	// Still valid just before the TTL boundary.
	manager.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	_, err = manager.Verify(raw)
	require.NoError(t, err)

	manager.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })
	_, err = manager.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyBadSignature(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	other := NewManager("different-secret", time.Hour)

	raw, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = manager.Verify("")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyMissingClaimsIsMalformed(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	now := time.Now().UTC()

	// Validly signed tokens lacking a subject or carrying an unknown role
	// must be rejected as malformed, not accepted.
	cases := map[string]jwt.MapClaims{
		"missing subject": {
			"role": "user",
			"iat":  now.Unix(),
			"exp":  now.Add(time.Hour).Unix(),
		},
		"missing role": {
			"sub": "some-id",
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		},
		"unknown role": {
			"sub":  "some-id",
			"role": "superuser",
			"iat":  now.Unix(),
			"exp":  now.Add(time.Hour).Unix(),
		},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = manager.Verify(raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
