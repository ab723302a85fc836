package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantry-api/internal/model"
	"pantry-api/internal/password"
	"pantry-api/internal/schema"
	"pantry-api/internal/token"
)

// UserRepository is the credential store as seen by the auth service.
type UserRepository interface {
	Create(ctx context.Context, u model.User) error
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateByEmail(ctx context.Context, email string, upd model.UserUpdate) (model.User, error)
	DeleteByEmail(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.Profile, error)
}

// RevocationList tracks explicitly invalidated tokens until their expiry.
type RevocationList interface {
	Revoke(ctx context.Context, tokenString string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}

type AuthService struct {
	users   UserRepository
	revoked RevocationList
	hasher  *password.Hasher
	tokens  *token.Manager

	// parityDigest is compared against on the unknown-email path so that
	// lookups for absent and present users cost roughly the same.
	parityDigest string
}

func NewAuthService(users UserRepository, revoked RevocationList, hasher *password.Hasher, tokens *token.Manager) (*AuthService, error) {
	parityDigest, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare parity digest: %w", err)
	}

	return &AuthService{
		users:        users,
		revoked:      revoked,
		hasher:       hasher,
		tokens:       tokens,
		parityDigest: parityDigest,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = string(model.RoleUser)
	}

	doc := map[string]any{
		"email":    email,
		"password": req.Password,
		"name":     req.Name,
		"role":     role,
	}
	if err := schema.Validate(schema.Identity, doc); err != nil {
		return model.Profile{}, err
	}

	// Fast-path duplicate check. Two concurrent registrations may both pass
	// it; the unique index on email settles the race in the repository.
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.Profile{}, err
	}
	if exists {
		return model.Profile{}, model.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.Profile{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.Role(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

// Authenticate deliberately reports unknown email and wrong password with the
// same error, so callers cannot enumerate registered addresses.
func (s *AuthService) Authenticate(ctx context.Context, email string, plaintext string) (model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		s.hasher.Verify(plaintext, s.parityDigest)
		return model.User{}, model.ErrInvalidCredentials
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email string, plaintext string) (model.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, plaintext)
	if err != nil {
		return model.LoginResult{}, err
	}

	signed, _, err := s.tokens.Issue(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{Token: signed, User: user.Profile()}, nil
}

// Logout revokes the presented token until its natural expiry. Revoking the
// same token again is a no-op.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return model.ErrUnauthorized
	}

	doc := map[string]any{
		"token":      raw,
		"expires_at": claims.ExpiresAt.Format(time.RFC3339),
	}
	if err := schema.Validate(schema.TokenBlacklist, doc); err != nil {
		return err
	}

	return s.revoked.Revoke(ctx, raw, claims.ExpiresAt)
}

func (s *AuthService) GetProfile(ctx context.Context, email string) (model.Profile, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, email string, req model.UpdateProfileRequest) (model.Profile, error) {
	doc := map[string]any{}
	if req.Name != "" {
		doc["name"] = req.Name
	}
	if req.Password != "" {
		doc["password"] = req.Password
	}
	if req.Role != "" {
		doc["role"] = req.Role
	}
	if len(doc) == 0 {
		return model.Profile{}, model.ErrInvalidInput
	}
	if err := schema.ValidatePartial(schema.Identity, doc); err != nil {
		return model.Profile{}, err
	}

	upd := model.UserUpdate{}
	if req.Name != "" {
		upd.Name = &req.Name
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return model.Profile{}, err
		}
		upd.PasswordHash = &hash
	}
	if req.Role != "" {
		role := model.Role(req.Role)
		upd.Role = &role
	}

	user, err := s.users.UpdateByEmail(ctx, email, upd)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AuthService) DeleteProfile(ctx context.Context, email string) error {
	return s.users.DeleteByEmail(ctx, email)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.Profile, error) {
	return s.users.List(ctx)
}

// VerifyToken exposes token verification to the authorization middleware.
func (s *AuthService) VerifyToken(raw string) (token.Claims, error) {
	return s.tokens.Verify(raw)
}

// IsTokenRevoked exposes the revocation check to the authorization middleware.
func (s *AuthService) IsTokenRevoked(ctx context.Context, raw string) (bool, error) {
	return s.revoked.IsRevoked(ctx, raw)
}
