package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlacklistRepository records tokens that were explicitly invalidated before
// their natural expiry. Rows past their expiry are dead weight, not a
// correctness concern: the verifier rejects expired tokens regardless.
type BlacklistRepository struct {
	pool *pgxpool.Pool
}

func NewBlacklistRepository(pool *pgxpool.Pool) *BlacklistRepository {
	return &BlacklistRepository{pool: pool}
}

// Revoke is idempotent; revoking the same token twice is a no-op. Expired
// rows are pruned lazily on each insert to bound storage growth.
func (r *BlacklistRepository) Revoke(ctx context.Context, tokenString string, expiresAt time.Time) error {
	if _, err := r.Prune(ctx); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO revoked_tokens (token, expires_at, revoked_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (token) DO NOTHING`,
		tokenString, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *BlacklistRepository) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	var revoked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token = $1)`,
		tokenString).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check token revoked: %w", err)
	}
	return revoked, nil
}

func (r *BlacklistRepository) Prune(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("prune revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
