package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pantry-api/internal/model"
)

type StoreRepository struct {
	pool *pgxpool.Pool
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

func (r *StoreRepository) Create(ctx context.Context, store model.Store) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO stores (id, name, location, contact_number, website, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		store.ID, store.Name, store.Location, store.ContactNumber, store.Website,
		store.CreatedAt, store.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (model.Store, error) {
	var s model.Store
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, location, contact_number, website, created_at, updated_at
		 FROM stores WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Location, &s.ContactNumber, &s.Website, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Store{}, model.ErrStoreNotFound
	}
	if err != nil {
		return model.Store{}, fmt.Errorf("find store by id: %w", err)
	}
	return s, nil
}

func (r *StoreRepository) List(ctx context.Context) ([]model.Store, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, location, contact_number, website, created_at, updated_at
		 FROM stores ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	stores := make([]model.Store, 0)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.ContactNumber, &s.Website,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *StoreRepository) Update(ctx context.Context, store model.Store) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stores
		 SET name = $2, location = $3, contact_number = $4, website = $5, updated_at = $6
		 WHERE id = $1`,
		store.ID, store.Name, store.Location, store.ContactNumber, store.Website,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStoreNotFound
	}
	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStoreNotFound
	}
	return nil
}
