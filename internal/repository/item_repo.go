package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pantry-api/internal/model"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) error {
	barcodes, err := json.Marshal(item.Barcodes)
	if err != nil {
		return fmt.Errorf("marshal barcodes: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO items (id, name, category, quantity, unit, expiry_date, storage_location,
		                    price, barcodes, store_id, date_purchased, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.ExpiryDate,
		item.StorageLocation, item.Price, barcodes, item.StoreID, item.DatePurchased,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, category, quantity, unit, expiry_date, storage_location,
		        price, barcodes, store_id, date_purchased, created_at, updated_at
		 FROM items WHERE id = $1`, id)

	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Item{}, model.ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("find item by id: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, quantity, unit, expiry_date, storage_location,
		        price, barcodes, store_id, date_purchased, created_at, updated_at
		 FROM items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item model.Item) error {
	barcodes, err := json.Marshal(item.Barcodes)
	if err != nil {
		return fmt.Errorf("marshal barcodes: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE items
		 SET name = $2, category = $3, quantity = $4, unit = $5, expiry_date = $6,
		     storage_location = $7, price = $8, barcodes = $9, store_id = $10,
		     date_purchased = $11, updated_at = $12
		 WHERE id = $1`,
		item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.ExpiryDate,
		item.StorageLocation, item.Price, barcodes, item.StoreID, item.DatePurchased,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (model.Item, error) {
	var (
		item     model.Item
		barcodes []byte
	)
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
		&item.ExpiryDate, &item.StorageLocation, &item.Price, &barcodes, &item.StoreID,
		&item.DatePurchased, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return model.Item{}, err
	}
	if len(barcodes) > 0 {
		if err := json.Unmarshal(barcodes, &item.Barcodes); err != nil {
			return model.Item{}, fmt.Errorf("unmarshal barcodes: %w", err)
		}
	}
	return item, nil
}
