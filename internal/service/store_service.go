package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantry-api/internal/model"
	"pantry-api/internal/schema"
)

type StoreRepository interface {
	Create(ctx context.Context, store model.Store) error
	FindByID(ctx context.Context, id string) (model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, store model.Store) error
	Delete(ctx context.Context, id string) error
}

type StoreService struct {
	stores StoreRepository
}

func NewStoreService(stores StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

func (s *StoreService) Create(ctx context.Context, doc map[string]any) (model.Store, error) {
	if err := schema.Validate(schema.StoreDocument, doc); err != nil {
		return model.Store{}, err
	}

	var store model.Store
	if err := decodeDocument(doc, &store); err != nil {
		return model.Store{}, err
	}

	now := time.Now().UTC()
	store.ID = uuid.NewString()
	store.CreatedAt = now
	store.UpdatedAt = now

	if err := s.stores.Create(ctx, store); err != nil {
		return model.Store{}, err
	}
	return store, nil
}

func (s *StoreService) Get(ctx context.Context, id string) (model.Store, error) {
	return s.stores.FindByID(ctx, id)
}

func (s *StoreService) List(ctx context.Context) ([]model.Store, error) {
	return s.stores.List(ctx)
}

func (s *StoreService) Update(ctx context.Context, id string, patch map[string]any) (model.Store, error) {
	if err := schema.ValidatePartial(schema.StoreDocument, patch); err != nil {
		return model.Store{}, err
	}

	existing, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return model.Store{}, err
	}

	base, err := documentFromModel(existing)
	if err != nil {
		return model.Store{}, err
	}
	merged := mergeDocuments(base, patch)
	if err := schema.Validate(schema.StoreDocument, merged); err != nil {
		return model.Store{}, err
	}

	var store model.Store
	if err := decodeDocument(merged, &store); err != nil {
		return model.Store{}, err
	}
	store.ID = existing.ID
	store.CreatedAt = existing.CreatedAt
	store.UpdatedAt = time.Now().UTC()

	if err := s.stores.Update(ctx, store); err != nil {
		return model.Store{}, err
	}
	return store, nil
}

func (s *StoreService) Delete(ctx context.Context, id string) error {
	return s.stores.Delete(ctx, id)
}
