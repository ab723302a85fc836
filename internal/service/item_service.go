package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantry-api/internal/model"
	"pantry-api/internal/schema"
)

type ItemRepository interface {
	Create(ctx context.Context, item model.Item) error
	FindByID(ctx context.Context, id string) (model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, item model.Item) error
	Delete(ctx context.Context, id string) error
}

type ItemService struct {
	items ItemRepository
}

func NewItemService(items ItemRepository) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) Create(ctx context.Context, doc map[string]any) (model.Item, error) {
	if err := schema.Validate(schema.ItemDocument, doc); err != nil {
		return model.Item{}, err
	}

	var item model.Item
	if err := decodeDocument(doc, &item); err != nil {
		return model.Item{}, err
	}

	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.items.Create(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (model.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	return s.items.List(ctx)
}

// Update validates the mutated field set first for precise errors, then the
// merged document as a whole so a patch cannot leave the stored row invalid.
func (s *ItemService) Update(ctx context.Context, id string, patch map[string]any) (model.Item, error) {
	if err := schema.ValidatePartial(schema.ItemDocument, patch); err != nil {
		return model.Item{}, err
	}

	existing, err := s.items.FindByID(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	base, err := documentFromModel(existing)
	if err != nil {
		return model.Item{}, err
	}
	merged := mergeDocuments(base, patch)
	if err := schema.Validate(schema.ItemDocument, merged); err != nil {
		return model.Item{}, err
	}

	var item model.Item
	if err := decodeDocument(merged, &item); err != nil {
		return model.Item{}, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
