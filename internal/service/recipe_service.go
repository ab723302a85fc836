package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantry-api/internal/model"
	"pantry-api/internal/schema"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe model.Recipe) error
	FindByID(ctx context.Context, id string) (model.Recipe, error)
	List(ctx context.Context) ([]model.Recipe, error)
	Update(ctx context.Context, recipe model.Recipe) error
	Delete(ctx context.Context, id string) error
}

type RecipeService struct {
	recipes RecipeRepository
}

func NewRecipeService(recipes RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

func (s *RecipeService) Create(ctx context.Context, doc map[string]any) (model.Recipe, error) {
	if err := schema.Validate(schema.RecipeDocument, doc); err != nil {
		return model.Recipe{}, err
	}

	var recipe model.Recipe
	if err := decodeDocument(doc, &recipe); err != nil {
		return model.Recipe{}, err
	}

	now := time.Now().UTC()
	recipe.ID = uuid.NewString()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *RecipeService) Get(ctx context.Context, id string) (model.Recipe, error) {
	return s.recipes.FindByID(ctx, id)
}

func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *RecipeService) Update(ctx context.Context, id string, patch map[string]any) (model.Recipe, error) {
	if err := schema.ValidatePartial(schema.RecipeDocument, patch); err != nil {
		return model.Recipe{}, err
	}

	existing, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return model.Recipe{}, err
	}

	base, err := documentFromModel(existing)
	if err != nil {
		return model.Recipe{}, err
	}
	merged := mergeDocuments(base, patch)
	if err := schema.Validate(schema.RecipeDocument, merged); err != nil {
		return model.Recipe{}, err
	}

	var recipe model.Recipe
	if err := decodeDocument(merged, &recipe); err != nil {
		return model.Recipe{}, err
	}
	recipe.ID = existing.ID
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, id string) error {
	return s.recipes.Delete(ctx, id)
}
