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

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe model.Recipe) error {
	ingredients, steps, categories, err := marshalRecipeParts(recipe)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO recipes (id, name, description, servings, prep_time, cook_time,
		                      ingredients, steps, categories, difficulty, image_url,
		                      rating, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Servings, recipe.PrepTime,
		recipe.CookTime, ingredients, steps, categories, recipe.Difficulty,
		recipe.ImageURL, recipe.Rating, recipe.Notes, recipe.CreatedAt, recipe.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (model.Recipe, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, description, servings, prep_time, cook_time, ingredients,
		        steps, categories, difficulty, image_url, rating, notes, created_at, updated_at
		 FROM recipes WHERE id = $1`, id)

	recipe, err := scanRecipe(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Recipe{}, model.ErrRecipeNotFound
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("find recipe by id: %w", err)
	}
	return recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, servings, prep_time, cook_time, ingredients,
		        steps, categories, difficulty, image_url, rating, notes, created_at, updated_at
		 FROM recipes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

func (r *RecipeRepository) Update(ctx context.Context, recipe model.Recipe) error {
	ingredients, steps, categories, err := marshalRecipeParts(recipe)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE recipes
		 SET name = $2, description = $3, servings = $4, prep_time = $5, cook_time = $6,
		     ingredients = $7, steps = $8, categories = $9, difficulty = $10,
		     image_url = $11, rating = $12, notes = $13, updated_at = $14
		 WHERE id = $1`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Servings, recipe.PrepTime,
		recipe.CookTime, ingredients, steps, categories, recipe.Difficulty,
		recipe.ImageURL, recipe.Rating, recipe.Notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecipeNotFound
	}
	return nil
}

func marshalRecipeParts(recipe model.Recipe) ([]byte, []byte, []byte, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	steps, err := json.Marshal(recipe.Steps)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal steps: %w", err)
	}
	categories, err := json.Marshal(recipe.Categories)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal categories: %w", err)
	}
	return ingredients, steps, categories, nil
}

func scanRecipe(row pgx.Row) (model.Recipe, error) {
	var (
		recipe      model.Recipe
		ingredients []byte
		steps       []byte
		categories  []byte
	)
	err := row.Scan(&recipe.ID, &recipe.Name, &recipe.Description, &recipe.Servings,
		&recipe.PrepTime, &recipe.CookTime, &ingredients, &steps, &categories,
		&recipe.Difficulty, &recipe.ImageURL, &recipe.Rating, &recipe.Notes,
		&recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return model.Recipe{}, err
	}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
			return model.Recipe{}, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &recipe.Steps); err != nil {
			return model.Recipe{}, fmt.Errorf("unmarshal steps: %w", err)
		}
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &recipe.Categories); err != nil {
			return model.Recipe{}, fmt.Errorf("unmarshal categories: %w", err)
		}
	}
	return recipe, nil
}
