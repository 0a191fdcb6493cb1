package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
)

// RecipeRepository is the persistence the recipe service depends on
type RecipeRepository interface {
	FindAll(ctx context.Context) ([]model.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindByCategory(ctx context.Context, category string) ([]model.Recipe, error)
	ExistsByRecipeName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FilterByCriteria(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	AddRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error)
	UpdateRecipeByID(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipeByID(ctx context.Context, id uuid.UUID) error
	SearchRecipesByIngredients(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error)
}
