package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/repository"
	"go.uber.org/zap"
)

// RecipeService handles recipe operations
type RecipeService struct {
	repo RecipeRepository
	log  *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(repo RecipeRepository, log *zap.Logger) *RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{
		repo: repo,
		log:  log.Named("recipe_service"),
	}
}

// AddRecipe stores a new recipe with its ingredients. Names must be unique.
// Ids in the payload are ignored; fresh ones are generated on insert.
func (s *RecipeService) AddRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	exists, err := s.repo.ExistsByRecipeName(ctx, recipe.RecipeName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &AlreadyExistsError{RecipeName: recipe.RecipeName}
	}

	recipe.RecipeID = uuid.Nil
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].IngredientID = uuid.Nil
	}

	saved, err := s.repo.Save(ctx, recipe)
	if err != nil {
		return nil, err
	}
	s.log.Info("recipe added",
		zap.Stringer("recipeId", saved.RecipeID),
		zap.String("recipeName", saved.RecipeName),
		zap.Int("ingredients", len(saved.Ingredients)),
	)
	return saved, nil
}

// GetAllRecipes lists every recipe
func (s *RecipeService) GetAllRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.FindAll(ctx)
}

// GetRecipesByCategory lists the recipes of a category; an empty category is a NotFoundError
func (s *RecipeService) GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	recipes, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, categoryEmpty(category)
	}
	return recipes, nil
}

// UpdateRecipeByID replaces the stored recipe that has recipe.RecipeID,
// ingredient list included.
func (s *RecipeService) UpdateRecipeByID(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	existing, err := s.repo.FindByID(ctx, recipe.RecipeID)
	if errors.Is(err, repository.ErrRecipeNotFound) {
		return nil, recipeNotFound("id", recipe.RecipeID.String())
	}
	if err != nil {
		return nil, err
	}

	existing.RecipeName = recipe.RecipeName
	existing.Category = recipe.Category
	existing.Servings = recipe.Servings
	existing.Instructions = recipe.Instructions
	existing.Ingredients = recipe.Ingredients

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.log.Info("recipe updated",
		zap.Stringer("recipeId", updated.RecipeID),
		zap.Int("ingredients", len(updated.Ingredients)),
	)
	return updated, nil
}

// DeleteRecipeByID removes a recipe and its ingredients. Deleting an unknown id succeeds.
func (s *RecipeService) DeleteRecipeByID(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info("recipe deleted", zap.Stringer("recipeId", id))
	return nil
}

// SearchRecipesByIngredients returns the recipes matching all set filter criteria
func (s *RecipeService) SearchRecipesByIngredients(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error) {
	return s.repo.FilterByCriteria(ctx, filter)
}
