package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecipeNotFound is returned by lookups by id that match nothing
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository maps recipe persistence onto gorm. Ingredient ownership is
// cascaded here: the ingredient table is kept in sync with the recipe's list on
// every save and cleared on delete.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func withIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("ingredients.position ASC")
	})
}

// FindAll returns every stored recipe
func (r *RecipeRepository) FindAll(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := r.db.WithContext(ctx).Scopes(withIngredients).Order("recipes.created_at ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// FindByID returns the recipe with the given id or ErrRecipeNotFound
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).Scopes(withIngredients).First(&recipe, "recipes.recipe_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// FindByCategory returns the recipes in a category, possibly none
func (r *RecipeRepository) FindByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Scopes(withIngredients, CategoryEquals(category)).
		Order("recipes.created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes in category %q: %w", category, err)
	}
	return recipes, nil
}

// ExistsByRecipeName reports whether a recipe with exactly this name is stored
func (r *RecipeRepository) ExistsByRecipeName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("recipe_name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check recipe name: %w", err)
	}
	return count > 0, nil
}

// Save inserts a recipe without an id, or replaces the stored recipe and its
// ingredient list. Ingredients missing from the incoming list are deleted,
// known ones updated and the rest inserted. An ingredient id that does not
// already belong to this recipe is discarded and a fresh one assigned.
func (r *RecipeRepository) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Position = i
	}

	if recipe.RecipeID == uuid.Nil {
		if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
			return nil, fmt.Errorf("failed to create recipe: %w", err)
		}
		return recipe, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).
			Where("recipe_id = ?", recipe.RecipeID).
			Updates(map[string]interface{}{
				"recipe_name":  recipe.RecipeName,
				"category":     recipe.Category,
				"servings":     recipe.Servings,
				"instructions": recipe.Instructions,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return err
			}
		}

		var owned []uuid.UUID
		if err := tx.Model(&model.Ingredient{}).Where("recipe_id = ?", recipe.RecipeID).Pluck("ingredient_id", &owned).Error; err != nil {
			return err
		}
		isOwned := make(map[uuid.UUID]bool, len(owned))
		for _, id := range owned {
			isOwned[id] = true
		}

		keep := make([]uuid.UUID, 0, len(recipe.Ingredients))
		for i := range recipe.Ingredients {
			ing := &recipe.Ingredients[i]
			ing.RecipeID = recipe.RecipeID
			if !isOwned[ing.IngredientID] {
				ing.IngredientID = uuid.Nil
				continue
			}
			// the same id twice in one payload is kept once
			delete(isOwned, ing.IngredientID)
			keep = append(keep, ing.IngredientID)
		}

		stale := tx.Where("recipe_id = ?", recipe.RecipeID)
		if len(keep) > 0 {
			stale = stale.Where("ingredient_id NOT IN ?", keep)
		}
		if err := stale.Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}

		for i := range recipe.Ingredients {
			ing := &recipe.Ingredients[i]
			if ing.IngredientID == uuid.Nil {
				if err := tx.Create(ing).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(&model.Ingredient{}).
				Where("ingredient_id = ?", ing.IngredientID).
				Updates(map[string]interface{}{"name": ing.Name, "position": ing.Position}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe %s: %w", recipe.RecipeID, err)
	}

	return r.FindByID(ctx, recipe.RecipeID)
}

// DeleteByID removes a recipe and its ingredients. Unknown ids are a no-op.
func (r *RecipeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Where("recipe_id = ?", id).Delete(&model.Recipe{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	return nil
}

// FilterByCriteria returns the recipes matching every set field of the request
func (r *RecipeRepository) FilterByCriteria(ctx context.Context, filter *model.RecipesFilterRequest) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Scopes(withIngredients).
		Scopes(FilterScopes(filter)...).
		Order("recipes.created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter recipes: %w", err)
	}
	return recipes, nil
}
