package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewRecipeService(repository.NewRecipeRepository(db), nil)
	ctx := context.Background()

	created, err := seed(ctx, svc, defaultRecipes, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(defaultRecipes), created)

	created, err = seed(ctx, svc, defaultRecipes, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := svc.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(defaultRecipes))
}

func TestLoadRecipesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"recipeName": "Toast", "category": "Breakfast", "servings": 1, "instructions": "Toast it", "ingredients": ["Bread", "Butter"]}
	]`), 0o600))

	recipes, err := loadRecipes(path)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"Bread", "Butter"}, recipes[0].toModel().IngredientNames())

	_, err = loadRecipes(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
