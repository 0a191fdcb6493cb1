package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()))
	db := testhelpers.SetupTestDatabase(t)
	router.GET("/health", NewHealthHandler(db, zap.NewNop()).HealthCheck)
	RegisterRoutes(router, db, zap.NewNop())
	return router
}

func decodeRecipes(t *testing.T, body []byte) []model.Recipe {
	t.Helper()
	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal(body, &recipes))
	return recipes
}

func ingredients(names ...string) []map[string]string {
	out := make([]map[string]string, len(names))
	for i, n := range names {
		out[i] = map[string]string{"name": n}
	}
	return out
}

func TestRecipeLifecycle(t *testing.T) {
	router := setupAPI(t)

	fixtures := []map[string]interface{}{
		{"recipeName": "Baked Salmon", "category": "Fish", "servings": 1,
			"instructions": "Season and bake in the Oven", "ingredients": ingredients("Salmon", "Pepper", "Lemon")},
		{"recipeName": "Fish Curry", "category": "Fish", "servings": 3,
			"instructions": "Simmer in coconut milk", "ingredients": ingredients("Cod", "Coconut milk", "Curry paste")},
		{"recipeName": "Banana Bread", "category": "Desert", "servings": 4,
			"instructions": "Mash, mix, bake in the oven", "ingredients": ingredients("Banana", "Flour", "Sugar")},
		{"recipeName": "Greek Salad", "category": "Vegetarian", "servings": 2,
			"instructions": "Chop and toss", "ingredients": ingredients("Tomato", "Cucumber", "Feta")},
	}

	var bread model.Recipe
	for _, f := range fixtures {
		w := doJSON(t, router, http.MethodPost, "/recipe", f)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var created model.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Len(t, created.Ingredients, 3)
		if created.RecipeName == "Banana Bread" {
			bread = created
		}
	}

	// duplicate name
	w := doJSON(t, router, http.MethodPost, "/recipe", fixtures[2])
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/recipes", nil)
	assert.Len(t, decodeRecipes(t, w.Body.Bytes()), 4)

	w = doJSON(t, router, http.MethodGet, "/recipes/category/Fish", nil)
	assert.Len(t, decodeRecipes(t, w.Body.Bytes()), 2)

	w = doJSON(t, router, http.MethodGet, "/recipes/category/Soup", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// append an ingredient
	bread.Ingredients = append(bread.Ingredients, model.Ingredient{Name: "Dry fruits"})
	w = doJSON(t, router, http.MethodPut, "/recipe", bread)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/recipes/category/Desert", nil)
	deserts := decodeRecipes(t, w.Body.Bytes())
	require.Len(t, deserts, 1)
	assert.Equal(t, []string{"Banana", "Flour", "Sugar", "Dry fruits"}, deserts[0].IngredientNames())

	w = doJSON(t, router, http.MethodPost, "/search/recipes", map[string]interface{}{
		"category":     "Fish",
		"servings":     1,
		"instructions": "Oven",
		"ingredients":  map[string]bool{"pepper": true},
	})
	found := decodeRecipes(t, w.Body.Bytes())
	require.Len(t, found, 1)
	assert.Equal(t, "Baked Salmon", found[0].RecipeName)

	w = doJSON(t, router, http.MethodDelete, "/recipe/"+bread.RecipeID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/recipes", nil)
	assert.Len(t, decodeRecipes(t, w.Body.Bytes()), 3)

	w = doJSON(t, router, http.MethodGet, "/recipes/category/Desert", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	w := doJSON(t, setupAPI(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	router := gin.New()
	router.GET("/health", NewHealthHandler(db, zap.NewNop()).HealthCheck)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
