package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/mocks"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRecipeTestRouter(svc service.IRecipeService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()))
	NewRecipeHandler(svc).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleRecipe() model.Recipe {
	id := uuid.New()
	return model.Recipe{
		RecipeID:     id,
		RecipeName:   "Banana Bread",
		Category:     "Desert",
		Servings:     4,
		Instructions: "Mash, mix, bake",
		Ingredients: []model.Ingredient{
			{IngredientID: uuid.New(), RecipeID: id, Name: "Banana"},
		},
	}
}

func TestAddRecipeHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	created := sampleRecipe()
	svc.On("AddRecipe", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return r.RecipeName == "Banana Bread" && len(r.Ingredients) == 1
	})).Return(&created, nil)

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodPost, "/recipe", map[string]interface{}{
		"recipeName":   "Banana Bread",
		"category":     "Desert",
		"servings":     4,
		"instructions": "Mash, mix, bake",
		"ingredients":  []map[string]string{{"name": "Banana"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.RecipeID.String(), got["recipeId"])
	ingredients := got["ingredients"].([]interface{})
	assert.Contains(t, ingredients[0], "ingredientId")
	assert.NotContains(t, ingredients[0], "recipeId")
	svc.AssertExpectations(t)
}

func TestAddRecipeHandlerValidation(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	router := setupRecipeTestRouter(svc)

	for name, body := range map[string]interface{}{
		"missing name":            map[string]interface{}{"category": "Desert"},
		"ingredient without name": map[string]interface{}{"recipeName": "Toast", "ingredients": []map[string]string{{}}},
		"wrong type":              map[string]interface{}{"recipeName": "Toast", "servings": "four"},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/recipe", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	svc.AssertNotCalled(t, "AddRecipe", mock.Anything, mock.Anything)
}

func TestAddRecipeHandlerConflict(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("AddRecipe", mock.Anything, mock.Anything).
		Return(nil, &service.AlreadyExistsError{RecipeName: "Banana Bread"})

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodPost, "/recipe", map[string]string{"recipeName": "Banana Bread"})

	assert.Equal(t, http.StatusConflict, w.Code)
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Recipe already exist with Banana Bread", body.Message)
}

func TestGetAllRecipesHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("GetAllRecipes", mock.Anything).Return(nil, nil)

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodGet, "/recipes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetRecipesByCategoryHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("GetRecipesByCategory", mock.Anything, "Desert").Return([]model.Recipe{sampleRecipe()}, nil)
	svc.On("GetRecipesByCategory", mock.Anything, "Soup").
		Return(nil, &service.NotFoundError{Message: "No recipes found under :Soup"})
	router := setupRecipeTestRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/recipes/category/Desert", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 1)

	w = doJSON(t, router, http.MethodGet, "/recipes/category/Soup", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipeHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	recipe := sampleRecipe()
	svc.On("UpdateRecipeByID", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return r.RecipeID == recipe.RecipeID
	})).Return(&recipe, nil)

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodPut, "/recipe", recipe)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe updated successfully.", w.Body.String())
}

func TestUpdateRecipeHandlerNotFound(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	recipe := sampleRecipe()
	svc.On("UpdateRecipeByID", mock.Anything, mock.Anything).
		Return(nil, &service.NotFoundError{Message: "Recipe not found with id : " + recipe.RecipeID.String()})

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodPut, "/recipe", recipe)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipeHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	id := uuid.New()
	svc.On("DeleteRecipeByID", mock.Anything, id).Return(nil)
	router := setupRecipeTestRouter(svc)

	w := doJSON(t, router, http.MethodDelete, "/recipe/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted successfully.", w.Body.String())

	w = doJSON(t, router, http.MethodDelete, "/recipe/42", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "DeleteRecipeByID", 1)
}

func TestSearchRecipesHandler(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	servings := 1
	svc.On("SearchRecipesByIngredients", mock.Anything, &model.RecipesFilterRequest{
		Category:    "Fish",
		Servings:    &servings,
		Ingredients: map[string]bool{"pepper": true},
	}).Return([]model.Recipe{sampleRecipe()}, nil)
	svc.On("SearchRecipesByIngredients", mock.Anything, &model.RecipesFilterRequest{}).Return(nil, nil)
	router := setupRecipeTestRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/search/recipes", map[string]interface{}{
		"category":    "Fish",
		"servings":    1,
		"ingredients": map[string]bool{"pepper": true},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 1)

	w = doJSON(t, router, http.MethodPost, "/search/recipes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecipeHandlerInternalError(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("GetAllRecipes", mock.Anything).Return(nil, errors.New("database is locked"))

	w := doJSON(t, setupRecipeTestRouter(svc), http.MethodGet, "/recipes", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "locked")
}
