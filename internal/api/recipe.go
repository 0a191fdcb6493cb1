package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/service"
)

const (
	msgRecipeUpdated = "Recipe updated successfully."
	msgRecipeDeleted = "Recipe deleted successfully."
)

type RecipeHandler struct {
	service service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{service: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/recipe", h.AddRecipe)
	router.PUT("/recipe", h.UpdateRecipe)
	router.DELETE("/recipe/:recipeId", h.DeleteRecipe)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.GetAllRecipes)
		recipes.GET("/category/:category", h.GetRecipesByCategory)
	}

	router.POST("/search/recipes", h.SearchRecipes)
}

// bindError marks err as a client input problem so the error middleware answers 400
func bindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
}

func (h *RecipeHandler) AddRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.service.AddRecipe(c.Request.Context(), &recipe)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, created)
}

func (h *RecipeHandler) GetAllRecipes(c *gin.Context) {
	recipes, err := h.service.GetAllRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, nonNil(recipes))
}

func (h *RecipeHandler) GetRecipesByCategory(c *gin.Context) {
	recipes, err := h.service.GetRecipesByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.service.UpdateRecipeByID(c.Request.Context(), &recipe); err != nil {
		_ = c.Error(err)
		return
	}

	c.String(http.StatusOK, msgRecipeUpdated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		bindError(c, fmt.Errorf("invalid recipe id %q", c.Param("recipeId")))
		return
	}

	if err := h.service.DeleteRecipeByID(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.String(http.StatusOK, msgRecipeDeleted)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var filter model.RecipesFilterRequest
	// an empty body searches without constraints
	if err := c.ShouldBindJSON(&filter); err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return
	}

	recipes, err := h.service.SearchRecipesByIngredients(c.Request.Context(), &filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, nonNil(recipes))
}

// nonNil keeps empty results serialized as [] rather than null
func nonNil(recipes []model.Recipe) []model.Recipe {
	if recipes == nil {
		return []model.Recipe{}
	}
	return recipes
}
