package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterRoutes wires the recipe stack onto router
func RegisterRoutes(router gin.IRouter, db *gorm.DB, log *zap.Logger) {
	recipeService := service.NewRecipeService(repository.NewRecipeRepository(db), log)
	NewRecipeHandler(recipeService).RegisterRoutes(router)
}
