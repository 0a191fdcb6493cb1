package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewHealthHandler(db *gorm.DB, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// HealthCheck returns the health status of the API and its database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
