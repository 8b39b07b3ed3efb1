package handlers

import (
	"net/http"

	"github.com/SscSPs/mlm_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerHealthRoutes(r *gin.Engine, storage string) {
	r.GET("/health", getHealth(storage))
}

// getHealth godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func getHealth(storage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "OK", Storage: storage})
	}
}
