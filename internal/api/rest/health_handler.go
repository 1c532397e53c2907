package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// health godoc
// @Summary Health check
// @Description Check service health
// @Tags health
// @Produce json
// @Success 200 {object} string "ok"
// @Router /health [get]
func (api *apiDetails) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
