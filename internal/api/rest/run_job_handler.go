package rest

import (
	"errors"
	"net/http"

	"jobguard/internal/guard"

	"github.com/gin-gonic/gin"
)

// runJob godoc
// @Summary Trigger a guarded job run
// @Description Run the job bound to the given lock key if its lock can be acquired
// @Tags jobs
// @Accept json
// @Produce json
// @Param key path string true "Lock key"
// @Success 200 {object} string "ok"
// @Failure 404 {object} ErrorResponse "Unknown job"
// @Failure 409 {object} ErrorResponse "Lock held by another instance"
// @Failure 500 {object} ErrorResponse "Job failed"
// @Router /jobs/{key}/run [post]
func (api *apiDetails) runJob(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	api.logger.Info("Manual job run triggered", "key", key)

	ran, err := api.gate.Run(ctx, key)
	if errors.Is(err, guard.ErrNotRegistered) {
		createErrorResponse(c, http.StatusNotFound, "Unknown job")
		return
	}
	if err != nil {
		api.logger.Error("Triggered job run failed",
			"key", key,
			"error", err,
		)
		createErrorResponse(c, http.StatusInternalServerError, "Job run failed")
		return
	}
	if !ran {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Job skipped, lock held by another instance",
			"status":  "skipped",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job run completed successfully",
		"status":  "completed",
	})
}
