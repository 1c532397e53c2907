package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JobInfo describes one registered guarded job
type JobInfo struct {
	Key          string `json:"key"`
	TTLSeconds   int    `json:"ttl_seconds"`
	MaxRetries   int    `json:"max_retries"`
	RetryDelayMs int    `json:"retry_delay_ms"`
	Locked       bool   `json:"locked"`
}

// listJobs godoc
// @Summary List guarded jobs
// @Description List all registered guarded jobs with their lock options and current lock state
// @Tags jobs
// @Produce json
// @Success 200 {array} JobInfo
// @Router /jobs [get]
func (api *apiDetails) listJobs(c *gin.Context) {
	ctx := c.Request.Context()

	registry := api.gate.Registry()
	keys := registry.Keys()
	jobs := make([]JobInfo, 0, len(keys))
	for _, key := range keys {
		opts, err := registry.Options(key)
		if err != nil {
			// Entry removed between Keys and Options, skip it
			continue
		}
		jobs = append(jobs, JobInfo{
			Key:          key,
			TTLSeconds:   int(opts.TTL.Seconds()),
			MaxRetries:   opts.MaxRetries,
			RetryDelayMs: int(opts.RetryDelay.Milliseconds()),
			Locked:       api.coord.IsLocked(ctx, key),
		})
	}

	c.JSON(http.StatusOK, jobs)
}
