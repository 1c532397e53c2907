package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LockStatus reports whether an unexpired lock record exists for a key
type LockStatus struct {
	Key    string `json:"key"`
	Locked bool   `json:"locked"`
}

// lockStatus godoc
// @Summary Lock status
// @Description Report whether an unexpired lock record exists for the given key
// @Tags locks
// @Produce json
// @Param key path string true "Lock key"
// @Success 200 {object} LockStatus
// @Router /locks/{key} [get]
func (api *apiDetails) lockStatus(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	c.JSON(http.StatusOK, LockStatus{
		Key:    key,
		Locked: api.coord.IsLocked(ctx, key),
	})
}
