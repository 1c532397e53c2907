package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobguard/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func lockStatusRequest(api *apiDetails, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/locks/"+key, nil)
	c.Params = gin.Params{{Key: "key", Value: key}}

	api.lockStatus(c)
	return w
}

// TestLockStatus tests the lockStatus handler
func TestLockStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Held Lock", func(t *testing.T) {
		coord := mocks.NewMockCoordinator(ctrl)
		coord.EXPECT().IsLocked(gomock.Any(), "job-x").Return(true)

		api := newTestApi(t, coord, nil)
		w := lockStatusRequest(api, "job-x")

		assert.Equal(t, http.StatusOK, w.Code)

		var status LockStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "job-x", status.Key)
		assert.True(t, status.Locked)
	})

	t.Run("Free Lock", func(t *testing.T) {
		coord := mocks.NewMockCoordinator(ctrl)
		coord.EXPECT().IsLocked(gomock.Any(), "job-y").Return(false)

		api := newTestApi(t, coord, nil)
		w := lockStatusRequest(api, "job-y")

		assert.Equal(t, http.StatusOK, w.Code)

		var status LockStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.False(t, status.Locked)
	})
}
