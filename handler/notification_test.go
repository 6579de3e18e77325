package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/broadcast"
	"github.com/ayah-app/notification-service/push"
)

type stubBroadcaster struct {
	result broadcast.Result
	err    error
}

func (s *stubBroadcaster) RunDaily(context.Context) (broadcast.Result, error) {
	return s.result, s.err
}

func (s *stubBroadcaster) RunTest(context.Context) (broadcast.Result, error) {
	return s.result, s.err
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func newNotificationRouter(job Broadcaster) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(zap.NewNop().Sugar(), job)
	r := gin.New()
	r.POST("/api/notifications/daily", h.SendDaily)
	r.POST("/api/notifications/test", h.SendTest)
	return r
}

func TestSendDailyReportsSubscriberCount(t *testing.T) {
	router := newNotificationRouter(&stubBroadcaster{result: broadcast.Result{Attempted: 4, Delivered: 4}})

	w := performRequest(router, http.MethodPost, "/api/notifications/daily")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Sent notifications to 4 subscribers.", body["message"])
}

func TestSendTestWithNoSubscribers(t *testing.T) {
	router := newNotificationRouter(&stubBroadcaster{})

	w := performRequest(router, http.MethodPost, "/api/notifications/test")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No active subscriptions found to send a test notification.", body["message"])
}

func TestSendDailyMissingCredentials(t *testing.T) {
	router := newNotificationRouter(&stubBroadcaster{err: push.ErrNotConfigured})

	w := performRequest(router, http.MethodPost, "/api/notifications/daily")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
