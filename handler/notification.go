package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/broadcast"
	"github.com/ayah-app/notification-service/metrics"
)

// Broadcaster is the job surface the handler triggers.
type Broadcaster interface {
	RunDaily(ctx context.Context) (broadcast.Result, error)
	RunTest(ctx context.Context) (broadcast.Result, error)
}

// NotificationHandler exposes the broadcast job over HTTP, for the scheduler
// and for manual triggering.
type NotificationHandler struct {
	logger *zap.SugaredLogger
	job    Broadcaster
}

func NewNotificationHandler(logger *zap.SugaredLogger, job Broadcaster) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
		job:    job,
	}
}

// SendDaily broadcasts a random daily reminder to every subscriber.
func (h *NotificationHandler) SendDaily(c *gin.Context) {
	metrics.BroadcastsTotal.WithLabelValues("daily").Inc()

	result, err := h.job.RunDaily(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Error in daily broadcast", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Attempted == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No subscriptions to notify."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Sent notifications to %d subscribers.", result.Attempted),
	})
}

// SendTest broadcasts the fixed test payload to every subscriber.
func (h *NotificationHandler) SendTest(c *gin.Context) {
	metrics.BroadcastsTotal.WithLabelValues("test").Inc()

	result, err := h.job.RunTest(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Error in test broadcast", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Attempted == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No active subscriptions found to send a test notification."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully sent test notifications to %d subscribers.", result.Attempted),
	})
}
