package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/registry"
	"github.com/ayah-app/notification-service/schema"
)

// PushHandler serves the subscription endpoints used by the client-side
// subscription manager.
type PushHandler struct {
	logger         *zap.SugaredLogger
	registry       registry.Registry
	vapidPublicKey string
}

func NewPushHandler(logger *zap.SugaredLogger, reg registry.Registry, vapidPublicKey string) *PushHandler {
	return &PushHandler{
		logger:         logger,
		registry:       reg,
		vapidPublicKey: vapidPublicKey,
	}
}

// GetPublicKey returns the VAPID public key clients subscribe with.
func (h *PushHandler) GetPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publicKey": h.vapidPublicKey})
}

// CreateSubscription persists a serialized browser subscription and returns
// its record id.
func (h *PushHandler) CreateSubscription(c *gin.Context) {
	var data schema.SubscriptionData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription payload"})
		return
	}
	if data.Endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscription endpoint is required"})
		return
	}

	h.logger.Info("Inserting subscription into database...")
	subscriptionID, err := h.registry.Insert(c.Request.Context(), data)
	if err != nil {
		h.logger.Errorw("Error saving subscription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save subscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscriptionId": subscriptionID.String()})
}
