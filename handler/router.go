package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes.
func NewRouter(pushHandler *PushHandler, notificationHandler *NotificationHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/push/public-key", pushHandler.GetPublicKey)
	api.POST("/push/subscriptions", pushHandler.CreateSubscription)
	api.POST("/notifications/daily", notificationHandler.SendDaily)
	api.POST("/notifications/test", notificationHandler.SendTest)

	return r
}
