package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/config"
	"github.com/ayah-app/notification-service/schema"
)

// ErrSubscriptionGone reports that the push service no longer knows the
// endpoint (404/410). The subscription should be pruned from the registry.
var ErrSubscriptionGone = errors.New("push subscription gone")

// ErrNotConfigured reports missing VAPID credentials.
var ErrNotConfigured = errors.New("VAPID credentials are not configured")

// Sender delivers one payload to one subscription endpoint.
type Sender interface {
	Send(ctx context.Context, data schema.SubscriptionData, payload []byte) error
}

// WebPushSender delivers payloads through the Web Push protocol, signing
// each request with the configured VAPID key pair.
type WebPushSender struct {
	logger *zap.SugaredLogger
	vapid  config.VAPIDConfig
	ttl    int
}

func NewWebPushSender(logger *zap.SugaredLogger, vapid config.VAPIDConfig) *WebPushSender {
	return &WebPushSender{
		logger: logger,
		vapid:  vapid,
		ttl:    300,
	}
}

func (s *WebPushSender) Send(ctx context.Context, data schema.SubscriptionData, payload []byte) error {
	sub := &webpush.Subscription{
		Endpoint: data.Endpoint,
		Keys: webpush.Keys{
			P256dh: data.Keys.P256dh,
			Auth:   data.Keys.Auth,
		},
	}

	s.logger.Debugw("Sending web notification", "endpoint", data.Endpoint)
	resp, err := webpush.SendNotificationWithContext(ctx, payload, sub, &webpush.Options{
		TTL:             s.ttl,
		Subscriber:      s.vapid.Subject,
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
	})
	if err != nil {
		return fmt.Errorf("sending push notification: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: push service returned %d", ErrSubscriptionGone, resp.StatusCode)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}
