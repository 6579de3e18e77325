package schema

import (
	"github.com/google/uuid"
)

// CREATE TABLE "push_subscriptions" (
// "subscription_id" uuid NOT NULL,
// "subscription_data" jsonb NOT NULL, PRIMARY KEY ("subscription_id"));

// SubscriptionKeys carry the encryption material the push service handed the
// browser on subscribe.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// SubscriptionData is the serialized browser subscription. The endpoint and
// keys are opaque to this service and forwarded unchanged on delivery.
type SubscriptionData struct {
	Endpoint       string           `json:"endpoint"`
	ExpirationTime *float64         `json:"expirationTime,omitempty"`
	Keys           SubscriptionKeys `json:"keys"`
}

// PushSubscription is one registry row.
type PushSubscription struct {
	SubscriptionID   uuid.UUID        `db:"subscription_id"`
	SubscriptionData SubscriptionData `db:"subscription_data"`
}
