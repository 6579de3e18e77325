package client

import (
	"context"

	"github.com/ayah-app/notification-service/schema"
)

// PermissionState mirrors the platform notification permission.
type PermissionState string

const (
	PermissionDefault PermissionState = "default"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)

// SubscribeOptions are the options passed to the platform push manager when
// creating a subscription.
type SubscribeOptions struct {
	// UserVisibleOnly must be true: this application never sends silent
	// pushes.
	UserVisibleOnly bool

	// ApplicationServerKey is the raw VAPID public key.
	ApplicationServerKey []byte
}

// PlatformSubscription is one live registration with the push service.
type PlatformSubscription interface {
	// Data returns the serialized subscription (endpoint and keys).
	Data() schema.SubscriptionData

	// Unsubscribe tears the registration down on the push service side.
	Unsubscribe(ctx context.Context) error
}

// PushPlatform is the slice of platform push capability the manager drives.
// A real deployment backs it with the browser push manager; tests substitute
// a fake.
type PushPlatform interface {
	// Supported reports whether the platform offers background execution
	// and push at all.
	Supported() bool

	// Permission returns the current notification permission without
	// prompting.
	Permission() PermissionState

	// RequestPermission prompts the user and returns the resulting state.
	RequestPermission(ctx context.Context) (PermissionState, error)

	// GetSubscription returns the existing subscription, or nil if there
	// is none.
	GetSubscription(ctx context.Context) (PlatformSubscription, error)

	// Subscribe creates a new subscription with the push service.
	Subscribe(ctx context.Context, opts SubscribeOptions) (PlatformSubscription, error)
}

// Alerter surfaces a blocking message to the user.
type Alerter interface {
	Alert(message string)
}
