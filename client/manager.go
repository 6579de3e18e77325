package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/schema"
)

// deniedAlertMessage is shown when the user tries to subscribe after having
// blocked notifications. The platform will not re-prompt once denied.
const deniedAlertMessage = "لقد قمت بحظر الإشعارات. يرجى تمكينها من إعدادات المتصفح."

// SubscriptionStore is the registry surface the manager needs: inserting the
// serialized subscription it just created.
type SubscriptionStore interface {
	Insert(ctx context.Context, data schema.SubscriptionData) (uuid.UUID, error)
}

// Manager owns the client-side push subscription lifecycle. All platform
// failures are caught and logged here; they never propagate to the UI.
type Manager struct {
	logger         *zap.SugaredLogger
	platform       PushPlatform
	store          SubscriptionStore
	alerter        Alerter
	vapidPublicKey string

	subscribed bool
	permission PermissionState
	loading    bool
}

func NewManager(logger *zap.SugaredLogger, platform PushPlatform, store SubscriptionStore, alerter Alerter, vapidPublicKey string) *Manager {
	return &Manager{
		logger:         logger,
		platform:       platform,
		store:          store,
		alerter:        alerter,
		vapidPublicKey: vapidPublicKey,
		permission:     PermissionDefault,
		loading:        true,
	}
}

// Initialize runs once on load. On platforms without push capability it
// settles silently with subscribed=false for the session.
func (m *Manager) Initialize(ctx context.Context) {
	defer func() { m.loading = false }()

	if !m.platform.Supported() {
		return
	}

	m.permission = m.platform.Permission()

	sub, err := m.platform.GetSubscription(ctx)
	if err != nil {
		m.logger.Errorw("Failed to query existing subscription", "error", err)
		return
	}
	if sub != nil {
		m.subscribed = true
	}
}

// RequestPermissionAndSubscribe prompts for notification permission and, if
// granted, subscribes. A previously denied permission short-circuits into a
// blocking alert instead of prompting again.
func (m *Manager) RequestPermissionAndSubscribe(ctx context.Context) {
	if m.permission == PermissionDenied {
		m.alerter.Alert(deniedAlertMessage)
		return
	}

	permission, err := m.platform.RequestPermission(ctx)
	if err != nil {
		m.logger.Errorw("Permission request failed", "error", err)
		return
	}
	m.permission = permission

	if permission == PermissionGranted {
		m.Subscribe(ctx)
	}
}

// Subscribe registers with the push service and persists the subscription.
// The registry insert must succeed before the manager considers itself
// subscribed; on insert failure the platform subscription is rolled back so
// no orphaned client-side registration remains.
func (m *Manager) Subscribe(ctx context.Context) {
	if m.vapidPublicKey == "" {
		m.logger.Error("VAPID public key not found")
		return
	}

	applicationServerKey, err := DecodeApplicationServerKey(m.vapidPublicKey)
	if err != nil {
		m.logger.Errorw("Invalid VAPID public key", "error", err)
		return
	}

	sub, err := m.platform.Subscribe(ctx, SubscribeOptions{
		UserVisibleOnly:      true,
		ApplicationServerKey: applicationServerKey,
	})
	if err != nil {
		m.logger.Errorw("Failed to subscribe the user", "error", err)
		return
	}

	if _, err := m.store.Insert(ctx, sub.Data()); err != nil {
		m.logger.Errorw("Error saving subscription", "error", err)
		if err := sub.Unsubscribe(ctx); err != nil {
			m.logger.Errorw("Failed to roll back platform subscription", "error", err)
		}
		return
	}

	m.subscribed = true
}

// Subscribed reports whether a registered subscription exists.
func (m *Manager) Subscribed() bool {
	return m.subscribed
}

// Permission returns the last observed permission state.
func (m *Manager) Permission() PermissionState {
	return m.permission
}

// Loading reports whether Initialize has completed.
func (m *Manager) Loading() bool {
	return m.loading
}
