package receiver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/dto"
)

// DisplayOptions are the system notification options the app always uses.
type DisplayOptions struct {
	Body    string
	Icon    string
	Badge   string
	Dir     string
	Lang    string
	Vibrate []int
}

// Displayed is the handle to a shown system notification.
type Displayed interface {
	Close() error
}

// Notifier displays system notifications.
type Notifier interface {
	ShowNotification(ctx context.Context, title string, opts DisplayOptions) (Displayed, error)
}

// Window is one open application window.
type Window interface {
	Focused() bool
	Focus(ctx context.Context) error
}

// WindowClient lists and opens application windows.
type WindowClient interface {
	MatchAll(ctx context.Context) ([]Window, error)
	OpenWindow(ctx context.Context, url string) error
}

// WorkerLifecycle controls the background context's activation.
type WorkerLifecycle interface {
	SkipWaiting()
}

// State tracks a notification through its lifecycle: delivered, then
// displayed, then clicked or dismissed.
type State string

const (
	StateDelivered State = "delivered"
	StateDisplayed State = "displayed"
	StateClicked   State = "clicked"
	StateDismissed State = "dismissed"
)

// Notification is one push message moving through the receiver.
type Notification struct {
	Title   string
	Options DisplayOptions

	mu        sync.Mutex
	state     State
	displayed Displayed
}

// State returns the notification's current lifecycle state.
func (n *Notification) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

func (n *Notification) transition(from, to State) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != from {
		return fmt.Errorf("invalid notification transition %s -> %s", n.state, to)
	}
	n.state = to
	return nil
}

// Receiver reacts to platform push events in a background context,
// independent of any open application window.
type Receiver struct {
	logger    *zap.SugaredLogger
	notifier  Notifier
	windows   WindowClient
	lifecycle WorkerLifecycle
}

func NewReceiver(logger *zap.SugaredLogger, notifier Notifier, windows WindowClient, lifecycle WorkerLifecycle) *Receiver {
	return &Receiver{
		logger:    logger,
		notifier:  notifier,
		windows:   windows,
		lifecycle: lifecycle,
	}
}

// HandlePush parses the pushed payload and displays it as a system
// notification. A missing or unparseable payload falls back to the default
// message. The caller must hold the triggering event open until this
// returns.
func (r *Receiver) HandlePush(ctx context.Context, payload []byte) (*Notification, error) {
	message := dto.DefaultMessage()
	if len(payload) > 0 {
		var parsed dto.Message
		if err := json.Unmarshal(payload, &parsed); err != nil {
			r.logger.Warnw("Unparseable push payload, using default message", "error", err)
		} else {
			message = parsed
		}
	}

	notification := &Notification{
		Title: message.Title,
		Options: DisplayOptions{
			Body:    message.Body,
			Icon:    "/pwa-192x192.png",
			Badge:   "/mask-icon.svg",
			Dir:     "rtl",
			Lang:    "ar",
			Vibrate: []int{100, 50, 100},
		},
		state: StateDelivered,
	}

	displayed, err := r.notifier.ShowNotification(ctx, notification.Title, notification.Options)
	if err != nil {
		return notification, fmt.Errorf("showing notification: %w", err)
	}
	notification.displayed = displayed
	_ = notification.transition(StateDelivered, StateDisplayed)

	return notification, nil
}

// HandleClick closes the notification, then brings the most recently focused
// application window to the foreground, or opens a new one at the root if
// none is open.
func (r *Receiver) HandleClick(ctx context.Context, notification *Notification) error {
	if err := notification.transition(StateDisplayed, StateClicked); err != nil {
		return err
	}
	if notification.displayed != nil {
		if err := notification.displayed.Close(); err != nil {
			r.logger.Warnw("Failed to close notification", "error", err)
		}
	}

	windows, err := r.windows.MatchAll(ctx)
	if err != nil {
		return fmt.Errorf("listing windows: %w", err)
	}

	if len(windows) == 0 {
		return r.windows.OpenWindow(ctx, "/")
	}

	target := windows[0]
	for _, window := range windows {
		if window.Focused() {
			target = window
		}
	}
	return target.Focus(ctx)
}

// HandleDismiss records that the user dismissed the notification without
// interacting with it.
func (r *Receiver) HandleDismiss(notification *Notification) error {
	return notification.transition(StateDisplayed, StateDismissed)
}

// HandleInstall takes control immediately instead of waiting for open
// application instances to close, so a freshly deployed receiver handles
// pushes right away.
func (r *Receiver) HandleInstall() {
	r.lifecycle.SkipWaiting()
}
