package receiver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/dto"
)

type fakeDisplayed struct {
	closed bool
}

func (f *fakeDisplayed) Close() error {
	f.closed = true
	return nil
}

type fakeNotifier struct {
	titles []string
	opts   []DisplayOptions
	err    error
	last   *fakeDisplayed
}

func (f *fakeNotifier) ShowNotification(_ context.Context, title string, opts DisplayOptions) (Displayed, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.titles = append(f.titles, title)
	f.opts = append(f.opts, opts)
	f.last = &fakeDisplayed{}
	return f.last, nil
}

type fakeWindow struct {
	focused    bool
	focusCalls int
}

func (f *fakeWindow) Focused() bool { return f.focused }

func (f *fakeWindow) Focus(context.Context) error {
	f.focusCalls++
	return nil
}

type fakeWindows struct {
	windows []Window
	opened  []string
}

func (f *fakeWindows) MatchAll(context.Context) ([]Window, error) { return f.windows, nil }

func (f *fakeWindows) OpenWindow(_ context.Context, url string) error {
	f.opened = append(f.opened, url)
	return nil
}

type fakeLifecycle struct {
	skips int
}

func (f *fakeLifecycle) SkipWaiting() { f.skips++ }

func newTestReceiver(notifier *fakeNotifier, windows *fakeWindows) (*Receiver, *fakeLifecycle) {
	lifecycle := &fakeLifecycle{}
	return NewReceiver(zap.NewNop().Sugar(), notifier, windows, lifecycle), lifecycle
}

func TestHandlePushDisplaysPayload(t *testing.T) {
	notifier := &fakeNotifier{}
	r, _ := newTestReceiver(notifier, &fakeWindows{})

	payload, err := json.Marshal(dto.Message{Title: "تذكير يومي", Body: "لا حول ولا قوة إلا بالله"})
	require.NoError(t, err)

	notification, err := r.HandlePush(context.Background(), payload)
	require.NoError(t, err)

	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "تذكير يومي", notifier.titles[0])
	opts := notifier.opts[0]
	assert.Equal(t, "لا حول ولا قوة إلا بالله", opts.Body)
	assert.Equal(t, "/pwa-192x192.png", opts.Icon)
	assert.Equal(t, "/mask-icon.svg", opts.Badge)
	assert.Equal(t, "rtl", opts.Dir)
	assert.Equal(t, "ar", opts.Lang)
	assert.Equal(t, []int{100, 50, 100}, opts.Vibrate)
	assert.Equal(t, StateDisplayed, notification.State())
}

func TestHandlePushFallsBackOnMissingPayload(t *testing.T) {
	notifier := &fakeNotifier{}
	r, _ := newTestReceiver(notifier, &fakeWindows{})

	notification, err := r.HandlePush(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "آية", notification.Title)
	assert.Equal(t, "تذكير...", notification.Options.Body)
}

func TestHandlePushFallsBackOnUnparseablePayload(t *testing.T) {
	notifier := &fakeNotifier{}
	r, _ := newTestReceiver(notifier, &fakeWindows{})

	notification, err := r.HandlePush(context.Background(), []byte("{not json"))
	require.NoError(t, err)

	assert.Equal(t, "آية", notification.Title)
	assert.Equal(t, "تذكير...", notification.Options.Body)
}

func TestHandlePushDisplayFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("display refused")}
	r, _ := newTestReceiver(notifier, &fakeWindows{})

	notification, err := r.HandlePush(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, StateDelivered, notification.State())
}

func TestHandleClickOpensRootWhenNoWindowIsOpen(t *testing.T) {
	notifier := &fakeNotifier{}
	windows := &fakeWindows{}
	r, _ := newTestReceiver(notifier, windows)

	notification, err := r.HandlePush(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, r.HandleClick(context.Background(), notification))

	assert.Equal(t, []string{"/"}, windows.opened)
	assert.True(t, notifier.last.closed)
	assert.Equal(t, StateClicked, notification.State())
}

func TestHandleClickFocusesTheFocusedWindow(t *testing.T) {
	first := &fakeWindow{}
	second := &fakeWindow{focused: true}
	windows := &fakeWindows{windows: []Window{first, second}}
	notifier := &fakeNotifier{}
	r, _ := newTestReceiver(notifier, windows)

	notification, err := r.HandlePush(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, r.HandleClick(context.Background(), notification))

	assert.Empty(t, windows.opened, "no new window when one is already open")
	assert.Zero(t, first.focusCalls)
	assert.Equal(t, 1, second.focusCalls)
}

func TestHandleClickFallsBackToFirstWindow(t *testing.T) {
	first := &fakeWindow{}
	second := &fakeWindow{}
	windows := &fakeWindows{windows: []Window{first, second}}
	r, _ := newTestReceiver(&fakeNotifier{}, windows)

	notification, err := r.HandlePush(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, r.HandleClick(context.Background(), notification))

	assert.Equal(t, 1, first.focusCalls)
	assert.Zero(t, second.focusCalls)
}

func TestLifecycleTransitions(t *testing.T) {
	r, _ := newTestReceiver(&fakeNotifier{}, &fakeWindows{})

	notification, err := r.HandlePush(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, StateDisplayed, notification.State())

	require.NoError(t, r.HandleDismiss(notification))
	assert.Equal(t, StateDismissed, notification.State())

	// A dismissed notification cannot be clicked.
	assert.Error(t, r.HandleClick(context.Background(), notification))
	assert.Equal(t, StateDismissed, notification.State())
}

func TestHandleInstallSkipsWaiting(t *testing.T) {
	r, lifecycle := newTestReceiver(&fakeNotifier{}, &fakeWindows{})

	r.HandleInstall()

	assert.Equal(t, 1, lifecycle.skips)
}
