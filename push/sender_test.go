package push

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/config"
	"github.com/ayah-app/notification-service/schema"
)

// testSubscription builds a subscription with real encryption material so
// the webpush library can encrypt against it.
func testSubscription(t *testing.T, endpoint string) schema.SubscriptionData {
	t.Helper()

	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return schema.SubscriptionData{
		Endpoint: endpoint,
		Keys: schema.SubscriptionKeys{
			P256dh: base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
			Auth:   base64.RawURLEncoding.EncodeToString(auth),
		},
	}
}

func testSender(t *testing.T) *WebPushSender {
	t.Helper()

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	return NewWebPushSender(zap.NewNop().Sugar(), config.VAPIDConfig{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Subject:    "mailto:admin@example.com",
	})
}

func TestSendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := testSender(t)
	err := sender.Send(context.Background(), testSubscription(t, server.URL), []byte(`{"title":"t","body":"b"}`))
	assert.NoError(t, err)
}

func TestSendClassifiesGoneEndpoints(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		sender := testSender(t)
		err := sender.Send(context.Background(), testSubscription(t, server.URL), []byte(`{}`))
		assert.ErrorIs(t, err, ErrSubscriptionGone, "status %d must be classified as gone", status)

		server.Close()
	}
}

func TestSendOtherErrorsAreNotGone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := testSender(t)
	err := sender.Send(context.Background(), testSubscription(t, server.URL), []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSubscriptionGone)
}
