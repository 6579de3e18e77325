package client

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeApplicationServerKey converts a URL-safe base64 VAPID public key to
// the raw bytes the platform push manager expects. Keys are accepted with or
// without padding.
func DecodeApplicationServerKey(key string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(key, "="))
	if err != nil {
		return nil, fmt.Errorf("decoding application server key: %w", err)
	}
	return raw, nil
}
