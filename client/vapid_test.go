package client

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeApplicationServerKey(t *testing.T) {
	raw := []byte{0x04, 0xfb, 0x01, 0x7f, 0xde, 0xad, 0xbe, 0xef}

	unpadded := base64.RawURLEncoding.EncodeToString(raw)
	decoded, err := DecodeApplicationServerKey(unpadded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	padded := base64.URLEncoding.EncodeToString(raw)
	decoded, err = DecodeApplicationServerKey(padded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeApplicationServerKeyInvalid(t *testing.T) {
	_, err := DecodeApplicationServerKey("not*base64!")
	assert.Error(t, err)
}
