package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	raw := []byte("not really a png")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	ct, ext, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)
	assert.Equal(t, raw, data)
}

func TestDecodeDataURIJpeg(t *testing.T) {
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8})
	_, ext, _, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)
}

func TestDecodeDataURIRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "hello", "data:image/png,abc", "data:;base64,abc"} {
		_, _, _, err := DecodeDataURI(in)
		assert.ErrorIs(t, err, ErrInvalidDataURI, in)
	}

	_, _, _, err := DecodeDataURI("data:image/png;base64,@@@")
	assert.Error(t, err)
}
