package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = bytes.Repeat([]byte{7}, 32)

func TestEncryptDecrypt(t *testing.T) {
	enc, err := Encrypt("9876543210", key)
	require.NoError(t, err)
	assert.NotContains(t, enc, "9876543210")

	again, err := Encrypt("9876543210", key)
	require.NoError(t, err)
	assert.NotEqual(t, enc, again, "nonce must differ per call")

	dec, err := Decrypt(enc, key)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", dec)
}

func TestEncryptEmpty(t *testing.T) {
	enc, err := Encrypt("", key)
	require.NoError(t, err)
	assert.Empty(t, enc)

	dec, err := Decrypt("", key)
	require.NoError(t, err)
	assert.Empty(t, dec)
}

func TestDecryptErrors(t *testing.T) {
	_, err := Encrypt("x", []byte("short"))
	assert.Error(t, err)

	_, err = Decrypt("zz", key)
	assert.Error(t, err)

	_, err = Decrypt("abcd", key)
	assert.Error(t, err)

	enc, err := Encrypt("secret", key)
	require.NoError(t, err)
	_, err = Decrypt(enc, bytes.Repeat([]byte{8}, 32))
	assert.Error(t, err)
}
