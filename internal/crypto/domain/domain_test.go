package domain

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptedEnvelopeWireShape(t *testing.T) {
	env := EncryptedEnvelope{
		Ciphertext: []byte("cipher-bytes-with-tag"),
		IV:         []byte("twelve-bytes"),
		Version:    EnvelopeVersion,
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// The wire shape must use exactly these field names with base64 byte fields.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 3)
	assert.Equal(t, base64.StdEncoding.EncodeToString(env.Ciphertext), raw["ciphertext"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(env.IV), raw["iv"])
	assert.Equal(t, float64(1), raw["version"])

	var decoded EncryptedEnvelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, env, decoded)
}

func TestMasterKeyExport(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	mk := &MasterKey{ID: "master", Key: key}
	exported := mk.Export()

	decoded, err := base64.StdEncoding.DecodeString(exported)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestMasterKeyValid(t *testing.T) {
	assert.True(t, (&MasterKey{Key: make([]byte, KeySize)}).Valid())
	assert.False(t, (&MasterKey{Key: make([]byte, 16)}).Valid())
	assert.False(t, (&MasterKey{}).Valid())
}

func TestZero(t *testing.T) {
	t.Run("overwrites all bytes", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("nil slice is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
