package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

func TestEnvelopeCodec_Encrypt(t *testing.T) {
	codec := NewEnvelopeCodec()
	key := generateKey(t)

	t.Run("produces a version 1 envelope with fresh nonce", func(t *testing.T) {
		env, err := codec.Encrypt(map[string]any{"name": "Checking"}, key)
		require.NoError(t, err)

		assert.Equal(t, cryptoDomain.EnvelopeVersion, env.Version)
		assert.Len(t, env.IV, cryptoDomain.NonceSize)
		assert.NotEmpty(t, env.Ciphertext)
	})

	t.Run("same plaintext twice yields different envelopes", func(t *testing.T) {
		value := map[string]string{"name": "Groceries"}

		first, err := codec.Encrypt(value, key)
		require.NoError(t, err)
		second, err := codec.Encrypt(value, key)
		require.NoError(t, err)

		assert.NotEqual(t, first.IV, second.IV)
		assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
	})

	t.Run("invalid key is rejected", func(t *testing.T) {
		_, err := codec.Encrypt("value", make([]byte, 16))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestEnvelopeCodec_Decrypt(t *testing.T) {
	codec := NewEnvelopeCodec()
	key := generateKey(t)

	t.Run("round trip preserves nested structures", func(t *testing.T) {
		value := map[string]any{
			"name":    "Checking",
			"tags":    []any{"daily", "salary"},
			"nested":  map[string]any{"depth": "two"},
			"comment": "utf-8 précis ✓",
		}

		env, err := codec.Encrypt(value, key)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, codec.Decrypt(env, key, &out))
		assert.Equal(t, value, out)
	})

	t.Run("unrecognized version fails closed", func(t *testing.T) {
		env, err := codec.Encrypt("value", key)
		require.NoError(t, err)

		for _, version := range []int{0, 2, 7, -1} {
			bad := *env
			bad.Version = version

			var out string
			err := codec.Decrypt(&bad, key, &out)
			assert.ErrorIs(t, err, cryptoDomain.ErrUnrecognizedVersion)
			assert.NotErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		}
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		env, err := codec.Encrypt("value", key)
		require.NoError(t, err)

		var out string
		err = codec.Decrypt(env, generateKey(t), &out)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("single bit flip in ciphertext fails authentication", func(t *testing.T) {
		env, err := codec.Encrypt("value", key)
		require.NoError(t, err)

		env.Ciphertext[len(env.Ciphertext)/2] ^= 0x80

		var out string
		err = codec.Decrypt(env, key, &out)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("single bit flip in iv fails authentication", func(t *testing.T) {
		env, err := codec.Encrypt("value", key)
		require.NoError(t, err)

		env.IV[0] ^= 0x01

		var out string
		err = codec.Decrypt(env, key, &out)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("nil envelope is a decryption failure", func(t *testing.T) {
		var out string
		err := codec.Decrypt(nil, key, &out)
		assert.ErrorIs(t, err, cryptoDomain.ErrMissingEnvelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})
}
