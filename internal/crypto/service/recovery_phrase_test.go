package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

func TestRecoveryPhraseCodec_Encode(t *testing.T) {
	codec := NewRecoveryPhraseCodec()

	t.Run("groups of four joined with dashes", func(t *testing.T) {
		assert.Equal(t, "YWJj-ZGVm", codec.Encode("YWJjZGVm"))
	})

	t.Run("trailing partial group is kept", func(t *testing.T) {
		assert.Equal(t, "YWJj-ZG", codec.Encode("YWJjZG"))
	})

	t.Run("empty input yields empty phrase", func(t *testing.T) {
		assert.Equal(t, "", codec.Encode(""))
	})

	t.Run("exported 32-byte key yields eleven groups", func(t *testing.T) {
		exported := base64.StdEncoding.EncodeToString(make([]byte, cryptoDomain.KeySize))
		phrase := codec.Encode(exported)
		// 44 base64 characters split into 4-character groups.
		assert.Len(t, phrase, 44+10)
	})
}

func TestRecoveryPhraseCodec_Decode(t *testing.T) {
	codec := NewRecoveryPhraseCodec()

	t.Run("round trip for exported keys", func(t *testing.T) {
		for _, raw := range [][]byte{
			make([]byte, cryptoDomain.KeySize),
			{0xff, 0x00, 0x7f, 0x80, 0x01, 0x02, 0x03, 0x04},
		} {
			exported := base64.StdEncoding.EncodeToString(raw)

			decoded, err := codec.Decode(codec.Encode(exported))
			require.NoError(t, err)
			assert.Equal(t, exported, decoded)
		}
	})

	t.Run("whitespace is ignored", func(t *testing.T) {
		decoded, err := codec.Decode(" YWJj - ZGVm \n")
		require.NoError(t, err)
		assert.Equal(t, "YWJjZGVm", decoded)
	})

	t.Run("padding characters survive", func(t *testing.T) {
		decoded, err := codec.Decode("YWJj-ZA==")
		require.NoError(t, err)
		assert.Equal(t, "YWJjZA==", decoded)
	})

	t.Run("invalid characters are rejected", func(t *testing.T) {
		for _, phrase := range []string{"YWJj-ZG!m", "abc_def", "YWJj*ZGVm", "日本語"} {
			_, err := codec.Decode(phrase)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyFormat)
		}
	})

	t.Run("empty phrase is rejected", func(t *testing.T) {
		for _, phrase := range []string{"", "---", "  "} {
			_, err := codec.Decode(phrase)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyFormat)
		}
	})
}
