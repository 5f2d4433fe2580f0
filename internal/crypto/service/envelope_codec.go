package service

import (
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// EnvelopeCodec serializes JSON-representable values into authenticated,
// versioned ciphertext envelopes and back.
//
// Encrypt never reuses an envelope: every call produces a fresh nonce and a
// fresh envelope with the current format version. Decrypt fails closed on any
// version it does not recognize; it never guesses a fallback format.
type EnvelopeCodec struct{}

// NewEnvelopeCodec creates a new envelope codec.
func NewEnvelopeCodec() *EnvelopeCodec {
	return &EnvelopeCodec{}
}

// Encrypt serializes value to its canonical JSON encoding and seals it with
// AES-256-GCM under key, returning a version-1 envelope.
//
// It does not fail for well-formed (JSON-representable) input and a valid
// 32-byte key beyond randomness exhaustion.
func (c *EnvelopeCodec) Encrypt(value any, key []byte) (*cryptoDomain.EncryptedEnvelope, error) {
	cipher, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plaintext value: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedEnvelope{
		Ciphertext: ciphertext,
		IV:         nonce,
		Version:    cryptoDomain.EnvelopeVersion,
	}, nil
}

// Decrypt verifies and opens env under key and decodes the plaintext JSON
// into out, which must be a pointer.
//
// It returns ErrUnrecognizedVersion for any version other than
// EnvelopeVersion, checked before touching the ciphertext, and
// ErrAuthenticationFailed when tag verification fails (a wrong key and
// tampered data are deliberately indistinguishable).
func (c *EnvelopeCodec) Decrypt(env *cryptoDomain.EncryptedEnvelope, key []byte, out any) error {
	if env == nil {
		return cryptoDomain.ErrMissingEnvelope
	}
	if env.Version != cryptoDomain.EnvelopeVersion {
		return fmt.Errorf("%w: %d", cryptoDomain.ErrUnrecognizedVersion, env.Version)
	}

	cipher, err := NewAESGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := cipher.Decrypt(env.Ciphertext, env.IV, nil)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to decode plaintext value: %w", err)
	}

	return nil
}
