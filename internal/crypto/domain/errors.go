package domain

import (
	"github.com/allisson/finvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrKeyUnavailable indicates no master key is installed on this device.
	//
	// Returned when an encrypt or decrypt operation is attempted before key
	// initialization, or after the key has been deleted. Recoverable by routing
	// the user to key initialization or recovery-phrase import. A default key is
	// never silently substituted.
	//
	// HTTP Status: 428 Precondition Required
	ErrKeyUnavailable = errors.Wrap(errors.ErrInvalidInput, "master key unavailable")

	// ErrUnrecognizedVersion indicates an envelope declares an unknown format version.
	//
	// Only EnvelopeVersion is defined. Decryption fails closed: no best-effort
	// decoding is attempted for unknown versions.
	//
	// HTTP Status: 409 Conflict
	ErrUnrecognizedVersion = errors.Wrap(errors.ErrConflict, "unrecognized envelope version")

	// ErrAuthenticationFailed indicates AEAD tag verification failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with
	//   - Corrupted nonce or stored data
	//
	// The causes are deliberately not distinguished: that distinction itself
	// can leak information to an attacker.
	//
	// HTTP Status: 409 Conflict
	ErrAuthenticationFailed = errors.Wrap(errors.ErrConflict, "authentication failed")

	// ErrMissingEnvelope indicates a record carries no ciphertext envelope.
	//
	// A row whose encrypted_data is null has no recoverable sensitive fields and
	// is treated as a decryption failure, never as zeroed defaults. Recognized
	// system rows (the sentinel free pool) are exempt.
	ErrMissingEnvelope = errors.Wrap(ErrAuthenticationFailed, "missing envelope")

	// ErrInvalidKeyFormat indicates a malformed exported key string or recovery phrase.
	//
	// Import rejects such input before ever installing the candidate key, so a
	// bad import never replaces a good key with garbage.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeyFormat = errors.Wrap(errors.ErrInvalidInput, "invalid key format")

	// ErrInvalidKeySize indicates the master key material is not exactly 32 bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)
