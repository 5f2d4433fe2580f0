// Package service provides the cryptographic services of the client core:
// the AES-256-GCM AEAD primitive, the versioned envelope codec, and the
// recovery-phrase codec used for master key backup and restore.
package service

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}
