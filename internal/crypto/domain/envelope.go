// Package domain defines the core cryptographic domain models: the versioned
// ciphertext envelope and the device master key. The envelope is the unit of
// storage and transport for every encrypted field; the remote sync server only
// ever sees envelopes and never the key.
package domain

const (
	// EnvelopeVersion is the only defined envelope format version:
	// AES-256-GCM over a canonical JSON encoding of the plaintext value,
	// 12-byte random nonce, 16-byte authentication tag appended to the ciphertext.
	EnvelopeVersion = 1

	// NonceSize is the AEAD nonce length in bytes (96 bits).
	NonceSize = 12

	// KeySize is the master key length in bytes (256 bits).
	KeySize = 32
)

// EncryptedEnvelope is the wire and storage representation of any encrypted payload.
//
// The JSON shape is exactly what the remote sync server persists and returns:
//
//	{ "ciphertext": "<base64>", "iv": "<base64>", "version": 1 }
//
// Byte slices marshal as standard base64 with no line wraps. An envelope is
// created fresh on every encrypt call and never mutated afterwards.
type EncryptedEnvelope struct {
	// Ciphertext is the AEAD output with the 16-byte authentication tag appended.
	Ciphertext []byte `json:"ciphertext"`
	// IV is the 12-byte nonce, unique per encryption operation under a given key.
	IV []byte `json:"iv"`
	// Version identifies the algorithm and encoding rules. Decryption fails
	// closed for any value the implementation does not recognize.
	Version int `json:"version"`
}
