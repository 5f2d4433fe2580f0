package domain

import (
	"encoding/base64"
	"time"
)

// MasterKey is the single symmetric secret for a device profile.
//
// Exactly one master key exists per device at a time; it is not versioned or
// rotated by this design. The key is exclusively owned by the local key store
// and is never transmitted to, or derivable by, the remote sync server.
// Losing it makes previously encrypted records permanently undecryptable.
type MasterKey struct {
	// ID is the fixed record identifier within the local key store.
	ID string
	// Key is the raw 32-byte key material.
	Key []byte
	// CreatedAt is the UTC timestamp when the key was generated or imported.
	CreatedAt time.Time
	// LastUsed is the UTC timestamp of the most recent storage read.
	LastUsed time.Time
}

// Export returns the lossless textual serialization of the key material,
// suitable for recovery-phrase encoding. The inverse is keystore.Import.
func (m *MasterKey) Export() string {
	return base64.StdEncoding.EncodeToString(m.Key)
}

// Valid reports whether the key material has the required size.
func (m *MasterKey) Valid() bool {
	return len(m.Key) == KeySize
}
