// Package usecase implements business logic orchestration for master key
// lifecycle management: initialization, export and import through the
// recovery phrase, deletion, and locking the in-memory cache.
package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// KeyStore defines the local durable key storage operations.
// Satisfied by *keystore.Store.
type KeyStore interface {
	Initialize() (*cryptoDomain.MasterKey, error)
	Get() (*cryptoDomain.MasterKey, error)
	GetCached() (*cryptoDomain.MasterKey, error)
	Delete() error
	InvalidateCache()
	Export(key *cryptoDomain.MasterKey) string
	Import(exported string) (*cryptoDomain.MasterKey, error)
}

// PhraseCodec converts between exported key strings and recovery phrases.
// Satisfied by *cryptoService.RecoveryPhraseCodec.
type PhraseCodec interface {
	Encode(exported string) string
	Decode(phrase string) (string, error)
}

// KeyStatus describes the installed master key without exposing key material.
type KeyStatus struct {
	Installed bool
	CreatedAt time.Time
	LastUsed  time.Time
}

// ExportedKey is a master key in its two interchangeable textual forms.
// Both decode to the same key material; the phrase is the human-friendly one.
type ExportedKey struct {
	Exported string
	Phrase   string
}

// KeyUseCase defines the business logic for master key lifecycle management.
type KeyUseCase interface {
	// Status reports whether a master key is installed on this device.
	Status(ctx context.Context) (*KeyStatus, error)
	// Initialize generates and installs a fresh master key. Fails with a
	// conflict if a key is already installed: overwriting would orphan every
	// envelope encrypted under the old key.
	Initialize(ctx context.Context) (*KeyStatus, error)
	// Export returns the installed key's exported string and recovery phrase.
	Export(ctx context.Context) (*ExportedKey, error)
	// ImportExported validates and installs a key from its exported string.
	ImportExported(ctx context.Context, exported string) (*KeyStatus, error)
	// ImportPhrase validates and installs a key from its recovery phrase.
	ImportPhrase(ctx context.Context, phrase string) (*KeyStatus, error)
	// Delete removes the master key from durable storage and memory.
	Delete(ctx context.Context) error
	// Lock drops the cached key material without touching durable storage.
	Lock(ctx context.Context)
}
