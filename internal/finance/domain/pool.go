package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// Pool is a fully decrypted money pool (budget allocation bucket).
type Pool struct {
	// ID is the unique pool identifier.
	ID uuid.UUID
	// OwnerID references the owning user.
	OwnerID uuid.UUID
	// Archived marks the pool as hidden from active views.
	Archived bool
	// IsFree marks the sentinel system pool holding unallocated funds. The free
	// pool carries no envelope and its name is synthesized client-side.
	IsFree bool
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time

	// Name is the user-chosen pool name. Sensitive.
	Name string
}

// PoolSecrets is the fixed-shape sensitive payload encrypted into the pool's
// envelope.
type PoolSecrets struct {
	Name string `json:"name"`
}

// RawPoolRow is a pool row exactly as the remote sync server stores it.
type RawPoolRow struct {
	ID            uuid.UUID                       `json:"id"`
	OwnerID       uuid.UUID                       `json:"owner_id"`
	Archived      bool                            `json:"archived"`
	IsFree        bool                            `json:"is_free"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
	EncryptedData *cryptoDomain.EncryptedEnvelope `json:"encrypted_data"`
}
