package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// Allocation assigns part of an account's balance to a pool.
type Allocation struct {
	// ID is the unique allocation identifier.
	ID uuid.UUID
	// PoolID references the target pool.
	PoolID uuid.UUID
	// AccountID references the source account.
	AccountID uuid.UUID
	// OwnerID references the owning user.
	OwnerID uuid.UUID
	// Currency is the ISO 4217 currency code.
	Currency string
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time

	// Amount is the allocated amount. Sensitive.
	Amount decimal.Decimal
}

// AllocationSecrets is the fixed-shape sensitive payload encrypted into the
// allocation's envelope.
type AllocationSecrets struct {
	Amount decimal.Decimal `json:"amount"`
}

// RawAllocationRow is an allocation row exactly as the remote sync server
// stores it.
type RawAllocationRow struct {
	ID            uuid.UUID                       `json:"id"`
	PoolID        uuid.UUID                       `json:"pool_id"`
	AccountID     uuid.UUID                       `json:"account_id"`
	OwnerID       uuid.UUID                       `json:"owner_id"`
	Currency      string                          `json:"currency"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
	EncryptedData *cryptoDomain.EncryptedEnvelope `json:"encrypted_data"`
}
