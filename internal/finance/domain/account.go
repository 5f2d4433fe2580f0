// Package domain defines the personal-finance domain models. Each entity is
// the union of plain fields, persisted remotely and queryable server-side, and
// sensitive fields, which exist remotely only as an encrypted envelope and are
// reconstructed client-side after decryption.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// Account is a fully decrypted account: plain fields plus the decrypted
// sensitive fields (name and balance).
type Account struct {
	// ID is the unique account identifier.
	ID uuid.UUID
	// OwnerID references the owning user.
	OwnerID uuid.UUID
	// Currency is the ISO 4217 currency code; plain so the server can group by it.
	Currency string
	// Type classifies the account.
	Type AccountType
	// Archived marks the account as hidden from active views.
	Archived bool
	// ExcludedFromFree keeps this account out of the free-funds calculation.
	// Deliberately plain so the server can filter on it.
	ExcludedFromFree bool
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time

	// Name is the user-chosen account name. Sensitive.
	Name string
	// Balance is the current balance. Sensitive; the server never computes it.
	Balance decimal.Decimal
}

// AccountSecrets is the fixed-shape sensitive payload encrypted into the
// account's envelope. The closed field set catches "forgot to re-encrypt this
// field" mistakes at the type level and keeps the plaintext JSON compact.
type AccountSecrets struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// RawAccountRow is an account row exactly as the remote sync server stores it:
// plain fields plus an optional opaque envelope.
type RawAccountRow struct {
	ID               uuid.UUID                       `json:"id"`
	OwnerID          uuid.UUID                       `json:"owner_id"`
	Currency         string                          `json:"currency"`
	Type             AccountType                     `json:"type"`
	Archived         bool                            `json:"archived"`
	ExcludedFromFree bool                            `json:"excluded_from_free"`
	CreatedAt        time.Time                       `json:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at"`
	EncryptedData    *cryptoDomain.EncryptedEnvelope `json:"encrypted_data"`
}
