package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

// Transaction is a fully decrypted transaction.
type Transaction struct {
	// ID is the unique transaction identifier.
	ID uuid.UUID
	// AccountID references the owning account.
	AccountID uuid.UUID
	// OwnerID references the owning user.
	OwnerID uuid.UUID
	// Type is the transaction direction.
	Type TransactionType
	// Currency is the ISO 4217 currency code.
	Currency string
	// OccurredAt is the plain transaction date, kept unencrypted so the server
	// can sort and page.
	OccurredAt time.Time
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time

	// Amount is the transaction amount. Sensitive.
	Amount decimal.Decimal
	// Category is the user-chosen category label. Sensitive.
	Category string
	// Description is the free-form note. Sensitive.
	Description string
}

// TransactionSecrets is the fixed-shape sensitive payload encrypted into the
// transaction's envelope.
type TransactionSecrets struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// RawTransactionRow is a transaction row exactly as the remote sync server
// stores it.
type RawTransactionRow struct {
	ID            uuid.UUID                       `json:"id"`
	AccountID     uuid.UUID                       `json:"account_id"`
	OwnerID       uuid.UUID                       `json:"owner_id"`
	Type          TransactionType                 `json:"type"`
	Currency      string                          `json:"currency"`
	OccurredAt    time.Time                       `json:"occurred_at"`
	CreatedAt     time.Time                       `json:"created_at"`
	EncryptedData *cryptoDomain.EncryptedEnvelope `json:"encrypted_data"`
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
