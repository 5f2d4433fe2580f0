// Package usecase defines the interfaces and implementations for the finance
// data-access layer. Use cases orchestrate the remote sync repository, the
// entity encryptors, and the local decrypted-entity cache: rows are fetched
// encrypted, decrypted client-side, and mutations are applied optimistically
// with rollback on remote failure.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
)

// AccountRepository defines the remote persistence operations for accounts.
type AccountRepository interface {
	ListAccounts(ctx context.Context) ([]financeDomain.RawAccountRow, error)
	CreateAccount(ctx context.Context, row *financeDomain.RawAccountRow) (*financeDomain.RawAccountRow, error)
	UpdateAccount(ctx context.Context, row *financeDomain.RawAccountRow) (*financeDomain.RawAccountRow, error)
	UpdateAccountEnvelope(ctx context.Context, id uuid.UUID, env *cryptoDomain.EncryptedEnvelope) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the remote persistence operations for transactions.
type TransactionRepository interface {
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]financeDomain.RawTransactionRow, error)
	CreateTransaction(
		ctx context.Context,
		row *financeDomain.RawTransactionRow,
	) (*financeDomain.RawTransactionRow, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*financeDomain.RawTransactionRow, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// PoolRepository defines the remote persistence operations for pools.
type PoolRepository interface {
	ListPools(ctx context.Context) ([]financeDomain.RawPoolRow, error)
	CreatePool(ctx context.Context, row *financeDomain.RawPoolRow) (*financeDomain.RawPoolRow, error)
	UpdatePool(ctx context.Context, row *financeDomain.RawPoolRow) (*financeDomain.RawPoolRow, error)
	DeletePool(ctx context.Context, id uuid.UUID) error
}

// AllocationRepository defines the remote persistence operations for allocations.
type AllocationRepository interface {
	ListAllocations(ctx context.Context, poolID uuid.UUID) ([]financeDomain.RawAllocationRow, error)
	ListAccountAllocations(ctx context.Context, accountID uuid.UUID) ([]financeDomain.RawAllocationRow, error)
	CreateAllocation(
		ctx context.Context,
		row *financeDomain.RawAllocationRow,
	) (*financeDomain.RawAllocationRow, error)
	DeleteAllocation(ctx context.Context, id uuid.UUID) error
}

// CreateAccountInput carries the fields needed to create an account.
type CreateAccountInput struct {
	OwnerID          uuid.UUID
	Name             string
	Balance          decimal.Decimal
	Currency         string
	Type             financeDomain.AccountType
	ExcludedFromFree bool
}

// UpdateAccountInput carries the fields needed to update an account.
type UpdateAccountInput struct {
	ID               uuid.UUID
	Name             string
	Balance          decimal.Decimal
	Archived         bool
	ExcludedFromFree bool
}

// CreateTransactionInput carries the fields needed to create a transaction.
// Amount is the absolute value; Type determines the sign applied to the
// account balance.
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	OwnerID     uuid.UUID
	Type        financeDomain.TransactionType
	Currency    string
	OccurredAt  time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// CreatePoolInput carries the fields needed to create a pool.
type CreatePoolInput struct {
	OwnerID uuid.UUID
	Name    string
}

// UpdatePoolInput carries the fields needed to update a pool.
type UpdatePoolInput struct {
	ID       uuid.UUID
	Name     string
	Archived bool
}

// CreateAllocationInput carries the fields needed to create an allocation.
type CreateAllocationInput struct {
	PoolID    uuid.UUID
	AccountID uuid.UUID
	OwnerID   uuid.UUID
	Currency  string
	Amount    decimal.Decimal
}

// AccountUseCase defines the business logic for account management.
type AccountUseCase interface {
	// List returns all decrypted accounts. Rows that fail to decrypt are
	// dropped; a missing master key fails the whole call.
	List(ctx context.Context) ([]*financeDomain.Account, error)
	Create(ctx context.Context, input CreateAccountInput) (*financeDomain.Account, error)
	Update(ctx context.Context, input UpdateAccountInput) (*financeDomain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionUseCase defines the business logic for transaction management.
// Balance-affecting mutations also re-encrypt and push the owning account's
// envelope, since the server cannot adjust a balance it cannot read.
type TransactionUseCase interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*financeDomain.Transaction, error)
	Create(ctx context.Context, input CreateTransactionInput) (*financeDomain.Transaction, error)
	Delete(ctx context.Context, id, accountID uuid.UUID) error
}

// PoolUseCase defines the business logic for pool management.
type PoolUseCase interface {
	List(ctx context.Context) ([]*financeDomain.Pool, error)
	Create(ctx context.Context, input CreatePoolInput) (*financeDomain.Pool, error)
	Update(ctx context.Context, input UpdatePoolInput) (*financeDomain.Pool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AllocationUseCase defines the business logic for allocation management.
type AllocationUseCase interface {
	List(ctx context.Context, poolID uuid.UUID) ([]*financeDomain.Allocation, error)
	Create(ctx context.Context, input CreateAllocationInput) (*financeDomain.Allocation, error)
	Delete(ctx context.Context, id, poolID uuid.UUID) error
}
