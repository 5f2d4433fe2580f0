package domain

import (
	"github.com/allisson/finvault/internal/errors"
)

// Finance-specific error definitions.
var (
	// ErrAccountNotFound indicates the account does not exist remotely or locally.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrTransactionNotFound indicates the transaction does not exist.
	ErrTransactionNotFound = errors.Wrap(errors.ErrNotFound, "transaction not found")

	// ErrPoolNotFound indicates the pool does not exist.
	ErrPoolNotFound = errors.Wrap(errors.ErrNotFound, "pool not found")

	// ErrAllocationNotFound indicates the allocation does not exist.
	ErrAllocationNotFound = errors.Wrap(errors.ErrNotFound, "allocation not found")

	// ErrFreePoolImmutable indicates an attempt to rename, archive, or delete
	// the sentinel free pool.
	ErrFreePoolImmutable = errors.Wrap(errors.ErrInvalidInput, "the free pool cannot be modified")

	// ErrAllocationExceedsBalance indicates the allocations for an account
	// would exceed its decrypted balance. Checked client-side only: the server
	// cannot compare against an encrypted balance.
	ErrAllocationExceedsBalance = errors.Wrap(errors.ErrInvalidInput, "allocation exceeds account balance")
)
