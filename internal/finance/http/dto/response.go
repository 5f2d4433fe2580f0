package dto

import (
	"time"

	financeDomain "github.com/allisson/finvault/internal/finance/domain"
)

// AccountResponse represents a decrypted account in API responses.
// This surface is loopback-only: the decrypted name and balance never leave
// the local machine.
type AccountResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Balance          string    `json:"balance"`
	Currency         string    `json:"currency"`
	Type             string    `json:"type"`
	Archived         bool      `json:"archived"`
	ExcludedFromFree bool      `json:"excluded_from_free"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MapAccountToResponse converts a decrypted account to an API response.
func MapAccountToResponse(account *financeDomain.Account) AccountResponse {
	return AccountResponse{
		ID:               account.ID.String(),
		Name:             account.Name,
		Balance:          account.Balance.String(),
		Currency:         account.Currency,
		Type:             string(account.Type),
		Archived:         account.Archived,
		ExcludedFromFree: account.ExcludedFromFree,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
	}
}

// MapAccountsToResponse converts a slice of decrypted accounts.
func MapAccountsToResponse(accounts []*financeDomain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		out[i] = MapAccountToResponse(account)
	}
	return out
}

// TransactionResponse represents a decrypted transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Type        string    `json:"type"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapTransactionToResponse converts a decrypted transaction to an API response.
func MapTransactionToResponse(transaction *financeDomain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID.String(),
		AccountID:   transaction.AccountID.String(),
		Type:        string(transaction.Type),
		Currency:    transaction.Currency,
		OccurredAt:  transaction.OccurredAt,
		Amount:      transaction.Amount.String(),
		Category:    transaction.Category,
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
	}
}

// MapTransactionsToResponse converts a slice of decrypted transactions.
func MapTransactionsToResponse(transactions []*financeDomain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		out[i] = MapTransactionToResponse(transaction)
	}
	return out
}

// PoolResponse represents a decrypted pool in API responses.
type PoolResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Archived  bool      `json:"archived"`
	IsFree    bool      `json:"is_free"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapPoolToResponse converts a decrypted pool to an API response.
func MapPoolToResponse(pool *financeDomain.Pool) PoolResponse {
	return PoolResponse{
		ID:        pool.ID.String(),
		Name:      pool.Name,
		Archived:  pool.Archived,
		IsFree:    pool.IsFree,
		CreatedAt: pool.CreatedAt,
		UpdatedAt: pool.UpdatedAt,
	}
}

// MapPoolsToResponse converts a slice of decrypted pools.
func MapPoolsToResponse(pools []*financeDomain.Pool) []PoolResponse {
	out := make([]PoolResponse, len(pools))
	for i, pool := range pools {
		out[i] = MapPoolToResponse(pool)
	}
	return out
}

// AllocationResponse represents a decrypted allocation in API responses.
type AllocationResponse struct {
	ID        string    `json:"id"`
	PoolID    string    `json:"pool_id"`
	AccountID string    `json:"account_id"`
	Currency  string    `json:"currency"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapAllocationToResponse converts a decrypted allocation to an API response.
func MapAllocationToResponse(allocation *financeDomain.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:        allocation.ID.String(),
		PoolID:    allocation.PoolID.String(),
		AccountID: allocation.AccountID.String(),
		Currency:  allocation.Currency,
		Amount:    allocation.Amount.String(),
		CreatedAt: allocation.CreatedAt,
		UpdatedAt: allocation.UpdatedAt,
	}
}

// MapAllocationsToResponse converts a slice of decrypted allocations.
func MapAllocationsToResponse(allocations []*financeDomain.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, len(allocations))
	for i, allocation := range allocations {
		out[i] = MapAllocationToResponse(allocation)
	}
	return out
}
