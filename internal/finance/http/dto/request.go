// Package dto provides data transfer objects for HTTP request and response handling.
//
// Monetary amounts travel as decimal strings end to end: parsing them into
// floats would corrupt exactly the values the envelope encryption works so
// hard to round-trip losslessly.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	customValidation "github.com/allisson/finvault/internal/validation"
)

// CreateAccountRequest contains the parameters for creating an account.
type CreateAccountRequest struct {
	Name             string `json:"name"`
	Balance          string `json:"balance"`
	Currency         string `json:"currency"`
	Type             string `json:"type"`
	ExcludedFromFree bool   `json:"excluded_from_free"`
}

// Validate checks if the create account request is valid.
func (r *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Balance, validation.Required, customValidation.DecimalString),
		validation.Field(&r.Currency, validation.Required, customValidation.CurrencyCode),
		validation.Field(&r.Type, validation.Required, validation.In(
			string(financeDomain.AccountTypeChecking),
			string(financeDomain.AccountTypeSavings),
			string(financeDomain.AccountTypeCash),
			string(financeDomain.AccountTypeCredit),
		)),
	)
}

// UpdateAccountRequest contains the parameters for updating an account.
// The account ID comes from the URL parameter, not the request body.
type UpdateAccountRequest struct {
	Name             string `json:"name"`
	Balance          string `json:"balance"`
	Archived         bool   `json:"archived"`
	ExcludedFromFree bool   `json:"excluded_from_free"`
}

// Validate checks if the update account request is valid.
func (r *UpdateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Balance, validation.Required, customValidation.DecimalString),
	)
}

// CreateTransactionRequest contains the parameters for creating a transaction.
type CreateTransactionRequest struct {
	AccountID   string    `json:"account_id"`
	Type        string    `json:"type"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

// Validate checks if the create transaction request is valid.
func (r *CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccountID, validation.Required, validation.Length(36, 36)),
		validation.Field(&r.Type, validation.Required, validation.In(
			string(financeDomain.TransactionTypeIncome),
			string(financeDomain.TransactionTypeExpense),
		)),
		validation.Field(&r.Currency, validation.Required, customValidation.CurrencyCode),
		validation.Field(&r.OccurredAt, validation.Required),
		validation.Field(&r.Amount, validation.Required, customValidation.PositiveDecimalString),
		validation.Field(&r.Category, validation.Length(0, 255)),
		validation.Field(&r.Description, validation.Length(0, 1024)),
	)
}

// CreatePoolRequest contains the parameters for creating a pool.
type CreatePoolRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create pool request is valid.
func (r *CreatePoolRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdatePoolRequest contains the parameters for updating a pool.
// The pool ID comes from the URL parameter, not the request body.
type UpdatePoolRequest struct {
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// Validate checks if the update pool request is valid.
func (r *UpdatePoolRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// CreateAllocationRequest contains the parameters for creating an allocation.
type CreateAllocationRequest struct {
	PoolID    string `json:"pool_id"`
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
}

// Validate checks if the create allocation request is valid.
func (r *CreateAllocationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PoolID, validation.Required, validation.Length(36, 36)),
		validation.Field(&r.AccountID, validation.Required, validation.Length(36, 36)),
		validation.Field(&r.Currency, validation.Required, customValidation.CurrencyCode),
		validation.Field(&r.Amount, validation.Required, customValidation.PositiveDecimalString),
	)
}
