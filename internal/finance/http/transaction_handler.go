package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	"github.com/allisson/finvault/internal/finance/http/dto"
	financeUseCase "github.com/allisson/finvault/internal/finance/usecase"
	"github.com/allisson/finvault/internal/httputil"
	customValidation "github.com/allisson/finvault/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	transactionUseCase financeUseCase.TransactionUseCase
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(
	transactionUseCase financeUseCase.TransactionUseCase,
	logger *slog.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		logger:             logger,
	}
}

// ListHandler returns the decrypted transactions of one account.
// GET /v1/transactions?account_id=...
func (h *TransactionHandler) ListHandler(c *gin.Context) {
	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account_id: %w", err), h.logger)
		return
	}

	transactions, err := h.transactionUseCase.List(c.Request.Context(), accountID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactionsToResponse(transactions))
}

// CreateHandler creates a new transaction and applies its amount to the
// owning account's balance.
// POST /v1/transactions
func (h *TransactionHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account_id: %w", err), h.logger)
		return
	}

	transaction, err := h.transactionUseCase.Create(
		c.Request.Context(),
		financeUseCase.CreateTransactionInput{
			AccountID:   accountID,
			Type:        financeDomain.TransactionType(req.Type),
			Currency:    req.Currency,
			OccurredAt:  req.OccurredAt,
			Amount:      decimal.RequireFromString(req.Amount),
			Category:    req.Category,
			Description: req.Description,
		},
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTransactionToResponse(transaction))
}

// DeleteHandler removes a transaction and reverses its balance effect.
// DELETE /v1/transactions/:id?account_id=...
func (h *TransactionHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid transaction id: %w", err), h.logger)
		return
	}

	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account_id: %w", err), h.logger)
		return
	}

	if err := h.transactionUseCase.Delete(c.Request.Context(), id, accountID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
