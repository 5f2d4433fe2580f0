// Package http provides the loopback HTTP handlers for the decrypted finance
// API consumed by the local UI. Everything served here is plaintext that was
// decrypted in-process; the remote sync server never sees these shapes.
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

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accountUseCase financeUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(
	accountUseCase financeUseCase.AccountUseCase,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// ListHandler returns all decrypted accounts.
// GET /v1/accounts
func (h *AccountHandler) ListHandler(c *gin.Context) {
	accounts, err := h.accountUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountsToResponse(accounts))
}

// CreateHandler creates a new account.
// POST /v1/accounts
func (h *AccountHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Create(c.Request.Context(), financeUseCase.CreateAccountInput{
		Name:             req.Name,
		Balance:          decimal.RequireFromString(req.Balance),
		Currency:         req.Currency,
		Type:             financeDomain.AccountType(req.Type),
		ExcludedFromFree: req.ExcludedFromFree,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// UpdateHandler replaces an account's mutable fields.
// PUT /v1/accounts/:id
func (h *AccountHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account id: %w", err), h.logger)
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Update(c.Request.Context(), financeUseCase.UpdateAccountInput{
		ID:               id,
		Name:             req.Name,
		Balance:          decimal.RequireFromString(req.Balance),
		Archived:         req.Archived,
		ExcludedFromFree: req.ExcludedFromFree,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// DeleteHandler removes an account.
// DELETE /v1/accounts/:id
func (h *AccountHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account id: %w", err), h.logger)
		return
	}

	if err := h.accountUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
