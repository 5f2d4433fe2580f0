package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/finvault/internal/finance/http/dto"
	financeUseCase "github.com/allisson/finvault/internal/finance/usecase"
	"github.com/allisson/finvault/internal/httputil"
	customValidation "github.com/allisson/finvault/internal/validation"
)

// AllocationHandler handles HTTP requests for allocation operations.
type AllocationHandler struct {
	allocationUseCase financeUseCase.AllocationUseCase
	logger            *slog.Logger
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(
	allocationUseCase financeUseCase.AllocationUseCase,
	logger *slog.Logger,
) *AllocationHandler {
	return &AllocationHandler{
		allocationUseCase: allocationUseCase,
		logger:            logger,
	}
}

// ListHandler returns the decrypted allocations of one pool.
// GET /v1/allocations?pool_id=...
func (h *AllocationHandler) ListHandler(c *gin.Context) {
	poolID, err := uuid.Parse(c.Query("pool_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid pool_id: %w", err), h.logger)
		return
	}

	allocations, err := h.allocationUseCase.List(c.Request.Context(), poolID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAllocationsToResponse(allocations))
}

// CreateHandler creates a new allocation after the client-side balance check.
// POST /v1/allocations
func (h *AllocationHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	poolID, err := uuid.Parse(req.PoolID)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid pool_id: %w", err), h.logger)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid account_id: %w", err), h.logger)
		return
	}

	allocation, err := h.allocationUseCase.Create(
		c.Request.Context(),
		financeUseCase.CreateAllocationInput{
			PoolID:    poolID,
			AccountID: accountID,
			Currency:  req.Currency,
			Amount:    decimal.RequireFromString(req.Amount),
		},
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAllocationToResponse(allocation))
}

// DeleteHandler removes an allocation.
// DELETE /v1/allocations/:id?pool_id=...
func (h *AllocationHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid allocation id: %w", err), h.logger)
		return
	}

	poolID, err := uuid.Parse(c.Query("pool_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid pool_id: %w", err), h.logger)
		return
	}

	if err := h.allocationUseCase.Delete(c.Request.Context(), id, poolID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
