package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/finvault/internal/finance/http/dto"
	financeUseCase "github.com/allisson/finvault/internal/finance/usecase"
	"github.com/allisson/finvault/internal/httputil"
	customValidation "github.com/allisson/finvault/internal/validation"
)

// PoolHandler handles HTTP requests for pool operations.
type PoolHandler struct {
	poolUseCase financeUseCase.PoolUseCase
	logger      *slog.Logger
}

// NewPoolHandler creates a new pool handler.
func NewPoolHandler(poolUseCase financeUseCase.PoolUseCase, logger *slog.Logger) *PoolHandler {
	return &PoolHandler{
		poolUseCase: poolUseCase,
		logger:      logger,
	}
}

// ListHandler returns all decrypted pools, the sentinel free pool included.
// GET /v1/pools
func (h *PoolHandler) ListHandler(c *gin.Context) {
	pools, err := h.poolUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPoolsToResponse(pools))
}

// CreateHandler creates a new pool.
// POST /v1/pools
func (h *PoolHandler) CreateHandler(c *gin.Context) {
	var req dto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pool, err := h.poolUseCase.Create(c.Request.Context(), financeUseCase.CreatePoolInput{
		Name: req.Name,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPoolToResponse(pool))
}

// UpdateHandler renames or archives a pool.
// PUT /v1/pools/:id
func (h *PoolHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid pool id: %w", err), h.logger)
		return
	}

	var req dto.UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pool, err := h.poolUseCase.Update(c.Request.Context(), financeUseCase.UpdatePoolInput{
		ID:       id,
		Name:     req.Name,
		Archived: req.Archived,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPoolToResponse(pool))
}

// DeleteHandler removes a pool.
// DELETE /v1/pools/:id
func (h *PoolHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid pool id: %w", err), h.logger)
		return
	}

	if err := h.poolUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
