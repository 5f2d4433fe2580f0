// Package http provides the loopback HTTP handlers for master key lifecycle
// management. Key material only appears in the explicit export response.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/finvault/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
	"github.com/allisson/finvault/internal/httputil"
	customValidation "github.com/allisson/finvault/internal/validation"
)

// KeyHandler handles HTTP requests for master key operations.
type KeyHandler struct {
	keyUseCase cryptoUseCase.KeyUseCase
	logger     *slog.Logger
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler(keyUseCase cryptoUseCase.KeyUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		keyUseCase: keyUseCase,
		logger:     logger,
	}
}

// StatusHandler reports whether a master key is installed.
// GET /v1/key
func (h *KeyHandler) StatusHandler(c *gin.Context) {
	status, err := h.keyUseCase.Status(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyStatusToResponse(status))
}

// InitializeHandler generates and installs a fresh master key. Conflicts if a
// key is already installed.
// POST /v1/key
func (h *KeyHandler) InitializeHandler(c *gin.Context) {
	status, err := h.keyUseCase.Initialize(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapKeyStatusToResponse(status))
}

// ExportHandler returns the installed key's exported string and recovery
// phrase.
// POST /v1/key/export
func (h *KeyHandler) ExportHandler(c *gin.Context) {
	exported, err := h.keyUseCase.Export(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExportedKeyToResponse(exported))
}

// ImportHandler installs a key from its exported string or recovery phrase.
// POST /v1/key/import
func (h *KeyHandler) ImportHandler(c *gin.Context) {
	var req dto.ImportKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var (
		status *cryptoUseCase.KeyStatus
		err    error
	)
	if req.RecoveryPhrase != "" {
		status, err = h.keyUseCase.ImportPhrase(c.Request.Context(), req.RecoveryPhrase)
	} else {
		status, err = h.keyUseCase.ImportExported(c.Request.Context(), req.ExportedKey)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapKeyStatusToResponse(status))
}

// DeleteHandler removes the master key from durable storage and memory.
// DELETE /v1/key
func (h *KeyHandler) DeleteHandler(c *gin.Context) {
	if err := h.keyUseCase.Delete(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LockHandler drops the cached key material without touching durable storage.
// POST /v1/key/lock
func (h *KeyHandler) LockHandler(c *gin.Context) {
	h.keyUseCase.Lock(c.Request.Context())
	c.Status(http.StatusNoContent)
}
