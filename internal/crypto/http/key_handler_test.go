package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	"github.com/allisson/finvault/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
	apperrors "github.com/allisson/finvault/internal/errors"
)

// stubKeyUseCase implements usecase.KeyUseCase with canned results.
type stubKeyUseCase struct {
	status           *cryptoUseCase.KeyStatus
	exported         *cryptoUseCase.ExportedKey
	err              error
	importedExported string
	importedPhrase   string
	deleted          bool
	locked           bool
}

func (s *stubKeyUseCase) Status(_ context.Context) (*cryptoUseCase.KeyStatus, error) {
	return s.status, s.err
}

func (s *stubKeyUseCase) Initialize(_ context.Context) (*cryptoUseCase.KeyStatus, error) {
	return s.status, s.err
}

func (s *stubKeyUseCase) Export(_ context.Context) (*cryptoUseCase.ExportedKey, error) {
	return s.exported, s.err
}

func (s *stubKeyUseCase) ImportExported(
	_ context.Context,
	exported string,
) (*cryptoUseCase.KeyStatus, error) {
	s.importedExported = exported
	return s.status, s.err
}

func (s *stubKeyUseCase) ImportPhrase(
	_ context.Context,
	phrase string,
) (*cryptoUseCase.KeyStatus, error) {
	s.importedPhrase = phrase
	return s.status, s.err
}

func (s *stubKeyUseCase) Delete(_ context.Context) error {
	s.deleted = true
	return s.err
}

func (s *stubKeyUseCase) Lock(_ context.Context) {
	s.locked = true
}

func setupTestHandler(useCase *stubKeyUseCase) *KeyHandler {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewKeyHandler(useCase, logger)
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestKeyHandler_StatusHandler(t *testing.T) {
	t.Run("Success_KeyInstalled", func(t *testing.T) {
		now := time.Now().UTC()
		handler := setupTestHandler(&stubKeyUseCase{
			status: &cryptoUseCase.KeyStatus{Installed: true, CreatedAt: now, LastUsed: now},
		})

		c, w := createTestContext(http.MethodGet, "/v1/key", nil)
		handler.StatusHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.KeyStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Installed)
		require.NotNil(t, response.CreatedAt)
		assert.WithinDuration(t, now, *response.CreatedAt, time.Second)
	})

	t.Run("Success_KeyAbsent", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{
			status: &cryptoUseCase.KeyStatus{Installed: false},
		})

		c, w := createTestContext(http.MethodGet, "/v1/key", nil)
		handler.StatusHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.KeyStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Installed)
		assert.Nil(t, response.CreatedAt)
	})
}

func TestKeyHandler_InitializeHandler(t *testing.T) {
	t.Run("Success_FreshKey", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{
			status: &cryptoUseCase.KeyStatus{Installed: true, CreatedAt: time.Now().UTC()},
		})

		c, w := createTestContext(http.MethodPost, "/v1/key", nil)
		handler.InitializeHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Error_AlreadyInstalled", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{
			err: apperrors.Wrap(apperrors.ErrConflict, "a master key is already installed"),
		})

		c, w := createTestContext(http.MethodPost, "/v1/key", nil)
		handler.InitializeHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestKeyHandler_ExportHandler(t *testing.T) {
	t.Run("Success_BothForms", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{
			exported: &cryptoUseCase.ExportedKey{
				Exported: "AAAA",
				Phrase:   "AAAA",
			},
		})

		c, w := createTestContext(http.MethodPost, "/v1/key/export", nil)
		handler.ExportHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ExportKeyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "AAAA", response.ExportedKey)
		assert.Equal(t, "AAAA", response.RecoveryPhrase)
	})

	t.Run("Error_NoKeyInstalled", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{err: cryptoDomain.ErrKeyUnavailable})

		c, w := createTestContext(http.MethodPost, "/v1/key/export", nil)
		handler.ExportHandler(c)

		assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	})
}

func TestKeyHandler_ImportHandler(t *testing.T) {
	t.Run("Success_ExportedKey", func(t *testing.T) {
		useCase := &stubKeyUseCase{
			status: &cryptoUseCase.KeyStatus{Installed: true, CreatedAt: time.Now().UTC()},
		}
		handler := setupTestHandler(useCase)

		request := dto.ImportKeyRequest{ExportedKey: "QUJDRA=="}
		c, w := createTestContext(http.MethodPost, "/v1/key/import", request)
		handler.ImportHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "QUJDRA==", useCase.importedExported)
		assert.Empty(t, useCase.importedPhrase)
	})

	t.Run("Success_RecoveryPhrase", func(t *testing.T) {
		useCase := &stubKeyUseCase{
			status: &cryptoUseCase.KeyStatus{Installed: true, CreatedAt: time.Now().UTC()},
		}
		handler := setupTestHandler(useCase)

		request := dto.ImportKeyRequest{RecoveryPhrase: "QUJD-RA=="}
		c, w := createTestContext(http.MethodPost, "/v1/key/import", request)
		handler.ImportHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "QUJD-RA==", useCase.importedPhrase)
		assert.Empty(t, useCase.importedExported)
	})

	t.Run("Error_BothFormsSet", func(t *testing.T) {
		useCase := &stubKeyUseCase{}
		handler := setupTestHandler(useCase)

		request := dto.ImportKeyRequest{ExportedKey: "QUJDRA==", RecoveryPhrase: "QUJD-RA=="}
		c, w := createTestContext(http.MethodPost, "/v1/key/import", request)
		handler.ImportHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, useCase.importedExported)
		assert.Empty(t, useCase.importedPhrase)
	})

	t.Run("Error_NeitherFormSet", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{})

		request := dto.ImportKeyRequest{}
		c, w := createTestContext(http.MethodPost, "/v1/key/import", request)
		handler.ImportHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidKeyMaterial", func(t *testing.T) {
		handler := setupTestHandler(&stubKeyUseCase{err: cryptoDomain.ErrInvalidKeyFormat})

		request := dto.ImportKeyRequest{ExportedKey: "QUJDRA=="}
		c, w := createTestContext(http.MethodPost, "/v1/key/import", request)
		handler.ImportHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestKeyHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_RemovesKey", func(t *testing.T) {
		useCase := &stubKeyUseCase{}
		handler := setupTestHandler(useCase)

		c, w := createTestContext(http.MethodDelete, "/v1/key", nil)
		handler.DeleteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, useCase.deleted)
	})
}

func TestKeyHandler_LockHandler(t *testing.T) {
	t.Run("Success_DropsCachedKey", func(t *testing.T) {
		useCase := &stubKeyUseCase{}
		handler := setupTestHandler(useCase)

		c, w := createTestContext(http.MethodPost, "/v1/key/lock", nil)
		handler.LockHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, useCase.locked)
	})
}
