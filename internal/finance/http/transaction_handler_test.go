package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	"github.com/allisson/finvault/internal/finance/http/dto"
)

func testTransaction(accountID uuid.UUID, amount string) *financeDomain.Transaction {
	return &financeDomain.Transaction{
		ID:         uuid.Must(uuid.NewV7()),
		AccountID:  accountID,
		OwnerID:    uuid.Must(uuid.NewV7()),
		Type:       financeDomain.TransactionTypeExpense,
		Currency:   "USD",
		OccurredAt: time.Now().UTC(),
		CreatedAt:  time.Now().UTC(),
		Amount:     decimal.RequireFromString(amount),
		Category:   "groceries",
	}
}

func TestTransactionHandler_ListHandler(t *testing.T) {
	t.Run("Success_FiltersByAccount", func(t *testing.T) {
		accountID := uuid.Must(uuid.NewV7())
		useCase := &stubTransactionUseCase{
			transactions: []*financeDomain.Transaction{testTransaction(accountID, "19.99")},
		}
		handler := NewTransactionHandler(useCase, testLogger())

		c, w := createTestContext(
			http.MethodGet, "/v1/transactions?account_id="+accountID.String(), nil,
		)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, accountID, useCase.listAccountID)

		var response []dto.TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "19.99", response[0].Amount)
		assert.Equal(t, "groceries", response[0].Category)
	})

	t.Run("Error_MissingAccountID", func(t *testing.T) {
		handler := NewTransactionHandler(&stubTransactionUseCase{}, testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/transactions", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		accountID := uuid.Must(uuid.NewV7())
		transaction := testTransaction(accountID, "19.99")
		useCase := &stubTransactionUseCase{transaction: transaction}
		handler := NewTransactionHandler(useCase, testLogger())

		request := dto.CreateTransactionRequest{
			AccountID:  accountID.String(),
			Type:       "expense",
			Currency:   "USD",
			OccurredAt: time.Now().UTC(),
			Amount:     "19.99",
			Category:   "groceries",
		}
		c, w := createTestContext(http.MethodPost, "/v1/transactions", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, useCase.createInput)
		assert.Equal(t, accountID, useCase.createInput.AccountID)
		assert.Equal(t, "19.99", useCase.createInput.Amount.String())
	})

	t.Run("Error_NegativeAmount", func(t *testing.T) {
		useCase := &stubTransactionUseCase{}
		handler := NewTransactionHandler(useCase, testLogger())

		request := dto.CreateTransactionRequest{
			AccountID:  uuid.Must(uuid.NewV7()).String(),
			Type:       "expense",
			Currency:   "USD",
			OccurredAt: time.Now().UTC(),
			Amount:     "-5.00",
		}
		c, w := createTestContext(http.MethodPost, "/v1/transactions", request)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Nil(t, useCase.createInput)
	})
}

func TestTransactionHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		useCase := &stubTransactionUseCase{}
		handler := NewTransactionHandler(useCase, testLogger())

		id := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(
			http.MethodDelete,
			"/v1/transactions/"+id.String()+"?account_id="+accountID.String(),
			nil,
		)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, id, useCase.deletedID)
	})

	t.Run("Error_MissingAccountID", func(t *testing.T) {
		handler := NewTransactionHandler(&stubTransactionUseCase{}, testLogger())

		id := uuid.Must(uuid.NewV7())
		c, w := createTestContext(http.MethodDelete, "/v1/transactions/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
