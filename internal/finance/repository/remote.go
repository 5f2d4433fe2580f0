// Package repository implements access to the remote sync server.
//
// The remote server is an external collaborator and an untrusted storage
// relay: it persists plain fields and opaque ciphertext envelopes, performs no
// validation of envelope contents, and never receives plaintext sensitive
// fields or key material.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	apperrors "github.com/allisson/finvault/internal/errors"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
)

// RemoteClient is the HTTP client for the remote sync server.
type RemoteClient struct {
	http      *retryablehttp.Client
	baseURL   string
	authToken string
	logger    *slog.Logger
}

// NewRemoteClient creates a remote sync client with retry support.
func NewRemoteClient(
	baseURL string,
	authToken string,
	timeout time.Duration,
	retryMax int,
	logger *slog.Logger,
) *RemoteClient {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.HTTPClient.Timeout = timeout
	client.Logger = nil

	return &RemoteClient{
		http:      client,
		baseURL:   baseURL,
		authToken: authToken,
		logger:    logger,
	}
}

// do performs a JSON request against the remote server and decodes the
// response into out when out is non-nil.
func (c *RemoteClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if err := statusToError(resp.StatusCode); err != nil {
		c.logger.Warn("remote sync request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrap(apperrors.ErrUnavailable, "failed to decode response body")
		}
	}

	return nil
}

// statusToError maps remote HTTP status codes onto domain errors.
func statusToError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return apperrors.ErrInvalidInput
	default:
		return fmt.Errorf("%w: remote returned status %d", apperrors.ErrUnavailable, status)
	}
}

// envelopeUpdate is the body of an envelope-only update: the client pushes a
// re-encrypted payload without touching the row's plain fields.
type envelopeUpdate struct {
	EncryptedData *cryptoDomain.EncryptedEnvelope `json:"encrypted_data"`
}

// ListAccounts fetches all account rows.
func (c *RemoteClient) ListAccounts(ctx context.Context) ([]financeDomain.RawAccountRow, error) {
	var rows []financeDomain.RawAccountRow
	if err := c.do(ctx, http.MethodGet, "/v1/accounts", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateAccount persists a new account row and returns the stored row.
func (c *RemoteClient) CreateAccount(
	ctx context.Context,
	row *financeDomain.RawAccountRow,
) (*financeDomain.RawAccountRow, error) {
	var created financeDomain.RawAccountRow
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAccount replaces an account row and returns the stored row.
func (c *RemoteClient) UpdateAccount(
	ctx context.Context,
	row *financeDomain.RawAccountRow,
) (*financeDomain.RawAccountRow, error) {
	var updated financeDomain.RawAccountRow
	path := fmt.Sprintf("/v1/accounts/%s", row.ID)
	if err := c.do(ctx, http.MethodPut, path, row, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAccountEnvelope replaces only the ciphertext envelope of an account.
// Used by balance-affecting transaction mutations.
func (c *RemoteClient) UpdateAccountEnvelope(
	ctx context.Context,
	id uuid.UUID,
	env *cryptoDomain.EncryptedEnvelope,
) error {
	path := fmt.Sprintf("/v1/accounts/%s/envelope", id)
	return c.do(ctx, http.MethodPut, path, envelopeUpdate{EncryptedData: env}, nil)
}

// DeleteAccount removes an account row.
func (c *RemoteClient) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/accounts/%s", id), nil, nil)
}

// ListTransactions fetches the transaction rows of one account.
func (c *RemoteClient) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
) ([]financeDomain.RawTransactionRow, error) {
	var rows []financeDomain.RawTransactionRow
	path := fmt.Sprintf("/v1/transactions?account_id=%s", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateTransaction persists a new transaction row and returns the stored row.
func (c *RemoteClient) CreateTransaction(
	ctx context.Context,
	row *financeDomain.RawTransactionRow,
) (*financeDomain.RawTransactionRow, error) {
	var created financeDomain.RawTransactionRow
	if err := c.do(ctx, http.MethodPost, "/v1/transactions", row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTransaction fetches a single transaction row.
func (c *RemoteClient) GetTransaction(
	ctx context.Context,
	id uuid.UUID,
) (*financeDomain.RawTransactionRow, error) {
	var row financeDomain.RawTransactionRow
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", id), nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteTransaction removes a transaction row.
func (c *RemoteClient) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", id), nil, nil)
}

// ListPools fetches all pool rows.
func (c *RemoteClient) ListPools(ctx context.Context) ([]financeDomain.RawPoolRow, error) {
	var rows []financeDomain.RawPoolRow
	if err := c.do(ctx, http.MethodGet, "/v1/pools", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreatePool persists a new pool row and returns the stored row.
func (c *RemoteClient) CreatePool(
	ctx context.Context,
	row *financeDomain.RawPoolRow,
) (*financeDomain.RawPoolRow, error) {
	var created financeDomain.RawPoolRow
	if err := c.do(ctx, http.MethodPost, "/v1/pools", row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePool replaces a pool row and returns the stored row.
func (c *RemoteClient) UpdatePool(
	ctx context.Context,
	row *financeDomain.RawPoolRow,
) (*financeDomain.RawPoolRow, error) {
	var updated financeDomain.RawPoolRow
	path := fmt.Sprintf("/v1/pools/%s", row.ID)
	if err := c.do(ctx, http.MethodPut, path, row, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePool removes a pool row.
func (c *RemoteClient) DeletePool(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/pools/%s", id), nil, nil)
}

// ListAllocations fetches the allocation rows of one pool.
func (c *RemoteClient) ListAllocations(
	ctx context.Context,
	poolID uuid.UUID,
) ([]financeDomain.RawAllocationRow, error) {
	var rows []financeDomain.RawAllocationRow
	path := fmt.Sprintf("/v1/allocations?pool_id=%s", poolID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAccountAllocations fetches the allocation rows funded by one account,
// across all pools. The account reference is a plain field, so the server can
// filter without reading any ciphertext.
func (c *RemoteClient) ListAccountAllocations(
	ctx context.Context,
	accountID uuid.UUID,
) ([]financeDomain.RawAllocationRow, error) {
	var rows []financeDomain.RawAllocationRow
	path := fmt.Sprintf("/v1/allocations?account_id=%s", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateAllocation persists a new allocation row and returns the stored row.
func (c *RemoteClient) CreateAllocation(
	ctx context.Context,
	row *financeDomain.RawAllocationRow,
) (*financeDomain.RawAllocationRow, error) {
	var created financeDomain.RawAllocationRow
	if err := c.do(ctx, http.MethodPost, "/v1/allocations", row, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAllocation removes an allocation row.
func (c *RemoteClient) DeleteAllocation(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/allocations/%s", id), nil, nil)
}
