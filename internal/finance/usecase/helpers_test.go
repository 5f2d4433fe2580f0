package usecase

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcache "github.com/allisson/finvault/internal/cache"
	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	cryptoService "github.com/allisson/finvault/internal/crypto/service"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	financeService "github.com/allisson/finvault/internal/finance/service"
	"github.com/allisson/finvault/internal/metrics"
)

// fakeKeyProvider serves a fixed key, or ErrKeyUnavailable when empty.
type fakeKeyProvider struct {
	key []byte
}

func (f *fakeKeyProvider) GetCached() (*cryptoDomain.MasterKey, error) {
	if f.key == nil {
		return nil, cryptoDomain.ErrKeyUnavailable
	}
	return &cryptoDomain.MasterKey{ID: "master", Key: f.key}, nil
}

// testEnv bundles the shared collaborators of the use case tests.
type testEnv struct {
	encryptor *financeService.EntityEncryptor
	keys      *fakeKeyProvider
	cache     *appcache.EntityCache
	logger    *slog.Logger
	metrics   metrics.BusinessMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	keys := &fakeKeyProvider{key: key}
	c, err := appcache.New(32)
	require.NoError(t, err)

	return &testEnv{
		encryptor: financeService.NewEntityEncryptor(cryptoService.NewEnvelopeCodec(), keys),
		keys:      keys,
		cache:     c,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:   metrics.NewNoOpBusinessMetrics(),
	}
}

func (e *testEnv) accountRow(t *testing.T, name, balance string) financeDomain.RawAccountRow {
	t.Helper()

	env, err := e.encryptor.EncryptAccount(name, decimal.RequireFromString(balance))
	require.NoError(t, err)

	now := time.Now().UTC()
	return financeDomain.RawAccountRow{
		ID:            uuid.Must(uuid.NewV7()),
		OwnerID:       uuid.Must(uuid.NewV7()),
		Currency:      "USD",
		Type:          financeDomain.AccountTypeChecking,
		CreatedAt:     now,
		UpdatedAt:     now,
		EncryptedData: env,
	}
}

func (e *testEnv) transactionRow(
	t *testing.T,
	accountID uuid.UUID,
	txType financeDomain.TransactionType,
	amount, category string,
) financeDomain.RawTransactionRow {
	t.Helper()

	env, err := e.encryptor.EncryptTransaction(
		decimal.RequireFromString(amount), category, "",
	)
	require.NoError(t, err)

	now := time.Now().UTC()
	return financeDomain.RawTransactionRow{
		ID:            uuid.Must(uuid.NewV7()),
		AccountID:     accountID,
		OwnerID:       uuid.Must(uuid.NewV7()),
		Type:          txType,
		Currency:      "USD",
		OccurredAt:    now,
		CreatedAt:     now,
		EncryptedData: env,
	}
}

func (e *testEnv) poolRow(t *testing.T, name string) financeDomain.RawPoolRow {
	t.Helper()

	env, err := e.encryptor.EncryptPool(name)
	require.NoError(t, err)

	now := time.Now().UTC()
	return financeDomain.RawPoolRow{
		ID:            uuid.Must(uuid.NewV7()),
		OwnerID:       uuid.Must(uuid.NewV7()),
		CreatedAt:     now,
		UpdatedAt:     now,
		EncryptedData: env,
	}
}

func (e *testEnv) allocationRow(
	t *testing.T,
	poolID, accountID uuid.UUID,
	amount string,
) financeDomain.RawAllocationRow {
	t.Helper()

	env, err := e.encryptor.EncryptAllocation(decimal.RequireFromString(amount))
	require.NoError(t, err)

	now := time.Now().UTC()
	return financeDomain.RawAllocationRow{
		ID:            uuid.Must(uuid.NewV7()),
		PoolID:        poolID,
		AccountID:     accountID,
		OwnerID:       uuid.Must(uuid.NewV7()),
		Currency:      "USD",
		CreatedAt:     now,
		UpdatedAt:     now,
		EncryptedData: env,
	}
}

// envelopePush records one envelope-only account update.
type envelopePush struct {
	id  uuid.UUID
	env *cryptoDomain.EncryptedEnvelope
}

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	rows      []financeDomain.RawAccountRow
	listCalls int
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created        []*financeDomain.RawAccountRow
	updated        []*financeDomain.RawAccountRow
	deleted        []uuid.UUID
	envelopePushes []envelopePush
	envelopeErr    error
}

func (f *fakeAccountRepo) ListAccounts(ctx context.Context) ([]financeDomain.RawAccountRow, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeAccountRepo) CreateAccount(
	ctx context.Context,
	row *financeDomain.RawAccountRow,
) (*financeDomain.RawAccountRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, row)
	f.rows = append(f.rows, *row)
	return row, nil
}

func (f *fakeAccountRepo) UpdateAccount(
	ctx context.Context,
	row *financeDomain.RawAccountRow,
) (*financeDomain.RawAccountRow, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, row)
	return row, nil
}

func (f *fakeAccountRepo) UpdateAccountEnvelope(
	ctx context.Context,
	id uuid.UUID,
	env *cryptoDomain.EncryptedEnvelope,
) error {
	if f.envelopeErr != nil {
		return f.envelopeErr
	}
	f.envelopePushes = append(f.envelopePushes, envelopePush{id: id, env: env})
	return nil
}

func (f *fakeAccountRepo) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeTransactionRepo is an in-memory TransactionRepository.
type fakeTransactionRepo struct {
	rows      []financeDomain.RawTransactionRow
	listCalls int
	listErr   error
	createErr error
	deleteErr error

	created []*financeDomain.RawTransactionRow
	deleted []uuid.UUID
}

func (f *fakeTransactionRepo) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
) ([]financeDomain.RawTransactionRow, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []financeDomain.RawTransactionRow
	for _, row := range f.rows {
		if row.AccountID == accountID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) CreateTransaction(
	ctx context.Context,
	row *financeDomain.RawTransactionRow,
) (*financeDomain.RawTransactionRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, row)
	f.rows = append(f.rows, *row)
	return row, nil
}

func (f *fakeTransactionRepo) GetTransaction(
	ctx context.Context,
	id uuid.UUID,
) (*financeDomain.RawTransactionRow, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, financeDomain.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakePoolRepo is an in-memory PoolRepository.
type fakePoolRepo struct {
	rows      []financeDomain.RawPoolRow
	listCalls int
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created []*financeDomain.RawPoolRow
	updated []*financeDomain.RawPoolRow
	deleted []uuid.UUID
}

func (f *fakePoolRepo) ListPools(ctx context.Context) ([]financeDomain.RawPoolRow, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakePoolRepo) CreatePool(
	ctx context.Context,
	row *financeDomain.RawPoolRow,
) (*financeDomain.RawPoolRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, row)
	f.rows = append(f.rows, *row)
	return row, nil
}

func (f *fakePoolRepo) UpdatePool(
	ctx context.Context,
	row *financeDomain.RawPoolRow,
) (*financeDomain.RawPoolRow, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, row)
	return row, nil
}

func (f *fakePoolRepo) DeletePool(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeAllocationRepo is an in-memory AllocationRepository.
type fakeAllocationRepo struct {
	rows      []financeDomain.RawAllocationRow
	listErr   error
	createErr error
	deleteErr error

	created []*financeDomain.RawAllocationRow
	deleted []uuid.UUID
}

func (f *fakeAllocationRepo) ListAllocations(
	ctx context.Context,
	poolID uuid.UUID,
) ([]financeDomain.RawAllocationRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []financeDomain.RawAllocationRow
	for _, row := range f.rows {
		if row.PoolID == poolID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) ListAccountAllocations(
	ctx context.Context,
	accountID uuid.UUID,
) ([]financeDomain.RawAllocationRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []financeDomain.RawAllocationRow
	for _, row := range f.rows {
		if row.AccountID == accountID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) CreateAllocation(
	ctx context.Context,
	row *financeDomain.RawAllocationRow,
) (*financeDomain.RawAllocationRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, row)
	f.rows = append(f.rows, *row)
	return row, nil
}

func (f *fakeAllocationRepo) DeleteAllocation(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
