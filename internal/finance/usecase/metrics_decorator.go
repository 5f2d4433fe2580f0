package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	"github.com/allisson/finvault/internal/metrics"
)

const metricsDomain = "finance"

// record emits the operation counter and duration histogram for one call.
func record(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *accountUseCaseWithMetrics) List(ctx context.Context) ([]*financeDomain.Account, error) {
	start := time.Now()
	accounts, err := a.next.List(ctx)
	record(ctx, a.metrics, "account_list", start, err)
	return accounts, err
}

func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateAccountInput,
) (*financeDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Create(ctx, input)
	record(ctx, a.metrics, "account_create", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) Update(
	ctx context.Context,
	input UpdateAccountInput,
) (*financeDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Update(ctx, input)
	record(ctx, a.metrics, "account_update", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)
	record(ctx, a.metrics, "account_delete", start, err)
	return err
}

// transactionUseCaseWithMetrics decorates TransactionUseCase with metrics instrumentation.
type transactionUseCaseWithMetrics struct {
	next    TransactionUseCase
	metrics metrics.BusinessMetrics
}

// NewTransactionUseCaseWithMetrics wraps a TransactionUseCase with metrics recording.
func NewTransactionUseCaseWithMetrics(
	useCase TransactionUseCase,
	m metrics.BusinessMetrics,
) TransactionUseCase {
	return &transactionUseCaseWithMetrics{next: useCase, metrics: m}
}

func (t *transactionUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*financeDomain.Transaction, error) {
	start := time.Now()
	transactions, err := t.next.List(ctx, accountID)
	record(ctx, t.metrics, "transaction_list", start, err)
	return transactions, err
}

func (t *transactionUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateTransactionInput,
) (*financeDomain.Transaction, error) {
	start := time.Now()
	transaction, err := t.next.Create(ctx, input)
	record(ctx, t.metrics, "transaction_create", start, err)
	return transaction, err
}

func (t *transactionUseCaseWithMetrics) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	start := time.Now()
	err := t.next.Delete(ctx, id, accountID)
	record(ctx, t.metrics, "transaction_delete", start, err)
	return err
}

// poolUseCaseWithMetrics decorates PoolUseCase with metrics instrumentation.
type poolUseCaseWithMetrics struct {
	next    PoolUseCase
	metrics metrics.BusinessMetrics
}

// NewPoolUseCaseWithMetrics wraps a PoolUseCase with metrics recording.
func NewPoolUseCaseWithMetrics(useCase PoolUseCase, m metrics.BusinessMetrics) PoolUseCase {
	return &poolUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *poolUseCaseWithMetrics) List(ctx context.Context) ([]*financeDomain.Pool, error) {
	start := time.Now()
	pools, err := p.next.List(ctx)
	record(ctx, p.metrics, "pool_list", start, err)
	return pools, err
}

func (p *poolUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreatePoolInput,
) (*financeDomain.Pool, error) {
	start := time.Now()
	pool, err := p.next.Create(ctx, input)
	record(ctx, p.metrics, "pool_create", start, err)
	return pool, err
}

func (p *poolUseCaseWithMetrics) Update(
	ctx context.Context,
	input UpdatePoolInput,
) (*financeDomain.Pool, error) {
	start := time.Now()
	pool, err := p.next.Update(ctx, input)
	record(ctx, p.metrics, "pool_update", start, err)
	return pool, err
}

func (p *poolUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, id)
	record(ctx, p.metrics, "pool_delete", start, err)
	return err
}

// allocationUseCaseWithMetrics decorates AllocationUseCase with metrics instrumentation.
type allocationUseCaseWithMetrics struct {
	next    AllocationUseCase
	metrics metrics.BusinessMetrics
}

// NewAllocationUseCaseWithMetrics wraps an AllocationUseCase with metrics recording.
func NewAllocationUseCaseWithMetrics(
	useCase AllocationUseCase,
	m metrics.BusinessMetrics,
) AllocationUseCase {
	return &allocationUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *allocationUseCaseWithMetrics) List(
	ctx context.Context,
	poolID uuid.UUID,
) ([]*financeDomain.Allocation, error) {
	start := time.Now()
	allocations, err := a.next.List(ctx, poolID)
	record(ctx, a.metrics, "allocation_list", start, err)
	return allocations, err
}

func (a *allocationUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateAllocationInput,
) (*financeDomain.Allocation, error) {
	start := time.Now()
	allocation, err := a.next.Create(ctx, input)
	record(ctx, a.metrics, "allocation_create", start, err)
	return allocation, err
}

func (a *allocationUseCaseWithMetrics) Delete(ctx context.Context, id, poolID uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, id, poolID)
	record(ctx, a.metrics, "allocation_delete", start, err)
	return err
}
