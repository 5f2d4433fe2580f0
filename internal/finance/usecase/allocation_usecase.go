package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcache "github.com/allisson/finvault/internal/cache"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	financeService "github.com/allisson/finvault/internal/finance/service"
	"github.com/allisson/finvault/internal/metrics"
)

// allocationUseCase implements the AllocationUseCase interface. The
// allocation-vs-balance check runs here: the server stores both amounts as
// opaque ciphertext and cannot compare them.
type allocationUseCase struct {
	repo        AllocationRepository
	accountRepo AccountRepository
	encryptor   *financeService.EntityEncryptor
	cache       *appcache.EntityCache
	metrics     metrics.BusinessMetrics
	logger      *slog.Logger
}

// List returns the decrypted allocations of one pool.
func (a *allocationUseCase) List(
	ctx context.Context,
	poolID uuid.UUID,
) ([]*financeDomain.Allocation, error) {
	key := appcache.AllocationsKey(poolID)
	if cached, ok := a.cache.Get(key); ok {
		if allocations, ok := cached.([]*financeDomain.Allocation); ok {
			return allocations, nil
		}
	}

	rows, err := a.repo.ListAllocations(ctx, poolID)
	if err != nil {
		return nil, err
	}

	allocations, err := decryptRows(
		ctx, rows, "allocation", a.encryptor.DecryptAllocationRow, a.logger, a.metrics,
	)
	if err != nil {
		return nil, err
	}

	a.cache.Set(key, allocations)
	return allocations, nil
}

// Create encrypts the allocation amount and stores the row remotely after
// checking it against the source account's decrypted balance. The check covers
// the account's existing allocations across all pools: the new amount plus the
// already allocated total must not exceed the balance.
func (a *allocationUseCase) Create(
	ctx context.Context,
	input CreateAllocationInput,
) (*financeDomain.Allocation, error) {
	account, err := findAccount(
		ctx, a.accountRepo, a.encryptor, a.cache, a.metrics, a.logger, input.AccountID,
	)
	if err != nil {
		return nil, err
	}

	allocated, err := a.allocatedTotal(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if allocated.Add(input.Amount).GreaterThan(account.Balance) {
		return nil, financeDomain.ErrAllocationExceedsBalance
	}

	env, err := a.encryptor.EncryptAllocation(input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	allocation := &financeDomain.Allocation{
		ID:        uuid.Must(uuid.NewV7()),
		PoolID:    input.PoolID,
		AccountID: input.AccountID,
		OwnerID:   input.OwnerID,
		Currency:  input.Currency,
		CreatedAt: now,
		UpdatedAt: now,
		Amount:    input.Amount,
	}
	row := &financeDomain.RawAllocationRow{
		ID:            allocation.ID,
		PoolID:        allocation.PoolID,
		AccountID:     allocation.AccountID,
		OwnerID:       allocation.OwnerID,
		Currency:      allocation.Currency,
		CreatedAt:     allocation.CreatedAt,
		UpdatedAt:     allocation.UpdatedAt,
		EncryptedData: env,
	}

	err = runOptimistic(a.cache, appcache.AllocationsKey(input.PoolID),
		func(current []*financeDomain.Allocation) []*financeDomain.Allocation {
			return append(slices.Clone(current), allocation)
		},
		func() error {
			_, err := a.repo.CreateAllocation(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return allocation, nil
}

// allocatedTotal sums the decrypted amounts of every allocation funded by the
// account. Rows that fail to decrypt are dropped by decryptRows and excluded
// from the sum; a missing master key fails the call.
func (a *allocationUseCase) allocatedTotal(
	ctx context.Context,
	accountID uuid.UUID,
) (decimal.Decimal, error) {
	rows, err := a.repo.ListAccountAllocations(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	allocations, err := decryptRows(
		ctx, rows, "allocation", a.encryptor.DecryptAllocationRow, a.logger, a.metrics,
	)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, allocation := range allocations {
		total = total.Add(allocation.Amount)
	}
	return total, nil
}

// Delete removes an allocation remotely and from the cached view.
func (a *allocationUseCase) Delete(ctx context.Context, id, poolID uuid.UUID) error {
	return runOptimistic(a.cache, appcache.AllocationsKey(poolID),
		func(current []*financeDomain.Allocation) []*financeDomain.Allocation {
			return removeFirst(current, func(e *financeDomain.Allocation) bool {
				return e.ID == id
			})
		},
		func() error {
			return a.repo.DeleteAllocation(ctx, id)
		},
	)
}

// NewAllocationUseCase creates a new allocation use case instance.
func NewAllocationUseCase(
	repo AllocationRepository,
	accountRepo AccountRepository,
	encryptor *financeService.EntityEncryptor,
	cache *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
) AllocationUseCase {
	return &allocationUseCase{
		repo:        repo,
		accountRepo: accountRepo,
		encryptor:   encryptor,
		cache:       cache,
		metrics:     m,
		logger:      logger,
	}
}
