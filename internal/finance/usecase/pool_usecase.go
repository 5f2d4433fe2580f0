package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	appcache "github.com/allisson/finvault/internal/cache"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	financeService "github.com/allisson/finvault/internal/finance/service"
	"github.com/allisson/finvault/internal/metrics"
)

// poolUseCase implements the PoolUseCase interface.
type poolUseCase struct {
	repo      PoolRepository
	encryptor *financeService.EntityEncryptor
	cache     *appcache.EntityCache
	metrics   metrics.BusinessMetrics
	logger    *slog.Logger
}

// List returns all decrypted pools. The sentinel free pool comes back with
// its synthesized name and no decryption.
func (p *poolUseCase) List(ctx context.Context) ([]*financeDomain.Pool, error) {
	if cached, ok := p.cache.Get(appcache.PoolsKey()); ok {
		if pools, ok := cached.([]*financeDomain.Pool); ok {
			return pools, nil
		}
	}

	rows, err := p.repo.ListPools(ctx)
	if err != nil {
		return nil, err
	}

	pools, err := decryptRows(ctx, rows, "pool", p.encryptor.DecryptPoolRow, p.logger, p.metrics)
	if err != nil {
		return nil, err
	}

	p.cache.Set(appcache.PoolsKey(), pools)
	return pools, nil
}

// Create encrypts the pool name and stores the row remotely.
func (p *poolUseCase) Create(
	ctx context.Context,
	input CreatePoolInput,
) (*financeDomain.Pool, error) {
	env, err := p.encryptor.EncryptPool(input.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pool := &financeDomain.Pool{
		ID:        uuid.Must(uuid.NewV7()),
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
		Name:      input.Name,
	}
	row := &financeDomain.RawPoolRow{
		ID:            pool.ID,
		OwnerID:       pool.OwnerID,
		CreatedAt:     pool.CreatedAt,
		UpdatedAt:     pool.UpdatedAt,
		EncryptedData: env,
	}

	err = runOptimistic(p.cache, appcache.PoolsKey(),
		func(current []*financeDomain.Pool) []*financeDomain.Pool {
			return append(slices.Clone(current), pool)
		},
		func() error {
			_, err := p.repo.CreatePool(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// Update re-encrypts the pool name and replaces the remote row. The sentinel
// free pool is immutable.
func (p *poolUseCase) Update(
	ctx context.Context,
	input UpdatePoolInput,
) (*financeDomain.Pool, error) {
	current, err := p.findPool(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if current.IsFree {
		return nil, financeDomain.ErrFreePoolImmutable
	}

	env, err := p.encryptor.EncryptPool(input.Name)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = input.Name
	updated.Archived = input.Archived
	updated.UpdatedAt = time.Now().UTC()
	row := &financeDomain.RawPoolRow{
		ID:            updated.ID,
		OwnerID:       updated.OwnerID,
		Archived:      updated.Archived,
		CreatedAt:     updated.CreatedAt,
		UpdatedAt:     updated.UpdatedAt,
		EncryptedData: env,
	}

	err = runOptimistic(p.cache, appcache.PoolsKey(),
		func(current []*financeDomain.Pool) []*financeDomain.Pool {
			return replaceFirst(current, func(e *financeDomain.Pool) bool {
				return e.ID == input.ID
			}, &updated)
		},
		func() error {
			_, err := p.repo.UpdatePool(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a pool remotely and from the cached view, along with its
// cached allocation list. The sentinel free pool is immutable.
func (p *poolUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := p.findPool(ctx, id)
	if err != nil {
		return err
	}
	if current.IsFree {
		return financeDomain.ErrFreePoolImmutable
	}

	err = runOptimistic(p.cache, appcache.PoolsKey(),
		func(current []*financeDomain.Pool) []*financeDomain.Pool {
			return removeFirst(current, func(e *financeDomain.Pool) bool {
				return e.ID == id
			})
		},
		func() error {
			return p.repo.DeletePool(ctx, id)
		},
	)
	if err != nil {
		return err
	}

	p.cache.Invalidate(appcache.AllocationsKey(id))
	return nil
}

// findPool returns the decrypted pool with the given ID.
func (p *poolUseCase) findPool(ctx context.Context, id uuid.UUID) (*financeDomain.Pool, error) {
	pools, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, pool := range pools {
		if pool.ID == id {
			return pool, nil
		}
	}
	return nil, financeDomain.ErrPoolNotFound
}

// NewPoolUseCase creates a new pool use case instance.
func NewPoolUseCase(
	repo PoolRepository,
	encryptor *financeService.EntityEncryptor,
	cache *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
) PoolUseCase {
	return &poolUseCase{
		repo:      repo,
		encryptor: encryptor,
		cache:     cache,
		metrics:   m,
		logger:    logger,
	}
}
