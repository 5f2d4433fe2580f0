package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	appcache "github.com/allisson/finvault/internal/cache"
	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
	financeService "github.com/allisson/finvault/internal/finance/service"
	"github.com/allisson/finvault/internal/metrics"
)

// accountUseCase implements the AccountUseCase interface.
type accountUseCase struct {
	repo      AccountRepository
	encryptor *financeService.EntityEncryptor
	cache     *appcache.EntityCache
	metrics   metrics.BusinessMetrics
	logger    *slog.Logger
}

// listAccounts returns decrypted accounts, serving from the cache when warm.
// Shared by the account use case and the use cases that need an account
// lookup for balance math.
func listAccounts(
	ctx context.Context,
	repo AccountRepository,
	encryptor *financeService.EntityEncryptor,
	c *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
) ([]*financeDomain.Account, error) {
	if cached, ok := c.Get(appcache.AccountsKey()); ok {
		if accounts, ok := cached.([]*financeDomain.Account); ok {
			return accounts, nil
		}
	}

	rows, err := repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := decryptRows(ctx, rows, "account", encryptor.DecryptAccountRow, logger, m)
	if err != nil {
		return nil, err
	}

	c.Set(appcache.AccountsKey(), accounts)
	return accounts, nil
}

// findAccount returns the decrypted account with the given ID.
func findAccount(
	ctx context.Context,
	repo AccountRepository,
	encryptor *financeService.EntityEncryptor,
	c *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
	id uuid.UUID,
) (*financeDomain.Account, error) {
	accounts, err := listAccounts(ctx, repo, encryptor, c, m, logger)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, financeDomain.ErrAccountNotFound
}

// List returns all decrypted accounts.
func (a *accountUseCase) List(ctx context.Context) ([]*financeDomain.Account, error) {
	return listAccounts(ctx, a.repo, a.encryptor, a.cache, a.metrics, a.logger)
}

// Create encrypts the sensitive fields, stores the row remotely, and applies
// the new account optimistically to the cached view.
func (a *accountUseCase) Create(
	ctx context.Context,
	input CreateAccountInput,
) (*financeDomain.Account, error) {
	env, err := a.encryptor.EncryptAccount(input.Name, input.Balance)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &financeDomain.Account{
		ID:               uuid.Must(uuid.NewV7()),
		OwnerID:          input.OwnerID,
		Currency:         input.Currency,
		Type:             input.Type,
		ExcludedFromFree: input.ExcludedFromFree,
		CreatedAt:        now,
		UpdatedAt:        now,
		Name:             input.Name,
		Balance:          input.Balance,
	}
	row := rawAccountRow(account, env)

	err = runOptimistic(a.cache, appcache.AccountsKey(),
		func(current []*financeDomain.Account) []*financeDomain.Account {
			return append(slices.Clone(current), account)
		},
		func() error {
			_, err := a.repo.CreateAccount(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Update re-encrypts the sensitive fields and replaces the remote row.
func (a *accountUseCase) Update(
	ctx context.Context,
	input UpdateAccountInput,
) (*financeDomain.Account, error) {
	current, err := findAccount(ctx, a.repo, a.encryptor, a.cache, a.metrics, a.logger, input.ID)
	if err != nil {
		return nil, err
	}

	env, err := a.encryptor.EncryptAccount(input.Name, input.Balance)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = input.Name
	updated.Balance = input.Balance
	updated.Archived = input.Archived
	updated.ExcludedFromFree = input.ExcludedFromFree
	updated.UpdatedAt = time.Now().UTC()
	row := rawAccountRow(&updated, env)

	err = runOptimistic(a.cache, appcache.AccountsKey(),
		func(current []*financeDomain.Account) []*financeDomain.Account {
			return replaceFirst(current, func(e *financeDomain.Account) bool {
				return e.ID == input.ID
			}, &updated)
		},
		func() error {
			_, err := a.repo.UpdateAccount(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the account remotely and from the cached view, along with
// its cached transaction list.
func (a *accountUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := runOptimistic(a.cache, appcache.AccountsKey(),
		func(current []*financeDomain.Account) []*financeDomain.Account {
			return removeFirst(current, func(e *financeDomain.Account) bool {
				return e.ID == id
			})
		},
		func() error {
			return a.repo.DeleteAccount(ctx, id)
		},
	)
	if err != nil {
		return err
	}

	a.cache.Invalidate(appcache.TransactionsKey(id))
	return nil
}

// rawAccountRow builds the server-side representation of a decrypted account.
func rawAccountRow(
	account *financeDomain.Account,
	env *cryptoDomain.EncryptedEnvelope,
) *financeDomain.RawAccountRow {
	return &financeDomain.RawAccountRow{
		ID:               account.ID,
		OwnerID:          account.OwnerID,
		Currency:         account.Currency,
		Type:             account.Type,
		Archived:         account.Archived,
		ExcludedFromFree: account.ExcludedFromFree,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
		EncryptedData:    env,
	}
}

// NewAccountUseCase creates a new account use case instance.
func NewAccountUseCase(
	repo AccountRepository,
	encryptor *financeService.EntityEncryptor,
	cache *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
) AccountUseCase {
	return &accountUseCase{
		repo:      repo,
		encryptor: encryptor,
		cache:     cache,
		metrics:   m,
		logger:    logger,
	}
}
