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

// transactionUseCase implements the TransactionUseCase interface. It also
// owns the balance side effect: the server stores the balance as opaque
// ciphertext, so every balance-affecting mutation re-encrypts the owning
// account's payload client-side and pushes the new envelope.
type transactionUseCase struct {
	repo        TransactionRepository
	accountRepo AccountRepository
	encryptor   *financeService.EntityEncryptor
	cache       *appcache.EntityCache
	metrics     metrics.BusinessMetrics
	logger      *slog.Logger
}

// List returns the decrypted transactions of one account.
func (t *transactionUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*financeDomain.Transaction, error) {
	key := appcache.TransactionsKey(accountID)
	if cached, ok := t.cache.Get(key); ok {
		if transactions, ok := cached.([]*financeDomain.Transaction); ok {
			return transactions, nil
		}
	}

	rows, err := t.repo.ListTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := decryptRows(
		ctx, rows, "transaction", t.encryptor.DecryptTransactionRow, t.logger, t.metrics,
	)
	if err != nil {
		return nil, err
	}

	t.cache.Set(key, transactions)
	return transactions, nil
}

// Create stores a new transaction and applies its signed amount to the
// owning account's balance.
func (t *transactionUseCase) Create(
	ctx context.Context,
	input CreateTransactionInput,
) (*financeDomain.Transaction, error) {
	env, err := t.encryptor.EncryptTransaction(input.Amount, input.Category, input.Description)
	if err != nil {
		return nil, err
	}

	transaction := &financeDomain.Transaction{
		ID:          uuid.Must(uuid.NewV7()),
		AccountID:   input.AccountID,
		OwnerID:     input.OwnerID,
		Type:        input.Type,
		Currency:    input.Currency,
		OccurredAt:  input.OccurredAt,
		CreatedAt:   time.Now().UTC(),
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
	}
	row := &financeDomain.RawTransactionRow{
		ID:            transaction.ID,
		AccountID:     transaction.AccountID,
		OwnerID:       transaction.OwnerID,
		Type:          transaction.Type,
		Currency:      transaction.Currency,
		OccurredAt:    transaction.OccurredAt,
		CreatedAt:     transaction.CreatedAt,
		EncryptedData: env,
	}

	err = runOptimistic(t.cache, appcache.TransactionsKey(input.AccountID),
		func(current []*financeDomain.Transaction) []*financeDomain.Transaction {
			return append(slices.Clone(current), transaction)
		},
		func() error {
			_, err := t.repo.CreateTransaction(ctx, row)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	// The transaction row is already durable at this point. A failed balance
	// push is logged and repaired by the next full account sync instead of
	// rolling the transaction back.
	if err := t.adjustAccountBalance(ctx, input.AccountID, transaction.SignedAmount()); err != nil {
		t.logger.Warn("failed to push re-encrypted account balance",
			slog.String("account_id", input.AccountID.String()),
			slog.String("transaction_id", transaction.ID.String()),
			slog.Any("error", err),
		)
	}

	return transaction, nil
}

// Delete removes a transaction and reverses its effect on the owning
// account's balance.
func (t *transactionUseCase) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	transaction, err := t.findTransaction(ctx, id, accountID)
	if err != nil {
		return err
	}

	err = runOptimistic(t.cache, appcache.TransactionsKey(accountID),
		func(current []*financeDomain.Transaction) []*financeDomain.Transaction {
			return removeFirst(current, func(e *financeDomain.Transaction) bool {
				return e.ID == id
			})
		},
		func() error {
			return t.repo.DeleteTransaction(ctx, id)
		},
	)
	if err != nil {
		return err
	}

	if err := t.adjustAccountBalance(ctx, accountID, transaction.SignedAmount().Neg()); err != nil {
		t.logger.Warn("failed to push re-encrypted account balance",
			slog.String("account_id", accountID.String()),
			slog.String("transaction_id", id.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

// findTransaction resolves a transaction from the cached list, falling back
// to a remote fetch and decrypt.
func (t *transactionUseCase) findTransaction(
	ctx context.Context,
	id, accountID uuid.UUID,
) (*financeDomain.Transaction, error) {
	if cached, ok := t.cache.Get(appcache.TransactionsKey(accountID)); ok {
		if transactions, ok := cached.([]*financeDomain.Transaction); ok {
			for _, transaction := range transactions {
				if transaction.ID == id {
					return transaction, nil
				}
			}
		}
	}

	row, err := t.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.encryptor.DecryptTransactionRow(row)
}

// adjustAccountBalance applies delta to the account's decrypted balance and
// pushes the re-encrypted envelope to the server.
func (t *transactionUseCase) adjustAccountBalance(
	ctx context.Context,
	accountID uuid.UUID,
	delta decimal.Decimal,
) error {
	account, err := findAccount(
		ctx, t.accountRepo, t.encryptor, t.cache, t.metrics, t.logger, accountID,
	)
	if err != nil {
		return err
	}

	newBalance := account.Balance.Add(delta)
	env, err := t.encryptor.EncryptAccount(account.Name, newBalance)
	if err != nil {
		return err
	}

	if err := t.accountRepo.UpdateAccountEnvelope(ctx, accountID, env); err != nil {
		return err
	}

	t.refreshCachedBalance(accountID, newBalance)
	return nil
}

// refreshCachedBalance rewrites the cached account list with the new balance.
func (t *transactionUseCase) refreshCachedBalance(accountID uuid.UUID, balance decimal.Decimal) {
	cached, ok := t.cache.Get(appcache.AccountsKey())
	if !ok {
		return
	}
	accounts, ok := cached.([]*financeDomain.Account)
	if !ok {
		return
	}

	next := make([]*financeDomain.Account, len(accounts))
	for i, account := range accounts {
		if account.ID == accountID {
			clone := *account
			clone.Balance = balance
			clone.UpdatedAt = time.Now().UTC()
			next[i] = &clone
			continue
		}
		next[i] = account
	}
	t.cache.Set(appcache.AccountsKey(), next)
}

// NewTransactionUseCase creates a new transaction use case instance.
func NewTransactionUseCase(
	repo TransactionRepository,
	accountRepo AccountRepository,
	encryptor *financeService.EntityEncryptor,
	cache *appcache.EntityCache,
	m metrics.BusinessMetrics,
	logger *slog.Logger,
) TransactionUseCase {
	return &transactionUseCase{
		repo:        repo,
		accountRepo: accountRepo,
		encryptor:   encryptor,
		cache:       cache,
		metrics:     m,
		logger:      logger,
	}
}
