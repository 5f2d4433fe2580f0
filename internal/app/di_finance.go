package app

import (
	"fmt"

	appcache "github.com/allisson/finvault/internal/cache"
	financeHTTP "github.com/allisson/finvault/internal/finance/http"
	financeService "github.com/allisson/finvault/internal/finance/service"
	financeUseCase "github.com/allisson/finvault/internal/finance/usecase"
	appHTTP "github.com/allisson/finvault/internal/http"
	"github.com/allisson/finvault/internal/metrics"
)

// financeDepsRest bundles the non-encryptor dependencies of finance use cases.
type financeDepsRest struct {
	cache   *appcache.EntityCache
	metrics metrics.BusinessMetrics
}

// EntityEncryptor returns the encryptor shared by all finance use cases.
func (c *Container) EntityEncryptor() (*financeService.EntityEncryptor, error) {
	var err error
	c.entityEncryptorInit.Do(func() {
		store, storeErr := c.KeyStore()
		if storeErr != nil {
			err = storeErr
			c.initErrors["entityEncryptor"] = fmt.Errorf(
				"failed to get key store for entity encryptor: %w", storeErr,
			)
			return
		}
		c.entityEncryptor = financeService.NewEntityEncryptor(c.EnvelopeCodec(), store)
	})
	if err != nil {
		return nil, c.initErrors["entityEncryptor"]
	}
	if storedErr, exists := c.initErrors["entityEncryptor"]; exists {
		return nil, storedErr
	}
	return c.entityEncryptor, nil
}

// financeDeps bundles the dependencies shared by all finance use case builds.
func (c *Container) financeDeps() (*financeService.EntityEncryptor, *financeDepsRest, error) {
	encryptor, err := c.EntityEncryptor()
	if err != nil {
		return nil, nil, err
	}

	cache, err := c.EntityCache()
	if err != nil {
		return nil, nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, nil, err
	}

	return encryptor, &financeDepsRest{cache: cache, metrics: businessMetrics}, nil
}

// AccountUseCase returns the account use case wrapped with metrics.
func (c *Container) AccountUseCase() (financeUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// TransactionUseCase returns the transaction use case wrapped with metrics.
func (c *Container) TransactionUseCase() (financeUseCase.TransactionUseCase, error) {
	var err error
	c.transactionUseCaseInit.Do(func() {
		c.transactionUseCase, err = c.initTransactionUseCase()
		if err != nil {
			c.initErrors["transactionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionUseCase"]; exists {
		return nil, storedErr
	}
	return c.transactionUseCase, nil
}

// PoolUseCase returns the pool use case wrapped with metrics.
func (c *Container) PoolUseCase() (financeUseCase.PoolUseCase, error) {
	var err error
	c.poolUseCaseInit.Do(func() {
		c.poolUseCase, err = c.initPoolUseCase()
		if err != nil {
			c.initErrors["poolUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["poolUseCase"]; exists {
		return nil, storedErr
	}
	return c.poolUseCase, nil
}

// AllocationUseCase returns the allocation use case wrapped with metrics.
func (c *Container) AllocationUseCase() (financeUseCase.AllocationUseCase, error) {
	var err error
	c.allocationUseCaseInit.Do(func() {
		c.allocationUseCase, err = c.initAllocationUseCase()
		if err != nil {
			c.initErrors["allocationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["allocationUseCase"]; exists {
		return nil, storedErr
	}
	return c.allocationUseCase, nil
}

func (c *Container) initAccountUseCase() (financeUseCase.AccountUseCase, error) {
	encryptor, rest, err := c.financeDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to build account use case: %w", err)
	}

	useCase := financeUseCase.NewAccountUseCase(
		c.RemoteClient(), encryptor, rest.cache, rest.metrics, c.Logger(),
	)
	return financeUseCase.NewAccountUseCaseWithMetrics(useCase, rest.metrics), nil
}

func (c *Container) initTransactionUseCase() (financeUseCase.TransactionUseCase, error) {
	encryptor, rest, err := c.financeDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction use case: %w", err)
	}

	useCase := financeUseCase.NewTransactionUseCase(
		c.RemoteClient(), c.RemoteClient(), encryptor, rest.cache, rest.metrics, c.Logger(),
	)
	return financeUseCase.NewTransactionUseCaseWithMetrics(useCase, rest.metrics), nil
}

func (c *Container) initPoolUseCase() (financeUseCase.PoolUseCase, error) {
	encryptor, rest, err := c.financeDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to build pool use case: %w", err)
	}

	useCase := financeUseCase.NewPoolUseCase(
		c.RemoteClient(), encryptor, rest.cache, rest.metrics, c.Logger(),
	)
	return financeUseCase.NewPoolUseCaseWithMetrics(useCase, rest.metrics), nil
}

func (c *Container) initAllocationUseCase() (financeUseCase.AllocationUseCase, error) {
	encryptor, rest, err := c.financeDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to build allocation use case: %w", err)
	}

	useCase := financeUseCase.NewAllocationUseCase(
		c.RemoteClient(), c.RemoteClient(), encryptor, rest.cache, rest.metrics, c.Logger(),
	)
	return financeUseCase.NewAllocationUseCaseWithMetrics(useCase, rest.metrics), nil
}

// initHandlers assembles all route handlers for the API server.
func (c *Container) initHandlers() (appHTTP.Handlers, error) {
	keyHandler, err := c.initKeyHandler()
	if err != nil {
		return appHTTP.Handlers{}, err
	}

	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return appHTTP.Handlers{}, err
	}

	transactionUseCase, err := c.TransactionUseCase()
	if err != nil {
		return appHTTP.Handlers{}, err
	}

	poolUseCase, err := c.PoolUseCase()
	if err != nil {
		return appHTTP.Handlers{}, err
	}

	allocationUseCase, err := c.AllocationUseCase()
	if err != nil {
		return appHTTP.Handlers{}, err
	}

	logger := c.Logger()
	return appHTTP.Handlers{
		Key:         keyHandler,
		Account:     financeHTTP.NewAccountHandler(accountUseCase, logger),
		Transaction: financeHTTP.NewTransactionHandler(transactionUseCase, logger),
		Pool:        financeHTTP.NewPoolHandler(poolUseCase, logger),
		Allocation:  financeHTTP.NewAllocationHandler(allocationUseCase, logger),
	}, nil
}
