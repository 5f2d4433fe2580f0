package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/finvault/internal/errors"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
)

func TestPoolUseCase_List(t *testing.T) {
	t.Run("synthesizes the free pool name without decryption", func(t *testing.T) {
		env := newTestEnv(t)
		freeRow := financeDomain.RawPoolRow{
			ID:      uuid.Must(uuid.NewV7()),
			OwnerID: uuid.Must(uuid.NewV7()),
			IsFree:  true,
		}
		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{
			freeRow,
			env.poolRow(t, "Vacation"),
		}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		pools, err := uc.List(context.Background())

		require.NoError(t, err)
		require.Len(t, pools, 2)
		assert.True(t, pools[0].IsFree)
		assert.Equal(t, financeDomain.FreePoolName, pools[0].Name)
		assert.Equal(t, "Vacation", pools[1].Name)
	})

	t.Run("the free pool survives even when the key is wrong for other rows", func(t *testing.T) {
		env := newTestEnv(t)
		corrupt := env.poolRow(t, "Corrupt")
		corrupt.EncryptedData.Ciphertext[0] ^= 0x01

		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{
			{ID: uuid.Must(uuid.NewV7()), IsFree: true},
			corrupt,
		}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		pools, err := uc.List(context.Background())

		require.NoError(t, err)
		require.Len(t, pools, 1)
		assert.True(t, pools[0].IsFree)
	})
}

func TestPoolUseCase_Create(t *testing.T) {
	env := newTestEnv(t)
	repo := &fakePoolRepo{}
	uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

	pool, err := uc.Create(context.Background(), CreatePoolInput{
		OwnerID: uuid.Must(uuid.NewV7()),
		Name:    "Vacation",
	})

	require.NoError(t, err)
	assert.Equal(t, "Vacation", pool.Name)
	require.Len(t, repo.created, 1)

	secrets, err := env.encryptor.DecryptPool(repo.created[0].EncryptedData)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", secrets.Name)
}

func TestPoolUseCase_Update(t *testing.T) {
	t.Run("renames a regular pool", func(t *testing.T) {
		env := newTestEnv(t)
		row := env.poolRow(t, "Old")
		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{row}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		pool, err := uc.Update(context.Background(), UpdatePoolInput{ID: row.ID, Name: "New"})

		require.NoError(t, err)
		assert.Equal(t, "New", pool.Name)
		require.Len(t, repo.updated, 1)

		secrets, err := env.encryptor.DecryptPool(repo.updated[0].EncryptedData)
		require.NoError(t, err)
		assert.Equal(t, "New", secrets.Name)
	})

	t.Run("the free pool cannot be renamed", func(t *testing.T) {
		env := newTestEnv(t)
		freeRow := financeDomain.RawPoolRow{ID: uuid.Must(uuid.NewV7()), IsFree: true}
		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{freeRow}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		_, err := uc.Update(context.Background(), UpdatePoolInput{ID: freeRow.ID, Name: "Nope"})

		require.Error(t, err)
		assert.ErrorIs(t, err, financeDomain.ErrFreePoolImmutable)
		assert.Empty(t, repo.updated)
	})
}

func TestPoolUseCase_Delete(t *testing.T) {
	t.Run("removes a regular pool and its cached allocations", func(t *testing.T) {
		env := newTestEnv(t)
		row := env.poolRow(t, "Vacation")
		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{row}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		err := uc.Delete(context.Background(), row.ID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{row.ID}, repo.deleted)
	})

	t.Run("the free pool cannot be deleted", func(t *testing.T) {
		env := newTestEnv(t)
		freeRow := financeDomain.RawPoolRow{ID: uuid.Must(uuid.NewV7()), IsFree: true}
		repo := &fakePoolRepo{rows: []financeDomain.RawPoolRow{freeRow}}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		err := uc.Delete(context.Background(), freeRow.ID)

		require.Error(t, err)
		assert.ErrorIs(t, err, financeDomain.ErrFreePoolImmutable)
		assert.Empty(t, repo.deleted)
	})

	t.Run("unknown pool fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		repo := &fakePoolRepo{}
		uc := NewPoolUseCase(repo, env.encryptor, env.cache, env.metrics, env.logger)

		err := uc.Delete(context.Background(), uuid.Must(uuid.NewV7()))

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
