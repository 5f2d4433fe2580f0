// Package service implements the per-entity encryptors: the mapping between
// each entity's fixed-shape sensitive payload and its ciphertext envelope, and
// the reconstruction of full decrypted entities from raw server rows.
package service

import (
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	cryptoService "github.com/allisson/finvault/internal/crypto/service"
	financeDomain "github.com/allisson/finvault/internal/finance/domain"
)

// KeyProvider supplies the cached device master key.
// Satisfied by *keystore.Store.
type KeyProvider interface {
	// GetCached returns the cached master key or ErrKeyUnavailable.
	GetCached() (*cryptoDomain.MasterKey, error)
}

// EntityEncryptor encrypts and decrypts the sensitive payloads of the four
// entity kinds. One encryptor instance serves all kinds; the per-kind methods
// keep the payload shapes closed so a forgotten field fails to compile rather
// than silently dropping data.
type EntityEncryptor struct {
	codec *cryptoService.EnvelopeCodec
	keys  KeyProvider
}

// NewEntityEncryptor creates an entity encryptor over the given codec and key provider.
func NewEntityEncryptor(codec *cryptoService.EnvelopeCodec, keys KeyProvider) *EntityEncryptor {
	return &EntityEncryptor{codec: codec, keys: keys}
}

// key fetches the cached master key; encryption must never proceed without it.
func (e *EntityEncryptor) key() ([]byte, error) {
	masterKey, err := e.keys.GetCached()
	if err != nil {
		return nil, err
	}
	return masterKey.Key, nil
}

// EncryptAccount packages an account's sensitive fields and seals them.
func (e *EntityEncryptor) EncryptAccount(
	name string,
	balance decimal.Decimal,
) (*cryptoDomain.EncryptedEnvelope, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}
	return e.codec.Encrypt(financeDomain.AccountSecrets{Name: name, Balance: balance}, key)
}

// DecryptAccount opens an account envelope into its sensitive payload.
func (e *EntityEncryptor) DecryptAccount(
	env *cryptoDomain.EncryptedEnvelope,
) (*financeDomain.AccountSecrets, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}

	var secrets financeDomain.AccountSecrets
	if err := e.codec.Decrypt(env, key, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// DecryptAccountRow reconstructs a full decrypted account from a raw server
// row. A row without an envelope has no recoverable sensitive fields and is a
// decryption failure, never a zeroed default.
func (e *EntityEncryptor) DecryptAccountRow(
	row *financeDomain.RawAccountRow,
) (*financeDomain.Account, error) {
	if row.EncryptedData == nil {
		return nil, cryptoDomain.ErrMissingEnvelope
	}

	secrets, err := e.DecryptAccount(row.EncryptedData)
	if err != nil {
		return nil, err
	}

	return &financeDomain.Account{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		Currency:         row.Currency,
		Type:             row.Type,
		Archived:         row.Archived,
		ExcludedFromFree: row.ExcludedFromFree,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		Name:             secrets.Name,
		Balance:          secrets.Balance,
	}, nil
}

// EncryptTransaction packages a transaction's sensitive fields and seals them.
func (e *EntityEncryptor) EncryptTransaction(
	amount decimal.Decimal,
	category string,
	description string,
) (*cryptoDomain.EncryptedEnvelope, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}
	return e.codec.Encrypt(financeDomain.TransactionSecrets{
		Amount:      amount,
		Category:    category,
		Description: description,
	}, key)
}

// DecryptTransaction opens a transaction envelope into its sensitive payload.
func (e *EntityEncryptor) DecryptTransaction(
	env *cryptoDomain.EncryptedEnvelope,
) (*financeDomain.TransactionSecrets, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}

	var secrets financeDomain.TransactionSecrets
	if err := e.codec.Decrypt(env, key, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// DecryptTransactionRow reconstructs a full decrypted transaction from a raw
// server row.
func (e *EntityEncryptor) DecryptTransactionRow(
	row *financeDomain.RawTransactionRow,
) (*financeDomain.Transaction, error) {
	if row.EncryptedData == nil {
		return nil, cryptoDomain.ErrMissingEnvelope
	}

	secrets, err := e.DecryptTransaction(row.EncryptedData)
	if err != nil {
		return nil, err
	}

	return &financeDomain.Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		OwnerID:     row.OwnerID,
		Type:        row.Type,
		Currency:    row.Currency,
		OccurredAt:  row.OccurredAt,
		CreatedAt:   row.CreatedAt,
		Amount:      secrets.Amount,
		Category:    secrets.Category,
		Description: secrets.Description,
	}, nil
}

// EncryptPool packages a pool's sensitive fields and seals them.
func (e *EntityEncryptor) EncryptPool(name string) (*cryptoDomain.EncryptedEnvelope, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}
	return e.codec.Encrypt(financeDomain.PoolSecrets{Name: name}, key)
}

// DecryptPool opens a pool envelope into its sensitive payload.
func (e *EntityEncryptor) DecryptPool(
	env *cryptoDomain.EncryptedEnvelope,
) (*financeDomain.PoolSecrets, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}

	var secrets financeDomain.PoolSecrets
	if err := e.codec.Decrypt(env, key, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// DecryptPoolRow reconstructs a full decrypted pool from a raw server row.
// The sentinel free pool never carries an envelope: its well-known name is
// synthesized without decryption.
func (e *EntityEncryptor) DecryptPoolRow(
	row *financeDomain.RawPoolRow,
) (*financeDomain.Pool, error) {
	pool := &financeDomain.Pool{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Archived:  row.Archived,
		IsFree:    row.IsFree,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.IsFree {
		pool.Name = financeDomain.FreePoolName
		return pool, nil
	}

	if row.EncryptedData == nil {
		return nil, cryptoDomain.ErrMissingEnvelope
	}

	secrets, err := e.DecryptPool(row.EncryptedData)
	if err != nil {
		return nil, err
	}

	pool.Name = secrets.Name
	return pool, nil
}

// EncryptAllocation packages an allocation's sensitive fields and seals them.
func (e *EntityEncryptor) EncryptAllocation(
	amount decimal.Decimal,
) (*cryptoDomain.EncryptedEnvelope, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}
	return e.codec.Encrypt(financeDomain.AllocationSecrets{Amount: amount}, key)
}

// DecryptAllocation opens an allocation envelope into its sensitive payload.
func (e *EntityEncryptor) DecryptAllocation(
	env *cryptoDomain.EncryptedEnvelope,
) (*financeDomain.AllocationSecrets, error) {
	key, err := e.key()
	if err != nil {
		return nil, err
	}

	var secrets financeDomain.AllocationSecrets
	if err := e.codec.Decrypt(env, key, &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

// DecryptAllocationRow reconstructs a full decrypted allocation from a raw
// server row.
func (e *EntityEncryptor) DecryptAllocationRow(
	row *financeDomain.RawAllocationRow,
) (*financeDomain.Allocation, error) {
	if row.EncryptedData == nil {
		return nil, cryptoDomain.ErrMissingEnvelope
	}

	secrets, err := e.DecryptAllocation(row.EncryptedData)
	if err != nil {
		return nil, err
	}

	return &financeDomain.Allocation{
		ID:        row.ID,
		PoolID:    row.PoolID,
		AccountID: row.AccountID,
		OwnerID:   row.OwnerID,
		Currency:  row.Currency,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Amount:    secrets.Amount,
	}, nil
}
