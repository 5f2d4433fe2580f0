package usecase

import (
	"context"
	"errors"
	"log/slog"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	apperrors "github.com/allisson/finvault/internal/errors"
)

// keyUseCase implements the KeyUseCase interface.
type keyUseCase struct {
	store  KeyStore
	phrase PhraseCodec
	logger *slog.Logger
}

// Status reports whether a master key is installed on this device.
func (k *keyUseCase) Status(ctx context.Context) (*KeyStatus, error) {
	key, err := k.store.Get()
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrKeyUnavailable) {
			return &KeyStatus{Installed: false}, nil
		}
		return nil, err
	}

	return &KeyStatus{
		Installed: true,
		CreatedAt: key.CreatedAt,
		LastUsed:  key.LastUsed,
	}, nil
}

// Initialize generates and installs a fresh master key.
func (k *keyUseCase) Initialize(ctx context.Context) (*KeyStatus, error) {
	status, err := k.Status(ctx)
	if err != nil {
		return nil, err
	}
	if status.Installed {
		return nil, apperrors.Wrap(apperrors.ErrConflict, "a master key is already installed")
	}

	key, err := k.store.Initialize()
	if err != nil {
		return nil, err
	}

	k.logger.Info("master key initialized")
	return &KeyStatus{
		Installed: true,
		CreatedAt: key.CreatedAt,
		LastUsed:  key.LastUsed,
	}, nil
}

// Export returns the installed key's exported string and recovery phrase.
func (k *keyUseCase) Export(ctx context.Context) (*ExportedKey, error) {
	key, err := k.store.Get()
	if err != nil {
		return nil, err
	}

	exported := k.store.Export(key)
	return &ExportedKey{
		Exported: exported,
		Phrase:   k.phrase.Encode(exported),
	}, nil
}

// ImportExported validates and installs a key from its exported string.
func (k *keyUseCase) ImportExported(ctx context.Context, exported string) (*KeyStatus, error) {
	key, err := k.store.Import(exported)
	if err != nil {
		return nil, err
	}

	k.logger.Info("master key imported")
	return &KeyStatus{
		Installed: true,
		CreatedAt: key.CreatedAt,
		LastUsed:  key.LastUsed,
	}, nil
}

// ImportPhrase validates and installs a key from its recovery phrase.
func (k *keyUseCase) ImportPhrase(ctx context.Context, phrase string) (*KeyStatus, error) {
	exported, err := k.phrase.Decode(phrase)
	if err != nil {
		return nil, err
	}
	return k.ImportExported(ctx, exported)
}

// Delete removes the master key from durable storage and memory.
func (k *keyUseCase) Delete(ctx context.Context) error {
	if err := k.store.Delete(); err != nil {
		return err
	}

	k.logger.Info("master key deleted")
	return nil
}

// Lock drops the cached key material without touching durable storage.
func (k *keyUseCase) Lock(ctx context.Context) {
	k.store.InvalidateCache()
	k.logger.Info("master key cache locked")
}

// NewKeyUseCase creates a new key use case instance.
func NewKeyUseCase(store KeyStore, phrase PhraseCodec, logger *slog.Logger) KeyUseCase {
	return &keyUseCase{
		store:  store,
		phrase: phrase,
		logger: logger,
	}
}
