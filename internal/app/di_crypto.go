package app

import (
	"fmt"

	cryptoHTTP "github.com/allisson/finvault/internal/crypto/http"
	cryptoService "github.com/allisson/finvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
)

// EnvelopeCodec returns the AES-GCM envelope codec.
func (c *Container) EnvelopeCodec() *cryptoService.EnvelopeCodec {
	c.envelopeCodecInit.Do(func() {
		c.envelopeCodec = cryptoService.NewEnvelopeCodec()
	})
	return c.envelopeCodec
}

// RecoveryPhraseCodec returns the recovery phrase codec.
func (c *Container) RecoveryPhraseCodec() *cryptoService.RecoveryPhraseCodec {
	c.phraseCodecInit.Do(func() {
		c.phraseCodec = cryptoService.NewRecoveryPhraseCodec()
	})
	return c.phraseCodec
}

// KeyUseCase returns the master key lifecycle use case.
func (c *Container) KeyUseCase() (cryptoUseCase.KeyUseCase, error) {
	var err error
	c.keyUseCaseInit.Do(func() {
		var store cryptoUseCase.KeyStore
		store, err = c.KeyStore()
		if err != nil {
			c.initErrors["keyUseCase"] = fmt.Errorf("failed to get key store for key use case: %w", err)
			return
		}
		c.keyUseCase = cryptoUseCase.NewKeyUseCase(store, c.RecoveryPhraseCodec(), c.Logger())
	})
	if err != nil {
		return nil, c.initErrors["keyUseCase"]
	}
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyUseCase, nil
}

// initKeyHandler creates the key lifecycle HTTP handler.
func (c *Container) initKeyHandler() (*cryptoHTTP.KeyHandler, error) {
	keyUseCase, err := c.KeyUseCase()
	if err != nil {
		return nil, err
	}
	return cryptoHTTP.NewKeyHandler(keyUseCase, c.Logger()), nil
}
