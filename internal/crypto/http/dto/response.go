package dto

import (
	"time"

	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
)

// KeyStatusResponse describes the installed master key. It never carries key
// material.
type KeyStatusResponse struct {
	Installed bool       `json:"installed"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// MapKeyStatusToResponse converts a key status to an API response.
func MapKeyStatusToResponse(status *cryptoUseCase.KeyStatus) KeyStatusResponse {
	out := KeyStatusResponse{Installed: status.Installed}
	if !status.CreatedAt.IsZero() {
		createdAt := status.CreatedAt
		out.CreatedAt = &createdAt
	}
	if !status.LastUsed.IsZero() {
		lastUsed := status.LastUsed
		out.LastUsed = &lastUsed
	}
	return out
}

// ExportKeyResponse carries the master key in both textual forms. This
// surface is loopback-only and is only produced on an explicit export call.
type ExportKeyResponse struct {
	ExportedKey    string `json:"exported_key"`
	RecoveryPhrase string `json:"recovery_phrase"`
}

// MapExportedKeyToResponse converts an exported key to an API response.
func MapExportedKeyToResponse(exported *cryptoUseCase.ExportedKey) ExportKeyResponse {
	return ExportKeyResponse{
		ExportedKey:    exported.Exported,
		RecoveryPhrase: exported.Phrase,
	}
}
