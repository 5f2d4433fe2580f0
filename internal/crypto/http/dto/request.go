// Package dto provides data transfer objects for master key HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/finvault/internal/validation"
)

// ImportKeyRequest contains a master key in one of its textual forms.
// Exactly one of the two fields must be set.
type ImportKeyRequest struct {
	ExportedKey    string `json:"exported_key"`
	RecoveryPhrase string `json:"recovery_phrase"`
}

// Validate checks if the import key request is valid.
func (r *ImportKeyRequest) Validate() error {
	if (r.ExportedKey == "") == (r.RecoveryPhrase == "") {
		return validation.NewError(
			"validation_import_key",
			"exactly one of exported_key and recovery_phrase must be set",
		)
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.ExportedKey, customValidation.Base64),
		validation.Field(&r.RecoveryPhrase, customValidation.RecoveryPhrase),
	)
}
