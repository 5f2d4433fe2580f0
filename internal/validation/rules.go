// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/finvault/internal/errors"
)

var (
	// currencyRegex matches ISO 4217 alphabetic currency codes.
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

	// phraseGroupRegex matches one dash-separated recovery phrase group.
	phraseGroupRegex = regexp.MustCompile(`^[A-Za-z0-9+/=]{1,4}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// CurrencyCode validates ISO 4217 alphabetic currency codes.
var CurrencyCode = validation.NewStringRuleWithError(
	func(s string) bool {
		return currencyRegex.MatchString(s)
	},
	validation.NewError("validation_currency_code", "must be a three-letter ISO 4217 code"),
)

// RecoveryPhrase validates the dash-grouped shape of a recovery phrase.
// Only the shape is checked here; the key material itself is validated on
// import.
var RecoveryPhrase = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_recovery_phrase_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	for _, group := range strings.Split(strings.TrimSpace(s), "-") {
		if !phraseGroupRegex.MatchString(group) {
			return validation.NewError(
				"validation_recovery_phrase",
				"must be dash-separated groups of up to four base64 characters",
			)
		}
	}
	return nil
})

// DecimalString validates that a string parses as an exact decimal number.
var DecimalString = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_decimal_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return validation.NewError("validation_decimal", "must be a decimal number")
	}
	return nil
})

// PositiveDecimalString validates that a string parses as a decimal greater
// than zero.
var PositiveDecimalString = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_decimal_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_decimal", "must be a decimal number")
	}
	if !d.IsPositive() {
		return validation.NewError("validation_decimal_positive", "must be greater than zero")
	}
	return nil
})
