package service

import (
	"strings"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

const (
	// phraseGroupSize is the number of characters per recovery phrase group.
	phraseGroupSize = 4

	// phraseSeparator joins the groups for human transcription.
	phraseSeparator = "-"
)

// RecoveryPhraseCodec is the reversible textual encoding of an exported master
// key for human backup and restore.
//
// The phrase is the base64 key export split into fixed-size groups joined with
// a separator, purely for readability. It is not a checksummed mnemonic: a
// transcription typo yields either an import failure or a different
// valid-looking key. That weakness is accepted in exchange for simplicity.
type RecoveryPhraseCodec struct{}

// NewRecoveryPhraseCodec creates a new recovery phrase codec.
func NewRecoveryPhraseCodec() *RecoveryPhraseCodec {
	return &RecoveryPhraseCodec{}
}

// Encode partitions an exported key string into groups of four characters
// joined with "-", e.g. "YWJj-ZGVm-...".
func (c *RecoveryPhraseCodec) Encode(exported string) string {
	var b strings.Builder
	for i := 0; i < len(exported); i += phraseGroupSize {
		if i > 0 {
			b.WriteString(phraseSeparator)
		}
		end := i + phraseGroupSize
		if end > len(exported) {
			end = len(exported)
		}
		b.WriteString(exported[i:end])
	}
	return b.String()
}

// Decode strips grouping and whitespace from a recovery phrase and returns
// the exported key string. Characters outside the standard base64 alphabet
// (including padding) are rejected with ErrInvalidKeyFormat before the result
// ever reaches the key store.
func (c *RecoveryPhraseCodec) Decode(phrase string) (string, error) {
	var b strings.Builder
	for _, r := range phrase {
		switch {
		case r == '-':
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		case isBase64Char(r):
			b.WriteRune(r)
		default:
			return "", cryptoDomain.ErrInvalidKeyFormat
		}
	}

	if b.Len() == 0 {
		return "", cryptoDomain.ErrInvalidKeyFormat
	}

	return b.String(), nil
}

// isBase64Char reports whether r belongs to the standard base64 alphabet.
func isBase64Char(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '/' || r == '=':
		return true
	}
	return false
}
