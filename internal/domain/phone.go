package domain

import (
	"errors"
	"strings"
)

// ErrInvalidPhone phone number cannot be normalized to a dialable form
var ErrInvalidPhone = errors.New("domain: invalid phone number")

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// NormalizePhone converts a free-form phone string to a leading plus and
// digits-only form, e.g. "8 (912) 345-67-89" becomes "+79123456789".
// An 11-digit number with a leading 8 is rewritten to the +7 country code.
// Returns ErrInvalidPhone when the digit count is outside 10..15.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", ErrInvalidPhone
	}

	// Локальный формат 8XXXXXXXXXX приводим к международному
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}

	return "+" + digits, nil
}
