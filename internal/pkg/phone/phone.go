// Package phone normalizes Ivorian phone and Wave mobile-money numbers
// before they are stored or sent to the payment provider.
package phone

import (
	"errors"
	"strings"
)

// CountryCode is the Côte d'Ivoire calling code
const CountryCode = "225"

var ErrInvalidNumber = errors.New("invalid phone number")

// Normalize converts a raw phone string into the canonical format.
//
// Rules:
//   - all non-digit characters are stripped first
//   - exactly 10 local digits  -> "+225 XXXXXXXXXX"
//   - 13 digits with "225" prefix -> "+225XXXXXXXXXX" (passthrough)
//   - anything else            -> ErrInvalidNumber; ambiguous lengths are
//     rejected rather than guessed
func Normalize(raw string) (string, error) {
	digits := stripNonDigits(raw)

	switch {
	case len(digits) == 10:
		return "+" + CountryCode + " " + digits, nil
	case len(digits) == 13 && strings.HasPrefix(digits, CountryCode):
		return "+" + digits, nil
	default:
		return "", ErrInvalidNumber
	}
}

// IsValid reports whether raw normalizes without error
func IsValid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
