package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

const (
	ibanMinLength = 15
	ibanMaxLength = 34
)

// Iban is a validated International Bank Account Number (ISO 13616).
// Construction is the only validation point; the value is normalized to
// uppercase with all whitespace removed.
type Iban struct {
	value string
}

func NewIban(value string) (Iban, error) {
	normalized := normalizeIban(value)

	if normalized == "" {
		return Iban{}, newValidationError(KindInvalidIban, "IBAN cannot be blank")
	}

	if len(normalized) < ibanMinLength || len(normalized) > ibanMaxLength {
		return Iban{}, newValidationError(KindInvalidIban,
			"IBAN must be between %d and %d characters: %s", ibanMinLength, ibanMaxLength, normalized)
	}

	if !ibanPattern.MatchString(normalized) {
		return Iban{}, newValidationError(KindInvalidIban, "invalid IBAN format: %s", normalized)
	}

	if !validIbanChecksum(normalized) {
		return Iban{}, newValidationError(KindInvalidIban, "invalid IBAN checksum: %s", normalized)
	}

	return Iban{value: normalized}, nil
}

func IsValidIban(value string) bool {
	_, err := NewIban(value)
	return err == nil
}

func normalizeIban(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// validIbanChecksum applies the ISO 7064 mod-97 check: move the first four
// characters to the end, map letters to 10..35, and reduce digit by digit.
func validIbanChecksum(iban string) bool {
	rearranged := iban[4:] + iban[:4]

	remainder := 0
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			numeric := int(r-'A') + 10
			remainder = (remainder*10 + numeric/10) % 97
			remainder = (remainder*10 + numeric%10) % 97
		} else {
			remainder = (remainder*10 + int(r-'0')) % 97
		}
	}

	return remainder == 1
}

func (i Iban) String() string {
	return i.value
}

func (i Iban) IsZero() bool {
	return i.value == ""
}
