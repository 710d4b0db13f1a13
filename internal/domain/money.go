package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money is a monetary amount with exactly two fraction digits, never zero.
// Sign encodes direction: positive amounts are income, negative are expenses.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(moneyScale)

	if rounded.IsZero() {
		return Money{}, newValidationError(KindInvalidAmount, "amount cannot be zero")
	}

	return Money{amount: rounded}, nil
}

func ParseMoney(value string) (Money, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Money{}, newValidationError(KindInvalidAmount, "amount is required")
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, newValidationError(KindInvalidAmount, "invalid amount format: %s", value)
	}

	return NewMoney(amount)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports the uninitialized Money zero value; a constructed Money is
// never zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg()}
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
