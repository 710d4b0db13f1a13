package domain

import (
	"time"

	"github.com/google/uuid"
)

const maxTransactionAgeYears = 10

// Transaction is a single imported bank transaction. Immutable after
// construction; created only by the import worker, never updated.
type Transaction struct {
	ID            string
	Iban          Iban
	Date          time.Time
	Currency      string
	Category      Category
	Amount        Money
	ImportBatchID string
}

func NewTransaction(iban Iban, date time.Time, currency string, category Category, amount Money, importBatchID string) (Transaction, error) {
	if iban.IsZero() {
		return Transaction{}, newValidationError(KindInvalidTransaction, "IBAN is required")
	}

	if date.IsZero() {
		return Transaction{}, newValidationError(KindInvalidTransaction, "transaction date is required")
	}

	if err := ValidateTransactionDate(date); err != nil {
		return Transaction{}, err
	}

	if currency == "" {
		return Transaction{}, newValidationError(KindInvalidTransaction, "currency is required")
	}

	if category == "" {
		return Transaction{}, newValidationError(KindInvalidTransaction, "category is required")
	}

	if amount.IsZero() {
		return Transaction{}, newValidationError(KindInvalidTransaction, "amount is required")
	}

	if importBatchID == "" {
		return Transaction{}, newValidationError(KindInvalidTransaction, "import batch ID is required")
	}

	return Transaction{
		ID:            uuid.New().String(),
		Iban:          iban,
		Date:          date,
		Currency:      currency,
		Category:      category,
		Amount:        amount,
		ImportBatchID: importBatchID,
	}, nil
}

// ValidateTransactionDate rejects dates in the future and dates older than
// ten years, with distinct messages for each.
func ValidateTransactionDate(date time.Time) error {
	today := truncateToDay(time.Now())
	day := truncateToDay(date)

	if day.After(today) {
		return newValidationError(KindInvalidTransaction,
			"date cannot be in the future: %s", day.Format("2006-01-02"))
	}

	oldestAllowed := today.AddDate(-maxTransactionAgeYears, 0, 0)
	if day.Before(oldestAllowed) {
		return newValidationError(KindInvalidTransaction,
			"date cannot be older than %d years: %s", maxTransactionAgeYears, day.Format("2006-01-02"))
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

func (t Transaction) YearMonth() YearMonth {
	return YearMonthOf(t.Date)
}
