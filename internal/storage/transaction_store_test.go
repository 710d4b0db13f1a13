package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

func mustTransaction(t *testing.T, iban string, daysAgo int, category domain.Category, amount string) domain.Transaction {
	t.Helper()

	parsedIban, err := domain.NewIban(iban)
	require.NoError(t, err)

	money, err := domain.ParseMoney(amount)
	require.NoError(t, err)

	tx, err := domain.NewTransaction(
		parsedIban,
		time.Now().AddDate(0, 0, -daysAgo),
		"PLN",
		category,
		money,
		"batch-1",
	)
	require.NoError(t, err)
	return tx
}

func seedStore(t *testing.T) *TransactionStore {
	t.Helper()
	store := NewTransactionStore()
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, []domain.Transaction{
		mustTransaction(t, "PL61109010140000071219812874", 1, domain.CategoryFood, "-10.00"),
		mustTransaction(t, "PL61109010140000071219812874", 2, domain.CategoryTransport, "-20.00"),
		mustTransaction(t, "DE89370400440532013000", 3, domain.CategoryFood, "-30.00"),
		mustTransaction(t, "DE89370400440532013000", 4, domain.CategorySalary, "5000.00"),
	}))
	return store
}

func TestTransactionStore_FindByFilters_All(t *testing.T) {
	store := seedStore(t)

	txs, err := store.FindByFilters(context.Background(), domain.TransactionFilter{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, txs, 4)

	// Newest first.
	assert.Equal(t, "-10.00", txs[0].Amount.String())
	assert.Equal(t, "5000.00", txs[3].Amount.String())
}

func TestTransactionStore_FindByFilters_Iban(t *testing.T) {
	store := seedStore(t)

	txs, err := store.FindByFilters(context.Background(), domain.TransactionFilter{
		Iban: "DE89370400440532013000",
		Page: 0,
		Size: 10,
	})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTransactionStore_FindByFilters_Category(t *testing.T) {
	store := seedStore(t)
	food := domain.CategoryFood

	txs, err := store.FindByFilters(context.Background(), domain.TransactionFilter{
		Category: &food,
		Page:     0,
		Size:     10,
	})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTransactionStore_FindByFilters_DateRange(t *testing.T) {
	store := seedStore(t)
	from := time.Now().AddDate(0, 0, -2).Add(-time.Hour)

	txs, err := store.FindByFilters(context.Background(), domain.TransactionFilter{
		From: &from,
		Page: 0,
		Size: 10,
	})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTransactionStore_FindByFilters_Pagination(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()

	first, err := store.FindByFilters(ctx, domain.TransactionFilter{Page: 0, Size: 3})
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := store.FindByFilters(ctx, domain.TransactionFilter{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Len(t, second, 1)

	third, err := store.FindByFilters(ctx, domain.TransactionFilter{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestTransactionStore_CountByFilters(t *testing.T) {
	store := seedStore(t)

	count, err := store.CountByFilters(context.Background(), domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	count, err = store.CountByFilters(context.Background(), domain.TransactionFilter{
		Iban: "PL61109010140000071219812874",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransactionStore_FindByYearMonth(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	date := time.Now().AddDate(0, -1, 0)
	tx := mustTransaction(t, "PL61109010140000071219812874", 0, domain.CategoryFood, "-5.00")
	tx.Date = date
	require.NoError(t, store.Save(ctx, tx))

	matched, err := store.FindByYearMonth(ctx, date.Year(), date.Month())
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	other := date.AddDate(0, -1, 0)
	matched, err = store.FindByYearMonth(ctx, other.Year(), other.Month())
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestTransactionStore_FindByYear(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	tx := mustTransaction(t, "PL61109010140000071219812874", 0, domain.CategoryFood, "-5.00")
	tx.Date = time.Now().AddDate(0, -1, 0)
	require.NoError(t, store.Save(ctx, tx))

	matched, err := store.FindByYear(ctx, tx.Date.Year())
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	matched, err = store.FindByYear(ctx, 1999)
	require.NoError(t, err)
	assert.Empty(t, matched)
}
