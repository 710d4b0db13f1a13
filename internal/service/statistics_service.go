package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/banking-tools/transaction-aggregator/internal/cache"
	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

// StatisticsService computes aggregate statistics over persisted
// transactions. Results are cached per period; the import worker evicts
// entries for periods it touches.
type StatisticsService struct {
	transactions domain.TransactionRepository
	cache        *cache.StatisticsCache
	logger       *logger.Logger
}

func NewStatisticsService(transactions domain.TransactionRepository, statsCache *cache.StatisticsCache, log *logger.Logger) *StatisticsService {
	return &StatisticsService{
		transactions: transactions,
		cache:        statsCache,
		logger:       log,
	}
}

// GetStatisticsByCategory groups one month's transactions by category,
// sorted by category name.
func (s *StatisticsService) GetStatisticsByCategory(ctx context.Context, month domain.YearMonth) (CategoryStatistics, error) {
	key := month.String()

	if cached, ok := s.cache.Get(cache.CategoryStatsCache, key); ok {
		if stats, ok := cached.(CategoryStatistics); ok {
			return stats, nil
		}
	}

	transactions, err := s.transactions.FindByYearMonth(ctx, month.Year, month.Month)
	if err != nil {
		return CategoryStatistics{}, err
	}

	grouped := make(map[domain.Category][]domain.Transaction)
	for _, tx := range transactions {
		grouped[tx.Category] = append(grouped[tx.Category], tx)
	}

	summaries := make([]CategorySummary, 0, len(grouped))
	for category, group := range grouped {
		summaries = append(summaries, CategorySummary{
			Category:         category,
			DisplayName:      category.DisplayName(),
			TotalAmount:      sumAmounts(group),
			TransactionCount: len(group),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})

	stats := CategoryStatistics{Month: key, Categories: summaries}
	s.cache.Put(cache.CategoryStatsCache, key, stats)

	return stats, nil
}

// GetStatisticsByIban groups one month's transactions by account, sorted by
// IBAN.
func (s *StatisticsService) GetStatisticsByIban(ctx context.Context, month domain.YearMonth) (IbanStatistics, error) {
	key := month.String()

	if cached, ok := s.cache.Get(cache.IbanStatsCache, key); ok {
		if stats, ok := cached.(IbanStatistics); ok {
			return stats, nil
		}
	}

	transactions, err := s.transactions.FindByYearMonth(ctx, month.Year, month.Month)
	if err != nil {
		return IbanStatistics{}, err
	}

	grouped := make(map[string][]domain.Transaction)
	for _, tx := range transactions {
		grouped[tx.Iban.String()] = append(grouped[tx.Iban.String()], tx)
	}

	summaries := make([]IbanSummary, 0, len(grouped))
	for iban, group := range grouped {
		income, expense := sumByDirection(group)
		summaries = append(summaries, IbanSummary{
			Iban:         iban,
			TotalIncome:  income,
			TotalExpense: expense,
			Balance:      income.Add(expense),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Iban < summaries[j].Iban
	})

	stats := IbanStatistics{Month: key, Ibans: summaries}
	s.cache.Put(cache.IbanStatsCache, key, stats)

	return stats, nil
}

// GetStatisticsByMonth groups one year's transactions by calendar month in
// chronological order.
func (s *StatisticsService) GetStatisticsByMonth(ctx context.Context, year int) (MonthlyStatistics, error) {
	key := strconv.Itoa(year)

	if cached, ok := s.cache.Get(cache.MonthlyStatsCache, key); ok {
		if stats, ok := cached.(MonthlyStatistics); ok {
			return stats, nil
		}
	}

	transactions, err := s.transactions.FindByYear(ctx, year)
	if err != nil {
		return MonthlyStatistics{}, err
	}

	grouped := make(map[domain.YearMonth][]domain.Transaction)
	for _, tx := range transactions {
		grouped[tx.YearMonth()] = append(grouped[tx.YearMonth()], tx)
	}

	months := make([]domain.YearMonth, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	summaries := make([]MonthlySummary, 0, len(months))
	for _, month := range months {
		income, expense := sumByDirection(grouped[month])
		summaries = append(summaries, MonthlySummary{
			Month:        month.String(),
			TotalIncome:  income,
			TotalExpense: expense,
			Balance:      income.Add(expense),
		})
	}

	stats := MonthlyStatistics{Year: year, Months: summaries}
	s.cache.Put(cache.MonthlyStatsCache, key, stats)

	return stats, nil
}

func sumAmounts(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount.Amount())
	}
	return total
}

func sumByDirection(transactions []domain.Transaction) (income, expense decimal.Decimal) {
	income = decimal.Zero
	expense = decimal.Zero
	for _, tx := range transactions {
		if tx.IsIncome() {
			income = income.Add(tx.Amount.Amount())
		} else {
			expense = expense.Add(tx.Amount.Amount())
		}
	}
	return income, expense
}
