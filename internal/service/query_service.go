package service

import (
	"context"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// QueryService serves paginated transaction reads.
type QueryService struct {
	transactions domain.TransactionRepository
	logger       *logger.Logger
}

func NewQueryService(transactions domain.TransactionRepository, log *logger.Logger) *QueryService {
	return &QueryService{
		transactions: transactions,
		logger:       log,
	}
}

// GetTransactions returns one page of transactions matching the filter.
// Page is clamped to >= 0 and size to 1..100 (default 20).
func (s *QueryService) GetTransactions(ctx context.Context, filter domain.TransactionFilter) (TransactionPage, error) {
	filter = clampFilter(filter)

	s.logger.Debug(ctx, "Querying transactions",
		"iban", filter.Iban,
		"page", filter.Page,
		"size", filter.Size,
	)

	transactions, err := s.transactions.FindByFilters(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "Failed to query transactions", "error", err)
		return TransactionPage{}, err
	}

	total, err := s.transactions.CountByFilters(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "Failed to count transactions", "error", err)
		return TransactionPage{}, err
	}

	views := make([]TransactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, transactionViewFrom(tx))
	}

	return newTransactionPage(views, filter.Page, filter.Size, total), nil
}

func clampFilter(filter domain.TransactionFilter) domain.TransactionFilter {
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Size <= 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}
	return filter
}
