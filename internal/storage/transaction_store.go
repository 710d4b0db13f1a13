package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

// TransactionStore is the in-memory transaction repository.
type TransactionStore struct {
	transactions []domain.Transaction
	mu           sync.RWMutex
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: []domain.Transaction{},
	}
}

func (s *TransactionStore) Save(ctx context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *TransactionStore) SaveAll(ctx context.Context, txs []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, txs...)
	return nil
}

// FindByFilters returns one page of matches, newest first.
func (s *TransactionStore) FindByFilters(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	matched := s.filterLocked(filter)
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID < matched[j].ID
	})

	start := filter.Page * filter.Size
	if start >= len(matched) {
		return []domain.Transaction{}, nil
	}

	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

func (s *TransactionStore) CountByFilters(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.filterLocked(filter))), nil
}

func (s *TransactionStore) filterLocked(filter domain.TransactionFilter) []domain.Transaction {
	var matched []domain.Transaction
	for _, tx := range s.transactions {
		if filter.Iban != "" && tx.Iban.String() != filter.Iban {
			continue
		}
		if filter.Category != nil && tx.Category != *filter.Category {
			continue
		}
		if filter.From != nil && tx.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

func (s *TransactionStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Transaction
	for _, tx := range s.transactions {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched, nil
}

func (s *TransactionStore) FindByYearMonth(ctx context.Context, year int, month time.Month) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Transaction
	for _, tx := range s.transactions {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

func (s *TransactionStore) FindByYear(ctx context.Context, year int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Transaction
	for _, tx := range s.transactions {
		if tx.Date.Year() == year {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}
