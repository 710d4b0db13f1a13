package domain

import (
	"context"
	"time"
)

// TransactionFilter narrows transaction queries. Nil fields mean no
// constraint on that dimension.
type TransactionFilter struct {
	Iban     string
	Category *Category
	From     *time.Time
	To       *time.Time
	Page     int
	Size     int
}

// BatchRepository persists import batches. SaveNew must atomically reject a
// second non-terminal batch for the same checksum.
type BatchRepository interface {
	// SaveNew inserts a PENDING batch; returns ErrDuplicateImport when a
	// non-terminal batch with the same checksum already exists.
	SaveNew(ctx context.Context, batch *ImportBatch) error
	Save(ctx context.Context, batch *ImportBatch) error
	FindByID(ctx context.Context, id string) (*ImportBatch, error)
	FindByChecksumAndStatus(ctx context.Context, checksum FileChecksum, status ImportStatus) (*ImportBatch, error)
	ExistsByChecksumAndStatusIn(ctx context.Context, checksum FileChecksum, statuses ...ImportStatus) (bool, error)
}

// TransactionRepository persists imported transactions.
type TransactionRepository interface {
	Save(ctx context.Context, tx Transaction) error
	SaveAll(ctx context.Context, txs []Transaction) error
	FindByFilters(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	CountByFilters(ctx context.Context, filter TransactionFilter) (int64, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error)
	FindByYearMonth(ctx context.Context, year int, month time.Month) ([]Transaction, error)
	FindByYear(ctx context.Context, year int) ([]Transaction, error)
}

// CacheInvalidator evicts cached statistics for reporting periods touched by
// an import.
type CacheInvalidator interface {
	EvictStatisticsCache(ctx context.Context, affectedMonths map[YearMonth]struct{})
	EvictAllStatisticsCache(ctx context.Context)
}
