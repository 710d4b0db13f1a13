package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/banking-tools/transaction-aggregator/internal/csv"
	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

// Dispatcher hands a task to the asynchronous worker pool.
type Dispatcher interface {
	Submit(ctx context.Context, task func(ctx context.Context))
}

// ImportService orchestrates the transaction import pipeline: dedup by
// content checksum, batch creation, async dispatch, and status reads.
type ImportService struct {
	batches      domain.BatchRepository
	transactions domain.TransactionRepository
	parser       *csv.Parser
	invalidator  domain.CacheInvalidator
	dispatcher   Dispatcher
	logger       *logger.Logger
	chunkSize    int
}

func NewImportService(
	batches domain.BatchRepository,
	transactions domain.TransactionRepository,
	parser *csv.Parser,
	invalidator domain.CacheInvalidator,
	dispatcher Dispatcher,
	log *logger.Logger,
	chunkSize int,
) *ImportService {
	if chunkSize <= 0 {
		chunkSize = 100
	}

	return &ImportService{
		batches:      batches,
		transactions: transactions,
		parser:       parser,
		invalidator:  invalidator,
		dispatcher:   dispatcher,
		logger:       log,
		chunkSize:    chunkSize,
	}
}

// ImportTransactions accepts an upload. It blocks only on the dedup check
// and the write of the PENDING batch record; parsing and row storage happen
// on the worker pool and are observed via status polling.
func (s *ImportService) ImportTransactions(ctx context.Context, filename string, content []byte) (ImportResult, error) {
	if filename == "" {
		return ImportResult{}, &domain.ValidationError{Kind: domain.KindInvalidInput, Message: "filename cannot be blank"}
	}

	checksum, err := domain.ComputeChecksum(content)
	if err != nil {
		return ImportResult{}, err
	}

	if result, found, err := s.checkForDuplicate(ctx, checksum); err != nil {
		return ImportResult{}, err
	} else if found {
		return result, nil
	}

	batchID := uuid.New().String()
	batch, err := domain.NewImportBatch(batchID, filename, checksum)
	if err != nil {
		return ImportResult{}, err
	}

	if err := s.batches.SaveNew(ctx, batch); err == domain.ErrDuplicateImport {
		// Lost the race against a concurrent upload of identical content.
		return s.resolveInProgress(ctx, checksum)
	} else if err != nil {
		s.logger.Error(ctx, "Failed to persist import batch",
			"batch_id", batchID,
			"error", err,
		)
		return ImportResult{}, err
	}

	s.logger.Info(ctx, "Import batch created",
		"batch_id", batchID,
		"filename", filename,
		"checksum", checksum.String(),
	)

	s.dispatcher.Submit(ctx, func(taskCtx context.Context) {
		s.ProcessImport(taskCtx, batchID, content)
	})

	return importStarted(batchID), nil
}

// GetStatus is a pure read of the persisted batch.
func (s *ImportService) GetStatus(ctx context.Context, importID string) (*ImportStatusView, error) {
	batch, err := s.batches.FindByID(ctx, importID)
	if err != nil {
		return nil, err
	}

	return statusViewFrom(batch), nil
}

// checkForDuplicate resolves an upload against existing batches: a COMPLETED
// batch with the same checksum wins over an in-flight one.
func (s *ImportService) checkForDuplicate(ctx context.Context, checksum domain.FileChecksum) (ImportResult, bool, error) {
	completed, err := s.batches.ExistsByChecksumAndStatusIn(ctx, checksum, domain.StatusCompleted)
	if err != nil {
		return ImportResult{}, false, err
	}

	if completed {
		existing, err := s.batches.FindByChecksumAndStatus(ctx, checksum, domain.StatusCompleted)
		if err != nil {
			return ImportResult{}, false, err
		}
		s.logger.Info(ctx, "Duplicate upload of completed import",
			"batch_id", existing.ID(),
			"checksum", checksum.String(),
		)
		return importDuplicate(existing.ID()), true, nil
	}

	inFlight, err := s.batches.ExistsByChecksumAndStatusIn(ctx, checksum, domain.StatusProcessing, domain.StatusPending)
	if err != nil {
		return ImportResult{}, false, err
	}

	if inFlight {
		result, err := s.resolveInProgress(ctx, checksum)
		if err != nil {
			return ImportResult{}, false, err
		}
		return result, true, nil
	}

	return ImportResult{}, false, nil
}

func (s *ImportService) resolveInProgress(ctx context.Context, checksum domain.FileChecksum) (ImportResult, error) {
	for _, status := range []domain.ImportStatus{domain.StatusProcessing, domain.StatusPending} {
		existing, err := s.batches.FindByChecksumAndStatus(ctx, checksum, status)
		if err == domain.ErrBatchNotFound {
			continue
		}
		if err != nil {
			return ImportResult{}, err
		}
		return importInProgress(existing.ID()), nil
	}

	// The in-flight batch reached a terminal state between checks.
	completed, err := s.batches.FindByChecksumAndStatus(ctx, checksum, domain.StatusCompleted)
	if err != nil {
		return ImportResult{}, err
	}
	return importDuplicate(completed.ID()), nil
}
