package service

import (
	"context"
	"fmt"

	"github.com/banking-tools/transaction-aggregator/internal/csv"
	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
	"github.com/banking-tools/transaction-aggregator/pkg/retry"
)

// ProcessImport is the asynchronous half of an import: parse, persist rows
// in chunks, resolve the batch to a terminal state, and evict affected
// cached statistics. Exactly one worker runs this per batch id.
func (s *ImportService) ProcessImport(ctx context.Context, batchID string, content []byte) error {
	ctx = logger.WithBatchID(ctx, batchID)

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		// The orchestrator persists the batch before dispatch; a miss here
		// is an internal consistency error, not a processing failure.
		s.logger.Error(ctx, "Dispatched batch missing from store", "error", err)
		return fmt.Errorf("load batch %s: %w", batchID, err)
	}

	s.logger.Info(ctx, "Starting import processing", "filename", batch.Filename())

	if err := s.runProtected(ctx, batch, content); err != nil {
		s.failBatch(ctx, batch, err)
		return nil
	}

	s.logger.Info(ctx, "Import processing completed",
		"total_rows", batch.TotalRows(),
		"success_count", batch.SuccessCount(),
		"error_count", batch.ErrorCount(),
	)

	return nil
}

// runProtected is the worker-boundary catch-all: any error or panic from the
// processing steps is converted into a FAILED batch by the caller, never
// propagated to the pool.
func (s *ImportService) runProtected(ctx context.Context, batch *domain.ImportBatch, content []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	return s.process(ctx, batch, content)
}

func (s *ImportService) process(ctx context.Context, batch *domain.ImportBatch, content []byte) error {
	parseResult := s.parser.Parse(content)

	// Persist PROCESSING before any row is stored so concurrent status
	// reads observe progress.
	if err := batch.StartProcessing(parseResult.TotalRows); err != nil {
		return err
	}
	if err := s.saveBatch(ctx, batch); err != nil {
		return err
	}

	transactions, err := s.convertToTransactions(parseResult.Valid, batch.ID())
	if err != nil {
		return err
	}

	affectedMonths := extractAffectedMonths(transactions)

	if err := s.saveInChunks(ctx, transactions, batch); err != nil {
		return err
	}

	for _, parseErr := range parseResult.Errors {
		batch.RecordError(parseErr.Row, parseErr.Message)
	}

	if err := batch.Complete(); err != nil {
		return err
	}
	if err := s.saveBatch(ctx, batch); err != nil {
		return err
	}

	s.invalidator.EvictStatisticsCache(ctx, affectedMonths)

	return nil
}

func (s *ImportService) convertToTransactions(parsed []csv.ParsedTransaction, batchID string) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0, len(parsed))

	for _, record := range parsed {
		tx, err := domain.NewTransaction(record.Iban, record.Date, record.Currency, record.Category, record.Amount, batchID)
		if err != nil {
			return nil, fmt.Errorf("convert parsed row: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func extractAffectedMonths(transactions []domain.Transaction) map[domain.YearMonth]struct{} {
	months := make(map[domain.YearMonth]struct{})
	for _, tx := range transactions {
		months[tx.YearMonth()] = struct{}{}
	}
	return months
}

// saveInChunks stores transactions in fixed-size chunks to bound write size,
// recording one success per durably written transaction.
func (s *ImportService) saveInChunks(ctx context.Context, transactions []domain.Transaction, batch *domain.ImportBatch) error {
	for start := 0; start < len(transactions); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(transactions) {
			end = len(transactions)
		}

		chunk := transactions[start:end]

		err := retry.Do(ctx, func() error {
			return s.transactions.SaveAll(ctx, chunk)
		})
		if err != nil {
			return fmt.Errorf("save transaction chunk: %w", err)
		}

		for range chunk {
			batch.RecordSuccess()
		}

		s.logger.Debug(ctx, "Transaction chunk saved",
			"chunk_size", len(chunk),
			"saved_total", batch.SuccessCount(),
		)
	}

	return nil
}

func (s *ImportService) saveBatch(ctx context.Context, batch *domain.ImportBatch) error {
	return retry.Do(ctx, func() error {
		return s.batches.Save(ctx, batch)
	})
}

// failBatch is the only abnormal exit from PROCESSING: the cause is recorded
// as a row-0 error and the batch is persisted in its terminal state.
func (s *ImportService) failBatch(ctx context.Context, batch *domain.ImportBatch, cause error) {
	s.logger.Error(ctx, "Import processing failed", "error", cause)

	if err := batch.Fail("processing failed: " + cause.Error()); err != nil {
		s.logger.Error(ctx, "Cannot mark batch failed", "error", err)
		return
	}

	if err := s.saveBatch(ctx, batch); err != nil {
		s.logger.Error(ctx, "Failed to persist failed batch", "error", err)
	}
}
