// Package storage provides in-memory adapters for the repository ports.
package storage

import (
	"context"
	"sync"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

// BatchStore is the in-memory batch repository. Batches are stored and
// returned as snapshots, so a mutation is visible to readers only after an
// explicit Save.
type BatchStore struct {
	batches map[string]*domain.ImportBatch
	mu      sync.RWMutex
}

func NewBatchStore() *BatchStore {
	return &BatchStore{
		batches: make(map[string]*domain.ImportBatch),
	}
}

// SaveNew inserts a PENDING batch. The duplicate check and the insert run
// under one lock, so two concurrent uploads of identical content cannot both
// create a non-terminal batch for the same checksum.
func (s *BatchStore) SaveNew(ctx context.Context, batch *domain.ImportBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.batches {
		if existing.Checksum() == batch.Checksum() && !existing.Status().IsTerminal() {
			return domain.ErrDuplicateImport
		}
	}

	s.batches[batch.ID()] = batch.Snapshot()
	return nil
}

func (s *BatchStore) Save(ctx context.Context, batch *domain.ImportBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches[batch.ID()] = batch.Snapshot()
	return nil
}

func (s *BatchStore) FindByID(ctx context.Context, id string) (*domain.ImportBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, exists := s.batches[id]
	if !exists {
		return nil, domain.ErrBatchNotFound
	}

	return batch.Snapshot(), nil
}

func (s *BatchStore) FindByChecksumAndStatus(ctx context.Context, checksum domain.FileChecksum, status domain.ImportStatus) (*domain.ImportBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.ImportBatch
	for _, batch := range s.batches {
		if batch.Checksum() != checksum || batch.Status() != status {
			continue
		}
		// Oldest match wins, keeping lookups deterministic.
		if found == nil || batch.CreatedAt().Before(found.CreatedAt()) {
			found = batch
		}
	}

	if found == nil {
		return nil, domain.ErrBatchNotFound
	}

	return found.Snapshot(), nil
}

func (s *BatchStore) ExistsByChecksumAndStatusIn(ctx context.Context, checksum domain.FileChecksum, statuses ...domain.ImportStatus) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, batch := range s.batches {
		if batch.Checksum() != checksum {
			continue
		}
		for _, status := range statuses {
			if batch.Status() == status {
				return true, nil
			}
		}
	}

	return false, nil
}
