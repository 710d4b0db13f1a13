package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

func mustBatch(t *testing.T, id string, content string) *domain.ImportBatch {
	t.Helper()

	checksum, err := domain.ComputeChecksum([]byte(content))
	require.NoError(t, err)

	batch, err := domain.NewImportBatch(id, "statement.csv", checksum)
	require.NoError(t, err)
	return batch
}

func TestBatchStore_SaveNewAndFind(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	batch := mustBatch(t, "batch-1", "content-a")
	require.NoError(t, store.SaveNew(ctx, batch))

	found, err := store.FindByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, "batch-1", found.ID())
	assert.Equal(t, domain.StatusPending, found.Status())
}

func TestBatchStore_FindByID_Missing(t *testing.T) {
	store := NewBatchStore()

	_, err := store.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestBatchStore_SaveNew_RejectsNonTerminalDuplicate(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	require.NoError(t, store.SaveNew(ctx, mustBatch(t, "batch-1", "same")))

	err := store.SaveNew(ctx, mustBatch(t, "batch-2", "same"))
	assert.ErrorIs(t, err, domain.ErrDuplicateImport)

	// Different content is unaffected.
	assert.NoError(t, store.SaveNew(ctx, mustBatch(t, "batch-3", "other")))
}

func TestBatchStore_SaveNew_AllowsReimportAfterFailure(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	failed := mustBatch(t, "batch-1", "same")
	require.NoError(t, failed.Fail("broken"))
	require.NoError(t, store.SaveNew(ctx, mustBatch(t, "batch-0", "unrelated")))
	require.NoError(t, store.Save(ctx, failed))

	assert.NoError(t, store.SaveNew(ctx, mustBatch(t, "batch-2", "same")))
}

func TestBatchStore_SnapshotIsolation(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	batch := mustBatch(t, "batch-1", "content")
	require.NoError(t, store.SaveNew(ctx, batch))

	// Mutating the caller's copy must not leak into the store before Save.
	require.NoError(t, batch.StartProcessing(5))

	found, err := store.FindByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, found.Status())

	require.NoError(t, store.Save(ctx, batch))

	found, err = store.FindByID(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, found.Status())
}

func TestBatchStore_FindByChecksumAndStatus(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	completed := mustBatch(t, "batch-1", "same")
	require.NoError(t, completed.StartProcessing(1))
	require.NoError(t, completed.Complete())
	require.NoError(t, store.Save(ctx, completed))

	found, err := store.FindByChecksumAndStatus(ctx, completed.Checksum(), domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", found.ID())

	_, err = store.FindByChecksumAndStatus(ctx, completed.Checksum(), domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestBatchStore_ExistsByChecksumAndStatusIn(t *testing.T) {
	store := NewBatchStore()
	ctx := context.Background()

	batch := mustBatch(t, "batch-1", "same")
	require.NoError(t, store.SaveNew(ctx, batch))

	exists, err := store.ExistsByChecksumAndStatusIn(ctx, batch.Checksum(), domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.ExistsByChecksumAndStatusIn(ctx, batch.Checksum(), domain.StatusCompleted)
	require.NoError(t, err)
	assert.False(t, exists)
}
