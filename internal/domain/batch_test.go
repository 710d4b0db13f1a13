package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChecksum(t *testing.T) FileChecksum {
	t.Helper()
	checksum, err := ComputeChecksum([]byte("test content"))
	require.NoError(t, err)
	return checksum
}

func newPendingBatch(t *testing.T) *ImportBatch {
	t.Helper()
	batch, err := NewImportBatch("batch-1", "statement.csv", testChecksum(t))
	require.NoError(t, err)
	return batch
}

func TestNewImportBatch(t *testing.T) {
	batch := newPendingBatch(t)

	assert.Equal(t, "batch-1", batch.ID())
	assert.Equal(t, "statement.csv", batch.Filename())
	assert.Equal(t, StatusPending, batch.Status())
	assert.Zero(t, batch.TotalRows())
	assert.Zero(t, batch.SuccessCount())
	assert.Zero(t, batch.ErrorCount())
	assert.Empty(t, batch.Errors())
	assert.Nil(t, batch.CompletedAt())
	assert.False(t, batch.CreatedAt().IsZero())
}

func TestNewImportBatch_Validation(t *testing.T) {
	checksum := testChecksum(t)

	_, err := NewImportBatch("", "statement.csv", checksum)
	assert.Error(t, err)

	_, err = NewImportBatch("batch-1", "", checksum)
	assert.Error(t, err)

	_, err = NewImportBatch("batch-1", "statement.csv", FileChecksum{})
	assert.Error(t, err)
}

func TestImportBatch_HappyLifecycle(t *testing.T) {
	batch := newPendingBatch(t)

	require.NoError(t, batch.StartProcessing(3))
	assert.Equal(t, StatusProcessing, batch.Status())
	assert.Equal(t, 3, batch.TotalRows())

	batch.RecordSuccess()
	batch.RecordSuccess()
	batch.RecordError(3, "invalid IBAN checksum: PL00109010140000071219812874")

	require.NoError(t, batch.Complete())
	assert.Equal(t, StatusCompleted, batch.Status())
	assert.Equal(t, 2, batch.SuccessCount())
	assert.Equal(t, 1, batch.ErrorCount())
	assert.NotNil(t, batch.CompletedAt())

	errors := batch.Errors()
	require.Len(t, errors, 1)
	assert.Equal(t, 3, errors[0].Row)
}

func TestImportBatch_FailFromPending(t *testing.T) {
	batch := newPendingBatch(t)

	require.NoError(t, batch.Fail("storage unavailable"))
	assert.Equal(t, StatusFailed, batch.Status())
	assert.NotNil(t, batch.CompletedAt())

	errors := batch.Errors()
	require.Len(t, errors, 1)
	assert.Equal(t, 0, errors[0].Row)
	assert.Equal(t, "storage unavailable", errors[0].Message)
}

func TestImportBatch_FailFromProcessing(t *testing.T) {
	batch := newPendingBatch(t)
	require.NoError(t, batch.StartProcessing(10))

	require.NoError(t, batch.Fail("chunk write failed"))
	assert.Equal(t, StatusFailed, batch.Status())
}

func TestImportBatch_StateMachineClosure(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) *ImportBatch
		transition func(b *ImportBatch) error
		allowed    bool
	}{
		{"pending complete", asPending, complete, false},
		{"pending start", asPending, start, true},
		{"pending fail", asPending, fail, true},
		{"processing start", asProcessing, start, false},
		{"processing complete", asProcessing, complete, true},
		{"processing fail", asProcessing, fail, true},
		{"completed start", asCompleted, start, false},
		{"completed complete", asCompleted, complete, false},
		{"completed fail", asCompleted, fail, false},
		{"failed start", asFailed, start, false},
		{"failed complete", asFailed, complete, false},
		{"failed fail", asFailed, fail, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			batch := tc.setup(t)
			err := tc.transition(batch)

			if tc.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsValidation(err, KindInvalidTransition))
			}
		})
	}
}

func asPending(t *testing.T) *ImportBatch {
	return newPendingBatch(t)
}

func asProcessing(t *testing.T) *ImportBatch {
	batch := newPendingBatch(t)
	require.NoError(t, batch.StartProcessing(1))
	return batch
}

func asCompleted(t *testing.T) *ImportBatch {
	batch := asProcessing(t)
	require.NoError(t, batch.Complete())
	return batch
}

func asFailed(t *testing.T) *ImportBatch {
	batch := newPendingBatch(t)
	require.NoError(t, batch.Fail("boom"))
	return batch
}

func start(b *ImportBatch) error    { return b.StartProcessing(1) }
func complete(b *ImportBatch) error { return b.Complete() }
func fail(b *ImportBatch) error     { return b.Fail("reason") }

func TestReconstituteImportBatch(t *testing.T) {
	createdAt := time.Now().Add(-time.Hour)
	completedAt := time.Now()
	errors := []ImportError{{Row: 2, Message: "unknown category: GROCERIES"}}

	batch := ReconstituteImportBatch(
		"batch-7", "old.csv", testChecksum(t), StatusCompleted,
		5, 4, 1, errors, createdAt, &completedAt,
	)

	assert.Equal(t, StatusCompleted, batch.Status())
	assert.Equal(t, 5, batch.TotalRows())
	assert.Equal(t, 4, batch.SuccessCount())
	assert.Equal(t, 1, batch.ErrorCount())
	assert.Equal(t, errors, batch.Errors())

	// Terminal after reconstitution as well.
	assert.Error(t, batch.Complete())
}

func TestImportBatch_SnapshotIsIndependent(t *testing.T) {
	batch := asProcessing(t)
	snapshot := batch.Snapshot()

	batch.RecordSuccess()
	batch.RecordError(1, "bad row")

	assert.Zero(t, snapshot.SuccessCount())
	assert.Zero(t, snapshot.ErrorCount())
	assert.Equal(t, StatusProcessing, snapshot.Status())
}
