package domain

import "time"

// ImportStatus is the lifecycle state of an import batch.
type ImportStatus string

const (
	StatusPending    ImportStatus = "PENDING"
	StatusProcessing ImportStatus = "PROCESSING"
	StatusCompleted  ImportStatus = "COMPLETED"
	StatusFailed     ImportStatus = "FAILED"
)

func (s ImportStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s ImportStatus) CanTransitionTo(target ImportStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusFailed
	case StatusProcessing:
		return target == StatusCompleted || target == StatusFailed
	default:
		return false
	}
}

// ImportError is a row-scoped validation failure recorded on a batch.
// Row 0 marks file-level failures.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportBatch is the aggregate root tracking one import attempt end-to-end.
// Status moves strictly PENDING -> PROCESSING -> {COMPLETED|FAILED}; the only
// mutators are the named transition and record operations below.
type ImportBatch struct {
	id           string
	filename     string
	checksum     FileChecksum
	status       ImportStatus
	totalRows    int
	successCount int
	errorCount   int
	errors       []ImportError
	createdAt    time.Time
	completedAt  *time.Time
}

// NewImportBatch creates a fresh PENDING batch for an accepted upload.
func NewImportBatch(id, filename string, checksum FileChecksum) (*ImportBatch, error) {
	if id == "" {
		return nil, newValidationError(KindInvalidInput, "batch ID cannot be blank")
	}

	if filename == "" {
		return nil, newValidationError(KindInvalidInput, "filename cannot be blank")
	}

	if checksum.IsZero() {
		return nil, newValidationError(KindInvalidInput, "file checksum is required")
	}

	return &ImportBatch{
		id:        id,
		filename:  filename,
		checksum:  checksum,
		status:    StatusPending,
		errors:    []ImportError{},
		createdAt: time.Now(),
	}, nil
}

// ReconstituteImportBatch rebuilds a batch from storage without re-running
// creation-time checks or resetting counters.
func ReconstituteImportBatch(
	id, filename string,
	checksum FileChecksum,
	status ImportStatus,
	totalRows, successCount, errorCount int,
	errors []ImportError,
	createdAt time.Time,
	completedAt *time.Time,
) *ImportBatch {
	batchErrors := make([]ImportError, len(errors))
	copy(batchErrors, errors)

	return &ImportBatch{
		id:           id,
		filename:     filename,
		checksum:     checksum,
		status:       status,
		totalRows:    totalRows,
		successCount: successCount,
		errorCount:   errorCount,
		errors:       batchErrors,
		createdAt:    createdAt,
		completedAt:  completedAt,
	}
}

// StartProcessing transitions PENDING -> PROCESSING and records the observed
// row count.
func (b *ImportBatch) StartProcessing(totalRows int) error {
	if !b.status.CanTransitionTo(StatusProcessing) {
		return newValidationError(KindInvalidTransition, "cannot start processing from status %s", b.status)
	}

	b.status = StatusProcessing
	b.totalRows = totalRows
	return nil
}

// Complete transitions PROCESSING -> COMPLETED.
func (b *ImportBatch) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return newValidationError(KindInvalidTransition, "cannot complete from status %s", b.status)
	}

	b.status = StatusCompleted
	now := time.Now()
	b.completedAt = &now
	return nil
}

// Fail transitions any non-terminal status to FAILED, recording the reason
// as a row-0 error.
func (b *ImportBatch) Fail(reason string) error {
	if b.status.IsTerminal() {
		return newValidationError(KindInvalidTransition, "cannot fail from terminal status %s", b.status)
	}

	b.status = StatusFailed
	now := time.Now()
	b.completedAt = &now

	if reason != "" {
		b.errors = append(b.errors, ImportError{Row: 0, Message: reason})
	}
	return nil
}

func (b *ImportBatch) RecordSuccess() {
	b.successCount++
}

func (b *ImportBatch) RecordError(row int, message string) {
	b.errorCount++
	b.errors = append(b.errors, ImportError{Row: row, Message: message})
}

func (b *ImportBatch) ID() string              { return b.id }
func (b *ImportBatch) Filename() string        { return b.filename }
func (b *ImportBatch) Checksum() FileChecksum  { return b.checksum }
func (b *ImportBatch) Status() ImportStatus    { return b.status }
func (b *ImportBatch) TotalRows() int          { return b.totalRows }
func (b *ImportBatch) SuccessCount() int       { return b.successCount }
func (b *ImportBatch) ErrorCount() int         { return b.errorCount }
func (b *ImportBatch) CreatedAt() time.Time    { return b.createdAt }
func (b *ImportBatch) CompletedAt() *time.Time { return b.completedAt }

// Errors returns a copy; the batch's own list is never exposed for mutation.
func (b *ImportBatch) Errors() []ImportError {
	errors := make([]ImportError, len(b.errors))
	copy(errors, b.errors)
	return errors
}

// Snapshot returns an independent copy of the batch, safe to hand across
// goroutines.
func (b *ImportBatch) Snapshot() *ImportBatch {
	var completedAt *time.Time
	if b.completedAt != nil {
		t := *b.completedAt
		completedAt = &t
	}

	return ReconstituteImportBatch(
		b.id, b.filename, b.checksum, b.status,
		b.totalRows, b.successCount, b.errorCount,
		b.errors, b.createdAt, completedAt,
	)
}
