package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

// ImportResult is the synchronous answer to an upload request.
type ImportResult struct {
	ImportID string              `json:"import_id"`
	Status   domain.ImportStatus `json:"status"`
	Message  string              `json:"message"`
}

func importStarted(importID string) ImportResult {
	return ImportResult{ImportID: importID, Status: domain.StatusProcessing, Message: "import started"}
}

func importDuplicate(existingID string) ImportResult {
	return ImportResult{ImportID: existingID, Status: domain.StatusCompleted, Message: "file already imported"}
}

func importInProgress(existingID string) ImportResult {
	return ImportResult{ImportID: existingID, Status: domain.StatusProcessing, Message: "import already in progress"}
}

// ImportStatusView is the read model for status polling.
type ImportStatusView struct {
	ImportID     string               `json:"import_id"`
	Status       domain.ImportStatus  `json:"status"`
	Filename     string               `json:"filename"`
	TotalRows    int                  `json:"total_rows"`
	SuccessCount int                  `json:"success_count"`
	ErrorCount   int                  `json:"error_count"`
	Errors       []domain.ImportError `json:"errors"`
	CreatedAt    time.Time            `json:"created_at"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
}

func statusViewFrom(batch *domain.ImportBatch) *ImportStatusView {
	return &ImportStatusView{
		ImportID:     batch.ID(),
		Status:       batch.Status(),
		Filename:     batch.Filename(),
		TotalRows:    batch.TotalRows(),
		SuccessCount: batch.SuccessCount(),
		ErrorCount:   batch.ErrorCount(),
		Errors:       batch.Errors(),
		CreatedAt:    batch.CreatedAt(),
		CompletedAt:  batch.CompletedAt(),
	}
}

// TransactionView is the read model for a single transaction.
type TransactionView struct {
	ID            string          `json:"id"`
	Iban          string          `json:"iban"`
	Date          string          `json:"date"`
	Currency      string          `json:"currency"`
	Category      domain.Category `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	ImportBatchID string          `json:"import_batch_id"`
}

func transactionViewFrom(tx domain.Transaction) TransactionView {
	return TransactionView{
		ID:            tx.ID,
		Iban:          tx.Iban.String(),
		Date:          tx.Date.Format("2006-01-02"),
		Currency:      tx.Currency,
		Category:      tx.Category,
		Amount:        tx.Amount.Amount(),
		ImportBatchID: tx.ImportBatchID,
	}
}

// TransactionPage is one page of transaction views.
type TransactionPage struct {
	Content       []TransactionView `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
}

func newTransactionPage(content []TransactionView, page, size int, totalElements int64) TransactionPage {
	totalPages := int((totalElements + int64(size) - 1) / int64(size))
	return TransactionPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}

// CategorySummary aggregates one category within a month.
type CategorySummary struct {
	Category         domain.Category `json:"category"`
	DisplayName      string          `json:"display_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
}

type CategoryStatistics struct {
	Month      string            `json:"month"`
	Categories []CategorySummary `json:"categories"`
}

// IbanSummary aggregates one account within a month. Balance is income plus
// expense (expense is negative).
type IbanSummary struct {
	Iban         string          `json:"iban"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

type IbanStatistics struct {
	Month string        `json:"month"`
	Ibans []IbanSummary `json:"ibans"`
}

// MonthlySummary aggregates one calendar month within a year.
type MonthlySummary struct {
	Month        string          `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

type MonthlyStatistics struct {
	Year   int              `json:"year"`
	Months []MonthlySummary `json:"months"`
}
