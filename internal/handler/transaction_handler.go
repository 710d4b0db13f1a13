package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/internal/service"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

const bytesPerMegabyte = 1024 * 1024

type TransactionHandler struct {
	importService *service.ImportService
	queryService  *service.QueryService
	logger        *logger.Logger
	maxFileBytes  int64
}

func NewTransactionHandler(
	importService *service.ImportService,
	queryService *service.QueryService,
	log *logger.Logger,
	maxFileSizeMB int,
) *TransactionHandler {
	return &TransactionHandler{
		importService: importService,
		queryService:  queryService,
		logger:        log,
		maxFileBytes:  int64(maxFileSizeMB) * bytesPerMegabyte,
	}
}

// Import accepts a multipart CSV upload and starts asynchronous processing.
func (h *TransactionHandler) Import(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "file is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "file must have .csv extension",
		})
	}

	if file.Size > h.maxFileBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{
			"error": "file exceeds maximum allowed size",
		})
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error(ctx, "Failed to open uploaded file", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error(ctx, "Failed to read uploaded file", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to read file",
		})
	}

	result, err := h.importService.ImportTransactions(ctx, file.Filename, content)
	if err != nil {
		if domain.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Failed to start import", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to start import",
		})
	}

	h.logger.Info(ctx, "Import request handled",
		"import_id", result.ImportID,
		"status", result.Status,
	)

	// A duplicate of a completed import is a no-op, not a new accepted job.
	if result.Status == domain.StatusCompleted {
		return c.JSON(http.StatusOK, result)
	}

	return c.JSON(http.StatusAccepted, result)
}

// Status returns the current state of one import batch.
func (h *TransactionHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()

	importID := c.Param("importId")

	view, err := h.importService.GetStatus(ctx, importID)
	if err != nil {
		if err == domain.ErrBatchNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "import not found",
			})
		}

		h.logger.Error(ctx, "Failed to get import status",
			"import_id", importID,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get import status",
		})
	}

	return c.JSON(http.StatusOK, view)
}

// List returns a filtered, paginated transaction page.
func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := domain.TransactionFilter{
		Iban: c.QueryParam("iban"),
	}

	if categoryParam := c.QueryParam("category"); categoryParam != "" {
		category, ok := domain.ParseCategory(categoryParam)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "unknown category: " + categoryParam,
			})
		}
		filter.Category = &category
	}

	if fromParam := c.QueryParam("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "invalid from date: " + fromParam,
			})
		}
		filter.From = &from
	}

	if toParam := c.QueryParam("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "invalid to date: " + toParam,
			})
		}
		filter.To = &to
	}

	if pageParam := c.QueryParam("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err == nil {
			filter.Page = page
		}
	}

	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		size, err := strconv.Atoi(sizeParam)
		if err == nil {
			filter.Size = size
		}
	}

	page, err := h.queryService.GetTransactions(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "Failed to list transactions", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list transactions",
		})
	}

	return c.JSON(http.StatusOK, page)
}
