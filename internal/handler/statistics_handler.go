package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/internal/service"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

type StatisticsHandler struct {
	service *service.StatisticsService
	logger  *logger.Logger
}

func NewStatisticsHandler(statsService *service.StatisticsService, log *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: statsService,
		logger:  log,
	}
}

func (h *StatisticsHandler) ByCategory(c echo.Context) error {
	ctx := c.Request().Context()

	month, err := parseMonthParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	stats, err := h.service.GetStatisticsByCategory(ctx, month)
	if err != nil {
		h.logger.Error(ctx, "Failed to compute category statistics", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to compute statistics",
		})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *StatisticsHandler) ByIban(c echo.Context) error {
	ctx := c.Request().Context()

	month, err := parseMonthParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	stats, err := h.service.GetStatisticsByIban(ctx, month)
	if err != nil {
		h.logger.Error(ctx, "Failed to compute IBAN statistics", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to compute statistics",
		})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *StatisticsHandler) ByMonth(c echo.Context) error {
	ctx := c.Request().Context()

	yearParam := c.QueryParam("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "year parameter is required, e.g. year=2024",
		})
	}

	stats, err := h.service.GetStatisticsByMonth(ctx, year)
	if err != nil {
		h.logger.Error(ctx, "Failed to compute monthly statistics", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to compute statistics",
		})
	}

	return c.JSON(http.StatusOK, stats)
}

func parseMonthParam(c echo.Context) (domain.YearMonth, error) {
	monthParam := c.QueryParam("month")
	if monthParam == "" {
		return domain.YearMonth{}, &domain.ValidationError{
			Kind:    domain.KindInvalidInput,
			Message: "month parameter is required, e.g. month=2024-01",
		}
	}

	return domain.ParseYearMonth(monthParam)
}
