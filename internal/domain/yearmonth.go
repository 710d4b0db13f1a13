package domain

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month, the unit of cache invalidation and
// statistics grouping. Comparable, so usable as a map key.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(date time.Time) YearMonth {
	return YearMonth{Year: date.Year(), Month: date.Month()}
}

// ParseYearMonth parses the "2006-01" form.
func ParseYearMonth(value string) (YearMonth, error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return YearMonth{}, newValidationError(KindInvalidInput, "invalid month format: %s", value)
	}
	return YearMonth{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Before reports chronological order.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}
