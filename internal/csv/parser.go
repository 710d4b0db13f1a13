// Package csv parses bank-statement CSV files into validated transaction
// records. Row-level failures never abort the file; each bad row yields one
// error and parsing continues.
package csv

import (
	"bytes"
	"strings"
	"time"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
)

const expectedColumns = 5

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// ParsedTransaction is a successfully validated CSV row, not yet persisted.
type ParsedTransaction struct {
	Iban     domain.Iban
	Date     time.Time
	Currency string
	Category domain.Category
	Amount   domain.Money
}

// ParseError is one row-scoped failure. Row 0 marks file-level problems.
type ParseError struct {
	Row     int
	Message string
}

// ParseResult carries valid rows, row errors, and the count of non-empty
// data rows visited (successes and errors alike, header excluded).
type ParseResult struct {
	Valid     []ParsedTransaction
	Errors    []ParseError
	TotalRows int
}

func (r ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse validates content line by line. The first line is a mandatory header
// and is excluded from row numbering; data rows are numbered from 1 by
// physical position. Blank rows keep their number but are excluded from all
// counts.
func (p *Parser) Parse(content []byte) ParseResult {
	result := ParseResult{
		Valid:  []ParsedTransaction{},
		Errors: []ParseError{},
	}

	lines := splitLines(bytes.TrimPrefix(content, utf8Bom))

	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		result.Errors = append(result.Errors, ParseError{Row: 0, Message: "file is empty or has no header"})
		return result
	}

	for rowNumber, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		result.TotalRows++
		p.parseRow(line, rowNumber+1, &result)
	}

	return result
}

func (p *Parser) parseRow(line string, rowNumber int, result *ParseResult) {
	columns := splitFields(line)

	if len(columns) < expectedColumns {
		result.Errors = append(result.Errors, ParseError{
			Row:     rowNumber,
			Message: "insufficient columns: expected 5",
		})
		return
	}

	parsed, err := parseColumns(columns)
	if err != nil {
		result.Errors = append(result.Errors, ParseError{Row: rowNumber, Message: err.Error()})
		return
	}

	result.Valid = append(result.Valid, parsed)
}

// parseColumns validates fields in order iban, date, currency, category,
// amount; the first failing field wins.
func parseColumns(columns []string) (ParsedTransaction, error) {
	iban, err := parseIban(columns[0])
	if err != nil {
		return ParsedTransaction{}, err
	}

	date, err := parseDate(columns[1])
	if err != nil {
		return ParsedTransaction{}, err
	}

	currency, err := parseCurrency(columns[2])
	if err != nil {
		return ParsedTransaction{}, err
	}

	category, err := parseCategory(columns[3])
	if err != nil {
		return ParsedTransaction{}, err
	}

	amount, err := domain.ParseMoney(columns[4])
	if err != nil {
		return ParsedTransaction{}, err
	}

	return ParsedTransaction{
		Iban:     iban,
		Date:     date,
		Currency: currency,
		Category: category,
		Amount:   amount,
	}, nil
}

func parseIban(value string) (domain.Iban, error) {
	if value == "" {
		return domain.Iban{}, &domain.ValidationError{Kind: domain.KindInvalidIban, Message: "IBAN is required"}
	}
	return domain.NewIban(value)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &domain.ValidationError{Kind: domain.KindInvalidInput, Message: "date is required"}
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{
			Kind:    domain.KindInvalidInput,
			Message: "invalid date format: " + value,
		}
	}

	if err := domain.ValidateTransactionDate(date); err != nil {
		return time.Time{}, err
	}

	return date, nil
}

func parseCurrency(value string) (string, error) {
	if value == "" {
		return "", &domain.ValidationError{Kind: domain.KindInvalidInput, Message: "currency is required"}
	}

	code, ok := domain.ParseCurrency(value)
	if !ok {
		return "", &domain.ValidationError{
			Kind:    domain.KindInvalidInput,
			Message: "invalid currency code: " + value,
		}
	}
	return code, nil
}

func parseCategory(value string) (domain.Category, error) {
	if value == "" {
		return "", &domain.ValidationError{Kind: domain.KindInvalidInput, Message: "category is required"}
	}

	category, ok := domain.ParseCategory(value)
	if !ok {
		return "", &domain.ValidationError{
			Kind:    domain.KindInvalidInput,
			Message: "unknown category: " + value,
		}
	}
	return category, nil
}

// splitLines splits on \n and drops a trailing \r from each line so CRLF
// input parses the same as LF.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	raw := strings.Split(string(content), "\n")

	// A trailing newline produces one empty trailing element, not a data row.
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitFields splits a line on commas with quote-aware state: inside a
// double-quoted span commas are literal. Each field is trimmed.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
