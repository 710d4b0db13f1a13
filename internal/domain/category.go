package domain

import "strings"

// Category classifies a transaction for budget reporting. The set is closed;
// unknown text yields no match rather than an error so the parser can attach
// a row-scoped message.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealthcare    Category = "HEALTHCARE"
	CategoryShopping      Category = "SHOPPING"
	CategorySalary        Category = "SALARY"
	CategoryTransfer      Category = "TRANSFER"
	CategoryOther         Category = "OTHER"
)

var categoryDisplayNames = map[Category]string{
	CategoryFood:          "Food & Groceries",
	CategoryTransport:     "Transportation",
	CategoryUtilities:     "Bills & Utilities",
	CategoryEntertainment: "Entertainment",
	CategoryHealthcare:    "Healthcare",
	CategoryShopping:      "Shopping",
	CategorySalary:        "Salary & Income",
	CategoryTransfer:      "Bank Transfer",
	CategoryOther:         "Other",
}

// categoryByName is built once at startup and never mutated.
var categoryByName = func() map[string]Category {
	byName := make(map[string]Category, len(categoryDisplayNames))
	for category := range categoryDisplayNames {
		byName[strings.ToLower(string(category))] = category
	}
	return byName
}()

// ParseCategory resolves text to a category, case-insensitively.
// The second return value is false when the text matches no category.
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}

	category, ok := categoryByName[strings.ToLower(trimmed)]
	return category, ok
}

func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryShopping,
		CategorySalary,
		CategoryTransfer,
		CategoryOther,
	}
}

func (c Category) DisplayName() string {
	return categoryDisplayNames[c]
}

func (c Category) String() string {
	return string(c)
}
