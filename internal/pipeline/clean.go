package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"retailetl/pkg/contracts/domain"
)

var titleCaser = cases.Title(language.English)

// cleanCategorical trims surrounding whitespace and title-cases a
// category-like value, e.g. " office supplies " -> "Office Supplies".
// Missing values stay missing.
func cleanCategorical(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

// CleanCategoricals normalizes exactly the category, sub_category, and
// region fields of each order. No other field receives case
// normalization.
func CleanCategoricals(orders []domain.Order) []domain.Order {
	for i := range orders {
		orders[i].Category = cleanCategorical(orders[i].Category)
		orders[i].SubCategory = cleanCategorical(orders[i].SubCategory)
		orders[i].Region = cleanCategorical(orders[i].Region)
	}
	return orders
}
