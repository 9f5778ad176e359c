package pipeline

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// CanonicalizeHeader lowercases a raw header and replaces internal spaces
// with underscores, e.g. "List Price" -> "list_price". Applied to every
// column so the stage tolerates case and spacing variation in the source.
func CanonicalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}

// Normalize renames the raw table's columns to the canonical schema and
// parses each row into a typed order record: order_date is coerced to a
// calendar date and the monetary/quantity columns to numbers. A required
// column absent after renaming fails with SCHEMA_MISMATCH before any row
// is parsed; a bad date or numeric cell fails with the row identified.
func Normalize(raw *RawTable) ([]domain.Order, error) {
	index := make(map[string]int, len(raw.Headers))
	for i, header := range raw.Headers {
		index[CanonicalizeHeader(header)] = i
	}

	var missing []string
	for _, col := range domain.RawColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaMismatchError(missing)
	}

	orders := make([]domain.Order, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		rowNum := i + 1 // 1-based, header excluded

		cell := func(col string) string {
			idx := index[col]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		orderDate, err := parseDate(rowNum, cell("order_date"))
		if err != nil {
			return nil, err
		}
		costPrice, err := parseDecimal(rowNum, "cost_price", cell("cost_price"))
		if err != nil {
			return nil, err
		}
		listPrice, err := parseDecimal(rowNum, "list_price", cell("list_price"))
		if err != nil {
			return nil, err
		}
		discountPercent, err := parseDecimal(rowNum, "discount_percent", cell("discount_percent"))
		if err != nil {
			return nil, err
		}
		quantity, err := parseQuantity(rowNum, cell("quantity"))
		if err != nil {
			return nil, err
		}

		orders = append(orders, domain.Order{
			OrderID:         cell("order_id"),
			OrderDate:       orderDate,
			ShipMode:        cell("ship_mode"),
			Segment:         cell("segment"),
			Country:         cell("country"),
			City:            cell("city"),
			State:           cell("state"),
			PostalCode:      cell("postal_code"),
			Region:          cell("region"),
			Category:        cell("category"),
			SubCategory:     cell("sub_category"),
			ProductID:       cell("product_id"),
			CostPrice:       costPrice,
			ListPrice:       listPrice,
			Quantity:        quantity,
			DiscountPercent: discountPercent,
		})
	}

	return orders, nil
}

func parseDate(row int, value string) (time.Time, error) {
	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewMalformedDateError(row, value)
	}
	return date, nil
}

func parseDecimal(row int, column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewMalformedValueError(row, column, value)
	}
	return d, nil
}

func parseQuantity(row int, value string) (int64, error) {
	// Quantities occasionally arrive as "2.0"; accept any integral number
	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsInteger() {
		return 0, apperrors.NewMalformedValueError(row, "quantity", value)
	}
	return d.IntPart(), nil
}
