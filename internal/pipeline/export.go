package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	apperrors "retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// Export serializes the cleaned orders to a CSV file at path using the
// canonical column order, overwriting any existing file. The write is
// atomic-or-absent: rows go to a temp file in the destination directory
// which is renamed into place only after a successful flush, so a failure
// never leaves a readable-but-incomplete export behind.
func Export(orders []domain.Order, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewDataAccessError(fmt.Sprintf("cannot create output directory %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.NewDataAccessError(fmt.Sprintf("cannot create output file in %s", dir), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	writer := csv.NewWriter(tmp)
	if err := writer.Write(domain.CanonicalColumns); err != nil {
		tmp.Close()
		return apperrors.NewDataAccessError("cannot write export header", err)
	}
	for i := range orders {
		if err := writer.Write(exportRecord(&orders[i])); err != nil {
			tmp.Close()
			return apperrors.NewDataAccessError(fmt.Sprintf("cannot write export row %d", i+1), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return apperrors.NewDataAccessError("cannot flush export file", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewDataAccessError("cannot close export file", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.NewDataAccessError(fmt.Sprintf("cannot move export into place at %s", path), err)
	}
	return nil
}

// exportRecord renders one order in canonical column order. Dates are
// ISO-8601; decimals use their shortest exact representation; missing
// categorical values stay empty cells.
func exportRecord(o *domain.Order) []string {
	return []string{
		o.OrderID,
		o.OrderDate.Format(domain.DateLayout),
		o.ShipMode,
		o.Segment,
		o.Country,
		o.City,
		o.State,
		o.PostalCode,
		o.Region,
		o.Category,
		o.SubCategory,
		o.ProductID,
		o.CostPrice.String(),
		o.ListPrice.String(),
		strconv.FormatInt(o.Quantity, 10),
		o.DiscountPercent.String(),
		o.Discount.String(),
		o.SalePrice.String(),
		o.Profit.String(),
		o.ProfitMargin.String(),
		strconv.Itoa(o.Year),
		strconv.Itoa(o.Month),
		o.MonthName,
		strconv.Itoa(o.Quarter),
	}
}
