package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "retailetl/internal/errors"
)

// missingMarkers are the placeholder tokens the data source uses for
// absent values. A cell must match one of them exactly to count as
// missing; legitimate values pass through untouched.
var missingMarkers = map[string]struct{}{
	"Not Available": {},
	"unknown":       {},
	"NA":            {},
	"N/A":           {},
	"":              {},
}

// normalizeCell maps placeholder tokens to the empty string, the missing
// marker used everywhere downstream.
func normalizeCell(cell string) string {
	if _, ok := missingMarkers[cell]; ok {
		return ""
	}
	return cell
}

// LoadRaw reads a raw extract into a RawTable, converting placeholder
// tokens to missing values in every column. CSV is the primary format;
// .xlsx workbooks are accepted as well, reading the first sheet. A file
// that cannot be opened or parsed fails with a DATA_ACCESS error and no
// partial table.
func LoadRaw(path string) (*RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadRawExcel(path)
	}
	return loadRawCSV(path)
}

func loadRawCSV(path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("cannot open raw extract %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("cannot read header row of %s", path), err)
	}
	// Strip a UTF-8 BOM some exports carry on the first header
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	table := &RawTable{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewDataAccessError(fmt.Sprintf("cannot parse %s as delimited data", path), err)
		}
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = normalizeCell(cell)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// loadRawExcel reads the first sheet of an .xlsx workbook into the same
// shape LoadRaw produces for CSV. Short rows are padded so every row has
// one cell per header.
func loadRawExcel(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("cannot open raw extract %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("cannot read sheet %s of %s", sheets[0], path), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewDataAccessError(fmt.Sprintf("workbook %s has no header row", path), nil)
	}

	table := &RawTable{Headers: rows[0]}
	for _, excelRow := range rows[1:] {
		row := make([]string, len(table.Headers))
		for i := range row {
			if i < len(excelRow) {
				row[i] = normalizeCell(excelRow[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
