package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes the header row followed by every dataset row.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := defaultSheet
	if data.Title != "" {
		if err := f.SetSheetName(defaultSheet, data.Title); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = data.Title
	}

	if err := writeRow(f, sheet, 1, data.Headers); err != nil {
		return nil, err
	}
	for i := range data.Rows {
		if err := writeRow(f, sheet, i+2, data.Record(i)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve cell: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	return nil
}

// ReadXLSX loads the first sheet of a workbook into a Dataset keyed by the
// header row. Blank rows are skipped; RowNumbers keeps the sheet row of every
// record so callers can point at the original line.
func ReadXLSX(r io.Reader) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Dataset{}, errors.New("workbook does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Dataset{}, errors.New("workbook sheet is empty")
	}

	data := Dataset{Title: sheet, Headers: rows[0]}
	for j, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		record := make(map[string]string, len(data.Headers))
		for i, header := range data.Headers {
			if i < len(row) {
				record[header] = row[i]
			}
		}
		data.Rows = append(data.Rows, record)
		data.RowNumbers = append(data.RowNumbers, j+2)
	}
	return data, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
