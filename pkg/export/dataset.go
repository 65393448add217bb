package export

import "fmt"

// Dataset defines tabular export content. RowNumbers, when set by a reader,
// holds the 1-based sheet row each entry of Rows came from.
type Dataset struct {
	Title      string
	Headers    []string
	Rows       []map[string]string
	RowNumbers []int
}

// RowNumber returns the source sheet row of Rows[i], assuming a single header
// row and no gaps when the dataset was not read from a sheet.
func (d Dataset) RowNumber(i int) int {
	if i < len(d.RowNumbers) {
		return d.RowNumbers[i]
	}
	return i + 2
}

// Record returns the row values ordered by header.
func (d Dataset) Record(i int) []string {
	record := make([]string, len(d.Headers))
	for j, header := range d.Headers {
		record[j] = d.Rows[i][header]
	}
	return record
}

func (d Dataset) validate(kind string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}

// Format identifies a rendered file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseFormat normalises a query value, defaulting to CSV.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	case FormatPDF:
		return FormatPDF, true
	default:
		return "", false
	}
}
