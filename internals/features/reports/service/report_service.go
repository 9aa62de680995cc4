package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	helper "shuleni_backend/internals/helpers"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

// File is a rendered report ready for download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Generate renders tabular records into the requested format. Column order
// comes from the first record's keys, sorted, and every record is rendered
// against that header set.
func Generate(title, format string, records []map[string]any) (*File, error) {
	headers := headerSet(records)

	var (
		data []byte
		ext  string
		ct   string
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = renderCSV(headers, records)
		ext, ct = ".csv", "text/csv"
	case FormatJSON:
		data, err = sonic.MarshalIndent(records, "", "  ")
		ext, ct = ".json", "application/json"
	case FormatXLSX:
		data, err = renderXLSX(title, headers, records)
		ext, ct = ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		data, err = renderPDF(title, headers, records)
		ext, ct = ".pdf", "application/pdf"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Name:        helper.GenerateSlug(title) + ext,
		ContentType: ct,
		Data:        data,
	}, nil
}

func headerSet(records []map[string]any) []string {
	if len(records) == 0 {
		return nil
	}
	headers := make([]string, 0, len(records[0]))
	for k := range records[0] {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	return headers
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func renderCSV(headers []string, records []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = cell(rec[h])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(title string, headers []string, records []map[string]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, col+"1", h); err != nil {
			return nil, err
		}
	}
	for r, rec := range records {
		for i, h := range headers {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), cell(rec[h])); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(title string, headers []string, records []map[string]any) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	colWidth := 277.0
	if len(headers) > 0 {
		colWidth = 277.0 / float64(len(headers))
	}

	pdf.SetFont("Arial", "B", 9)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, rec := range records {
		for _, h := range headers {
			pdf.CellFormat(colWidth, 6, cell(rec[h]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
