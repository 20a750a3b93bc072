package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const quotesSheet = "Quotes"

var quoteHeaders = []string{
	"ID", "Session", "Product", "Base Price", "Special Fields", "Total", "Created At",
}

// ExportQuotesToExcel writes quotes to dir/filename.xlsx and returns the path.
func ExportQuotesToExcel(quotes []Quote, dir, filename string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(quotesSheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	for col, header := range quoteHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(quotesSheet, cell, header)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(quoteHeaders), 1)
		f.SetCellStyle(quotesSheet, "A1", last, style)
	}

	for row, q := range quotes {
		data := []interface{}{
			q.ID,
			q.SessionID,
			q.ProductName,
			q.BasePrice.StringFixed(2),
			describeLines(q.Lines),
			q.Total.StringFixed(2),
			q.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(quotesSheet, cell, value)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, filename+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func describeLines(lines QuoteLines) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Contribution.IsZero() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s +%s", l.Label, l.Contribution.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}
