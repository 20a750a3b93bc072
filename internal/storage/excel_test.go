package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"special-fields/internal/pricing"
)

func TestExportQuotesToExcel(t *testing.T) {
	p := pricing.LoadExampleProduct()
	sel := pricing.Selections{
		pricing.ExampleEngravingFieldID: pricing.TextValue("HELLO"),
		pricing.ExampleSizeFieldID:      pricing.OptionValue(pricing.ExampleSizeLargeID),
	}
	q := NewQuote("sess-1", p.Name, pricing.CalculateBreakdown(p, sel), time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC))
	q.ID = 7

	dir := t.TempDir()
	path, err := ExportQuotesToExcel([]Quote{q}, dir, "quotes")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if path != filepath.Join(dir, "quotes.xlsx") {
		t.Errorf("unexpected path %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "ID"},
		{"A2", "7"},
		{"B2", "sess-1"},
		{"C2", "Custom Engraved Mug"},
		{"D2", "25.00"},
		{"E2", "Engraving text +2.50; Size +4.00"},
		{"F2", "31.50"},
		{"G2", "2026-01-02 15:04"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(quotesSheet, tt.cell)
		if err != nil {
			t.Fatalf("read %s: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestQuoteLines_ScanValue(t *testing.T) {
	p := pricing.LoadExampleProduct()
	q := NewQuote("", p.Name, pricing.CalculateBreakdown(p, nil), time.Now())

	v, err := q.Lines.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var back QuoteLines
	if err := back.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(back) != len(q.Lines) || back[0].Label != q.Lines[0].Label {
		t.Errorf("lines changed: %+v", back)
	}

	if err := back.Scan(42); err == nil {
		t.Errorf("expected error for unsupported type")
	}
}
