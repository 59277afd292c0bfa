package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"kakeibo/internal/core"
)

func exportFixture() []core.Receipt {
	return []core.Receipt{
		{ID: 1, Date: core.NewDate(2023, 4, 1), Category: "食費", Description: "スーパー", Amount: 2500},
		{ID: 2, Date: core.NewDate(2023, 4, 2), Category: "日用品", Description: `with, comma and "quote"`, Amount: -300},
	}
}

func TestCSVHeaderAndOrder(t *testing.T) {
	data, err := CSV(exportFixture())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "id,date,category,description,amount" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,2023-04-01,食費") {
		t.Fatalf("row 1 = %q", lines[1])
	}
}

func TestCSVQuotingRoundTrip(t *testing.T) {
	items := exportFixture()
	data, err := CSV(items)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d", len(records))
	}
	// The embedded comma and quotes survive the round trip exactly.
	if got := records[2][3]; got != items[1].Description {
		t.Fatalf("description round trip: %q != %q", got, items[1].Description)
	}
	if got := records[2][4]; got != "-300" {
		t.Fatalf("amount rendered as %q", got)
	}
}

func TestCSVEmptySnapshot(t *testing.T) {
	data, err := CSV(nil)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if strings.TrimSpace(string(data)) != "id,date,category,description,amount" {
		t.Fatalf("empty snapshot should yield header only, got %q", data)
	}
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(exportFixture())
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("entries")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][4] != "amount" {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][2] != "食費" || rows[1][4] != "2500" {
		t.Fatalf("data row = %v", rows[1])
	}
}
