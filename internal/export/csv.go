// Package export renders ledger snapshots as tabular documents. All
// functions are pure: they work on an already-taken snapshot and never
// touch the live store.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"kakeibo/internal/core"
)

// Columns is the fixed export layout, one row per receipt in snapshot
// order.
var Columns = []string{"id", "date", "category", "description", "amount"}

// WriteCSV writes the snapshot as an RFC 4180 document with a header
// row. Fields containing the delimiter, quotes or line breaks come out
// quoted; amounts are plain integers without grouping separators.
func WriteCSV(w io.Writer, items []core.Receipt) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range items {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date.String(),
			r.Category,
			r.Description,
			strconv.FormatInt(r.Amount, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row id=%d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the document as a byte slice.
func CSV(items []core.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
