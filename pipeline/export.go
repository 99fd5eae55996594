package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes rows as the tabular output format: a header row followed
// by one line per (record, test) pair.
func WriteCSV(w io.Writer, rows []ResultRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"record_id", "test_id", "status", "result", "comment"}); err != nil {
		return fmt.Errorf("failed to write result header: %w", err)
	}
	for _, row := range rows {
		rec := []string{row.RecordID, row.TestID, row.Status, row.Result, row.Comment}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
