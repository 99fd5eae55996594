// Package pipeline orchestrates one data-quality run: deciding which catalog
// tests apply to a dataset, building execution requests, dispatching them to
// the external rule-execution engine, and flattening the engine's verdicts
// into a result table.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/bdqkit/bdqkit/terms"
)

// Record is one occurrence row: a stable identifier plus its field values
// keyed by lowercase column name.
type Record struct {
	ID     string
	Fields map[string]string
}

// Dataset is an in-memory record batch with its derived column set.
type Dataset struct {
	Name    string
	Columns terms.ColumnSet
	Records []Record
}

// NewDataset builds a Dataset from a header row and data rows. idColumn
// names the identifier column used for result attribution; matching is
// case-insensitive. Rows shorter than the header are padded with empty
// values, longer rows are truncated.
func NewDataset(name, idColumn string, header []string, rows [][]string) (*Dataset, error) {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idIdx := -1
	idCol := strings.ToLower(strings.TrimSpace(idColumn))
	for i, c := range cols {
		if c == idCol {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("identifier column %q not found in dataset header", idColumn)
	}

	ds := &Dataset{
		Name:    name,
		Columns: terms.NewColumnSet(header),
		Records: make([]Record, 0, len(rows)),
	}
	for n, row := range rows {
		rec := Record{Fields: make(map[string]string, len(cols))}
		for i, c := range cols {
			if c == "" {
				continue
			}
			if i < len(row) {
				rec.Fields[c] = row[i]
			} else {
				rec.Fields[c] = ""
			}
		}
		rec.ID = rec.Fields[idCol]
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", n+1)
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}
