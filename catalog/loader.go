package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Mandatory catalog source columns. Header matching is case-insensitive.
const (
	colLabel      = "label"
	colActedUpon  = "informationelement:actedupon"
	colConsulted  = "informationelement:consulted"
	colParameters = "parameters"
	colSourceLink = "link to specification source code"

	// Optional.
	colGUID = "guid"
)

var mandatoryColumns = []string{colLabel, colActedUpon, colConsulted, colParameters, colSourceLink}

// Load parses a CSV catalog source into a Catalog. The source must carry the
// mandatory columns; their absence is a *FormatError. Rows with an empty
// label are skipped. Result order matches source order, and duplicate ids
// are kept in the list (ByID resolves them last-wins).
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Missing: mandatoryColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range mandatoryColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	cat := &Catalog{byID: make(map[string]*TestDefinition)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		label := cell(row, colLabel)
		if label == "" {
			continue
		}

		link := cell(row, colSourceLink)
		def := &TestDefinition{
			ID:         label,
			GUID:       cell(row, colGUID),
			Label:      label,
			ActedUpon:  splitIdentifiers(cell(row, colActedUpon)),
			Consulted:  splitIdentifiers(cell(row, colConsulted)),
			Parameters: parseParameters(cell(row, colParameters)),
			Library:    classifyLibrary(link),
			SourceLink: link,
		}
		cat.tests = append(cat.tests, def)
		cat.byID[def.ID] = def
	}

	return cat, nil
}
