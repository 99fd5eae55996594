// Package catalog loads the TG2 test-definition catalog from its tabular
// source into typed, immutable test records.
package catalog

import (
	"fmt"
	"strings"
)

// TestDefinition is one catalog entry. Definitions are created at load time
// and never modified afterward.
type TestDefinition struct {
	ID         string
	GUID       string
	Label      string
	ActedUpon  []string
	Consulted  []string
	Parameters map[string]string
	Library    string
	SourceLink string
}

// Catalog holds the loaded test definitions in source order.
type Catalog struct {
	tests []*TestDefinition
	byID  map[string]*TestDefinition
}

// Tests returns the definitions in source order. Callers must not modify
// the returned slice or its elements.
func (c *Catalog) Tests() []*TestDefinition {
	return c.tests
}

// ByID returns the definition for the given test id. The loader permits
// duplicate ids; when they occur the last occurrence in source order wins.
func (c *Catalog) ByID(id string) (*TestDefinition, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Len returns the number of loaded definitions.
func (c *Catalog) Len() int {
	return len(c.tests)
}

// FormatError reports a catalog source whose schema is missing mandatory
// columns. It aborts the load.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("catalog source is missing mandatory columns: %s", strings.Join(e.Missing, ", "))
}

// libraryMarkers classifies a test's source-reference link into the rule
// library that implements it. Evaluated in order; first substring match wins.
var libraryMarkers = []struct {
	marker  string
	library string
}{
	{"event_date_qc", "event_date_qc"},
	{"geo_ref_qc", "geo_ref_qc"},
	{"sci_name_qc", "sci_name_qc"},
	{"rec_occur_qc", "rec_occur_qc"},
}

// LibraryUnknown tags tests whose source link matches no known rule library.
const LibraryUnknown = "unknown"

// classifyLibrary maps a source-reference string to a library tag.
func classifyLibrary(sourceLink string) string {
	for _, m := range libraryMarkers {
		if strings.Contains(sourceLink, m.marker) {
			return m.library
		}
	}
	return LibraryUnknown
}

// splitIdentifiers splits a comma-separated identifier list into trimmed,
// non-empty tokens. Empty input yields an empty (non-nil) list.
func splitIdentifiers(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// parseParameters parses a comma-separated parameter list. Each token is
// either "name=default" or a bare name with an empty default. Empty input
// yields an empty map.
func parseParameters(raw string) map[string]string {
	params := map[string]string{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if i := strings.Index(tok, "="); i >= 0 {
			name := strings.TrimSpace(tok[:i])
			if name != "" {
				params[name] = strings.TrimSpace(tok[i+1:])
			}
			continue
		}
		params[tok] = ""
	}
	return params
}
