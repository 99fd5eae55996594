package pipeline

import (
	"strings"

	"github.com/bdqkit/bdqkit/catalog"
	"github.com/bdqkit/bdqkit/terms"
)

// Decision records why a test is or is not applicable to a column set.
type Decision struct {
	Applicable bool
	// Matched maps each resolved actedUpon identifier to the dataset column
	// that satisfied it.
	Matched map[string]string
	// ConsultedMatched maps resolved consulted identifiers to columns.
	// Consulted terms are best-effort and never gate applicability.
	ConsultedMatched map[string]string
	// Missing lists actedUpon identifiers that failed to resolve.
	Missing []string
}

// Applicable pairs a test with its decision and the indices of records
// eligible for it.
type Applicable struct {
	Test     *catalog.TestDefinition
	Decision Decision
	// EligibleRecords holds indices into the dataset's record slice, in
	// record order.
	EligibleRecords []int
}

// Decide computes the applicability decision for one test against a column
// set. It never fails: unresolvable identifiers are recorded as missing.
func Decide(test *catalog.TestDefinition, resolver *terms.Resolver, columns terms.ColumnSet) Decision {
	d := Decision{
		Matched:          make(map[string]string, len(test.ActedUpon)),
		ConsultedMatched: make(map[string]string, len(test.Consulted)),
	}

	for _, id := range test.ActedUpon {
		col, ok := resolver.Resolve(id, columns)
		if !ok {
			d.Missing = append(d.Missing, id)
			continue
		}
		d.Matched[id] = col
	}
	for _, id := range test.Consulted {
		if col, ok := resolver.Resolve(id, columns); ok {
			d.ConsultedMatched[id] = col
		}
	}

	d.Applicable = len(d.Missing) == 0
	return d
}

// Filter computes the applicable subset of tests for a dataset and, per
// applicable test, which records are eligible. Pass one decides
// applicability from the column set alone; pass two scans records only for
// tests that survived pass one. An empty result is a valid outcome, not an
// error.
//
// allowed optionally restricts eligibility to a subset of records (a true
// entry per eligible index); nil means all records are allowed.
func Filter(tests []*catalog.TestDefinition, resolver *terms.Resolver, ds *Dataset, allowed []bool) []Applicable {
	// Pass 1: applicability, independent of record count.
	out := make([]Applicable, 0, len(tests))
	for _, test := range tests {
		d := Decide(test, resolver, ds.Columns)
		if !d.Applicable {
			continue
		}
		out = append(out, Applicable{Test: test, Decision: d})
	}

	// Pass 2: per-record eligibility for applicable tests only.
	for i := range out {
		app := &out[i]
		app.EligibleRecords = eligibleRecords(app, ds, allowed)
	}

	return out
}

// eligibleRecords returns the indices of records whose resolved actedUpon
// values are all non-empty after trimming. Tests with no actedUpon terms
// treat every allowed record as eligible.
func eligibleRecords(app *Applicable, ds *Dataset, allowed []bool) []int {
	idx := make([]int, 0, len(ds.Records))
	for n, rec := range ds.Records {
		if allowed != nil && (n >= len(allowed) || !allowed[n]) {
			continue
		}
		ok := true
		for _, id := range app.Test.ActedUpon {
			col := app.Decision.Matched[id]
			if strings.TrimSpace(rec.Fields[col]) == "" {
				ok = false
				break
			}
		}
		if ok {
			idx = append(idx, n)
		}
	}
	return idx
}
