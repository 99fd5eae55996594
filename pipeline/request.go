package pipeline

// TestRequest is one applicable test's payload in the engine wire format.
// Tuples preserve record order; every tuple has arity
// len(actedUpon)+len(consulted), with absent values passed as empty strings
// so arity stays fixed.
type TestRequest struct {
	TestID     string            `json:"testId"`
	ActedUpon  []string          `json:"actedUpon"`
	Consulted  []string          `json:"consulted"`
	Parameters map[string]string `json:"parameters"`
	Tuples     [][]string        `json:"tuples"`

	// recordIDs maps tuple position to record identifier for result
	// attribution. Not part of the wire format.
	recordIDs []string
}

// RecordIDs returns the tuple-position to record-identifier index retained
// for the aggregator.
func (r *TestRequest) RecordIDs() []string {
	return r.recordIDs
}

// ExecutionBatch is the unit of one round-trip to the engine: a correlation
// id plus the requests sent together.
type ExecutionBatch struct {
	RequestID string         `json:"requestId"`
	Tests     []*TestRequest `json:"tests"`
}

// BuildBatch converts the applicable tests and their eligible records into
// an ExecutionBatch. Values pass through as their source representation with
// no type coercion; parameters are copied verbatim from the definition.
func BuildBatch(apps []Applicable, ds *Dataset, requestID string) *ExecutionBatch {
	batch := &ExecutionBatch{
		RequestID: requestID,
		Tests:     make([]*TestRequest, 0, len(apps)),
	}

	for _, app := range apps {
		req := &TestRequest{
			TestID:     app.Test.ID,
			ActedUpon:  app.Test.ActedUpon,
			Consulted:  app.Test.Consulted,
			Parameters: copyParameters(app.Test.Parameters),
			Tuples:     make([][]string, 0, len(app.EligibleRecords)),
			recordIDs:  make([]string, 0, len(app.EligibleRecords)),
		}

		arity := len(app.Test.ActedUpon) + len(app.Test.Consulted)
		for _, n := range app.EligibleRecords {
			rec := ds.Records[n]
			tuple := make([]string, 0, arity)
			for _, id := range app.Test.ActedUpon {
				tuple = append(tuple, rec.Fields[app.Decision.Matched[id]])
			}
			for _, id := range app.Test.Consulted {
				if col, ok := app.Decision.ConsultedMatched[id]; ok {
					tuple = append(tuple, rec.Fields[col])
				} else {
					tuple = append(tuple, "")
				}
			}
			req.Tuples = append(req.Tuples, tuple)
			req.recordIDs = append(req.recordIDs, rec.ID)
		}

		batch.Tests = append(batch.Tests, req)
	}

	return batch
}

func copyParameters(src map[string]string) map[string]string {
	params := make(map[string]string, len(src))
	for k, v := range src {
		params[k] = v
	}
	return params
}
