package pipeline

import (
	"encoding/json"
	"fmt"
)

// Verdict status values in the engine's vocabulary, plus the locally
// assigned status for tests the engine never evaluated.
const (
	StatusRun                 = "RUN"
	StatusInternalPrereqNoMet = "INTERNAL_PREREQUISITES_NOT_MET"
	StatusExternalPrereqNoMet = "EXTERNAL_PREREQUISITES_NOT_MET"
	StatusNotEvaluated        = "NOT_EVALUATED"
)

// TupleResult is one verdict for one record under one test, as produced by
// the engine.
type TupleResult struct {
	Status  string `json:"status"`
	Result  string `json:"result"`
	Comment string `json:"comment,omitempty"`
}

// ResultRow is one row of the output table: one (record, test) pair.
type ResultRow struct {
	RecordID string `json:"recordId"`
	TestID   string `json:"testId"`
	Status   string `json:"status"`
	Result   string `json:"result"`
	Comment  string `json:"comment,omitempty"`
}

// Summary holds counts derived read-only from the assembled rows, plus the
// per-test anomalies surfaced during aggregation. It is a reporting
// convenience, not part of the correctness contract.
type Summary struct {
	Rows         int               `json:"rows"`
	ByStatus     map[string]int    `json:"byStatus"`
	ByResult     map[string]int    `json:"byResult"`
	ByTest       map[string]int    `json:"byTest"`
	NotEvaluated []string          `json:"notEvaluated,omitempty"`
	TestErrors   map[string]string `json:"testErrors,omitempty"`
}

type engineResults struct {
	TupleResults []TupleResult `json:"tupleResults"`
}

type engineResponse struct {
	RequestID string                   `json:"requestId"`
	Results   map[string]engineResults `json:"results"`
	Errors    map[string]string        `json:"errors"`
}

// Aggregate parses the engine's raw response for batch and flattens it into
// one ResultRow per (record, test), in the request's record order.
//
// Structural failures of the envelope (undecodable JSON, requestId mismatch)
// return a *ResponseSchemaError and no rows. A per-test malformation (tuple
// count not matching the request) flags that test in the returned
// *ResponseSchemaError while the well-formed remainder is still aggregated,
// so callers get partial rows alongside the error. Tests the engine omitted
// from results are emitted as NOT_EVALUATED rows and listed in the summary,
// never silently dropped.
func Aggregate(raw []byte, batch *ExecutionBatch) ([]ResultRow, *Summary, error) {
	var resp engineResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, &ResponseSchemaError{
			RequestID: batch.RequestID,
			Reason:    fmt.Sprintf("undecodable response envelope: %v", err),
		}
	}
	if resp.RequestID != batch.RequestID {
		return nil, nil, &ResponseSchemaError{
			RequestID: batch.RequestID,
			Reason:    fmt.Sprintf("response correlates to request %q", resp.RequestID),
		}
	}

	summary := &Summary{
		ByStatus:   make(map[string]int),
		ByResult:   make(map[string]int),
		ByTest:     make(map[string]int),
		TestErrors: make(map[string]string),
	}
	malformed := make(map[string]string)

	var rows []ResultRow
	for _, req := range batch.Tests {
		if msg, ok := resp.Errors[req.TestID]; ok {
			summary.TestErrors[req.TestID] = msg
		}

		res, ok := resp.Results[req.TestID]
		if !ok {
			// Requested but not evaluated: a distinct, reported condition.
			summary.NotEvaluated = append(summary.NotEvaluated, req.TestID)
			for _, recID := range req.recordIDs {
				rows = append(rows, ResultRow{
					RecordID: recID,
					TestID:   req.TestID,
					Status:   StatusNotEvaluated,
				})
			}
			continue
		}

		if len(res.TupleResults) != len(req.recordIDs) {
			malformed[req.TestID] = fmt.Sprintf(
				"got %d tuple results for %d request tuples",
				len(res.TupleResults), len(req.recordIDs))
			continue
		}

		for i, tr := range res.TupleResults {
			rows = append(rows, ResultRow{
				RecordID: req.recordIDs[i],
				TestID:   req.TestID,
				Status:   tr.Status,
				Result:   tr.Result,
				Comment:  tr.Comment,
			})
		}
	}

	for _, row := range rows {
		summary.Rows++
		summary.ByStatus[row.Status]++
		if row.Result != "" {
			summary.ByResult[row.Result]++
		}
		summary.ByTest[row.TestID]++
	}

	if len(malformed) > 0 {
		return rows, summary, &ResponseSchemaError{
			RequestID: batch.RequestID,
			Reason:    "tuple results do not align with request tuples",
			PerTest:   malformed,
		}
	}

	return rows, summary, nil
}
