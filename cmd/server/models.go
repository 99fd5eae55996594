package main

import "github.com/bdqkit/bdqkit/pipeline"

// runRequest is the POST /api/v1/runs payload: an in-memory dataset plus
// run options.
type runRequest struct {
	Dataset   string     `json:"dataset"`
	IDColumn  string     `json:"idColumn"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Prefilter string     `json:"prefilter,omitempty"`
	Tests     []string   `json:"tests,omitempty"`
}

// runResponse is the synchronous run result returned to the caller.
type runResponse struct {
	RunID     string               `json:"runId"`
	RequestID string               `json:"requestId"`
	Status    string               `json:"status"`
	Rows      []pipeline.ResultRow `json:"rows"`
	Summary   *pipeline.Summary    `json:"summary"`
	Warning   string               `json:"warning,omitempty"`
}

// testInfo is one catalog entry in the GET /api/v1/tests listing.
type testInfo struct {
	ID         string            `json:"id"`
	GUID       string            `json:"guid,omitempty"`
	ActedUpon  []string          `json:"actedUpon"`
	Consulted  []string          `json:"consulted"`
	Parameters map[string]string `json:"parameters"`
	Library    string            `json:"library"`
}
