package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bdqkit/bdqkit/catalog"
	"github.com/bdqkit/bdqkit/terms"
)

// Pipeline binds a loaded catalog, an alias resolver, and an engine into a
// runnable unit. The catalog and resolver are read-only after construction,
// so one Pipeline may serve concurrent dataset runs; each run gets its own
// batch and requestId.
type Pipeline struct {
	catalog  *catalog.Catalog
	resolver *terms.Resolver
	engine   Engine
	log      *slog.Logger
}

// Options configures one dataset run.
type Options struct {
	// Timeout bounds the single engine invocation. Zero means no deadline
	// beyond the caller's context.
	Timeout time.Duration
	// Prefilter is an optional CEL predicate; see CompilePrefilter.
	Prefilter string
	// TestIDs optionally restricts the run to a subset of catalog tests.
	// Unknown ids are ignored. Empty means the whole catalog.
	TestIDs []string
}

// RunResult is the terminal artifact of one dataset run.
type RunResult struct {
	RunID      string        `json:"runId"`
	RequestID  string        `json:"requestId"`
	Dataset    string        `json:"dataset"`
	Rows       []ResultRow   `json:"rows"`
	Summary    *Summary      `json:"summary"`
	Applicable []Applicable  `json:"-"`
	Elapsed    time.Duration `json:"-"`
}

// New creates a Pipeline. log may be nil, in which case the default slog
// logger is used.
func New(cat *catalog.Catalog, resolver *terms.Resolver, engine Engine, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{catalog: cat, resolver: resolver, engine: engine, log: log}
}

// Catalog returns the pipeline's loaded catalog.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Run executes the full pipeline for one dataset: applicability filtering,
// request building, one engine round-trip, and aggregation.
//
// When no test is applicable the engine is never invoked and Run returns an
// empty RunResult together with ErrNoApplicableTests, which callers should
// report as a user-facing condition rather than a failure. A partial
// *ResponseSchemaError is likewise returned alongside the rows that did
// aggregate.
func (p *Pipeline) Run(ctx context.Context, ds *Dataset, opts Options) (*RunResult, error) {
	started := time.Now()

	result := &RunResult{
		RunID:     uuid.NewString(),
		RequestID: uuid.NewString(),
		Dataset:   ds.Name,
		Rows:      []ResultRow{},
		Summary: &Summary{
			ByStatus: map[string]int{},
			ByResult: map[string]int{},
			ByTest:   map[string]int{},
		},
	}

	pre, err := CompilePrefilter(opts.Prefilter)
	if err != nil {
		return nil, err
	}

	tests := p.selectTests(opts.TestIDs)
	apps := Filter(tests, p.resolver, ds, pre.AllowAll(ds))
	result.Applicable = apps

	p.log.Debug("applicability computed",
		"runId", result.RunID,
		"dataset", ds.Name,
		"catalogTests", len(tests),
		"applicable", len(apps))

	if len(apps) == 0 {
		result.Elapsed = time.Since(started)
		return result, ErrNoApplicableTests
	}

	batch := BuildBatch(apps, ds, result.RequestID)

	p.log.Info("dispatching batch",
		"runId", result.RunID,
		"requestId", batch.RequestID,
		"tests", len(batch.Tests),
		"records", len(ds.Records))

	raw, err := p.engine.Execute(ctx, batch, opts.Timeout)
	if err != nil {
		p.log.Error("engine execution failed",
			"runId", result.RunID,
			"requestId", batch.RequestID,
			"error", err)
		return nil, err
	}

	rows, summary, err := Aggregate(raw, batch)
	if rows != nil {
		result.Rows = rows
	}
	if summary != nil {
		result.Summary = summary
	}
	result.Elapsed = time.Since(started)

	if err != nil {
		p.log.Error("response aggregation flagged",
			"runId", result.RunID,
			"requestId", batch.RequestID,
			"error", err)
		return result, err
	}

	p.log.Info("run complete",
		"runId", result.RunID,
		"requestId", batch.RequestID,
		"rows", summary.Rows,
		"elapsed", result.Elapsed.String())

	return result, nil
}

// selectTests returns the catalog tests to run, restricted to ids when ids
// is non-empty.
func (p *Pipeline) selectTests(ids []string) []*catalog.TestDefinition {
	all := p.catalog.Tests()
	if len(ids) == 0 {
		return all
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	subset := make([]*catalog.TestDefinition, 0, len(ids))
	for _, t := range all {
		if _, ok := want[t.ID]; ok {
			subset = append(subset, t)
		}
	}
	return subset
}
