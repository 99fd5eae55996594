package pipeline

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Prefilter is an optional record-level CEL predicate applied to a dataset
// before eligibility is computed. Records for which the expression does not
// evaluate to true are excluded from every test in the run. The expression
// sees one variable, `record`, a map of the record's lowercase column names
// to raw values, e.g. `record.country != "" && record.basisofrecord ==
// "PreservedSpecimen"`.
type Prefilter struct {
	expression string
	program    cel.Program
}

// CompilePrefilter compiles a CEL expression into a Prefilter. An empty
// expression yields a nil Prefilter, meaning no records are excluded.
func CompilePrefilter(expression string) (*Prefilter, error) {
	if expression == "" {
		return nil, nil
	}

	env, err := cel.NewEnv(cel.Variable("record", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("failed to create prefilter environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("prefilter compile error: %w", issues.Err())
	}

	prog, err := env.Program(ast, cel.CostLimit(1000000))
	if err != nil {
		return nil, fmt.Errorf("prefilter program creation error: %w", err)
	}

	return &Prefilter{expression: expression, program: prog}, nil
}

// Allow evaluates the predicate for one record. Evaluation errors and
// non-boolean results exclude the record rather than failing the run.
func (p *Prefilter) Allow(rec Record) bool {
	if p == nil {
		return true
	}

	fields := make(map[string]any, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}

	out, _, err := p.program.Eval(map[string]any{"record": fields})
	if err != nil {
		return false
	}
	allowed, ok := out.Value().(bool)
	return ok && allowed
}

// AllowAll evaluates the predicate over every record, returning one entry
// per record. A nil Prefilter returns nil, meaning no restriction.
func (p *Prefilter) AllowAll(ds *Dataset) []bool {
	if p == nil {
		return nil
	}
	allowed := make([]bool, len(ds.Records))
	for i, rec := range ds.Records {
		allowed[i] = p.Allow(rec)
	}
	return allowed
}
