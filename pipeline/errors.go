package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoApplicableTests reports a dataset with no columns satisfying any
// catalog test. It is a reportable condition, not a defect: an empty result
// table is valid output.
var ErrNoApplicableTests = errors.New("no catalog tests are applicable to the dataset")

// ExecutionTimeout reports an engine invocation that exceeded its deadline.
// The batch is not retried automatically; retry is the caller's decision.
type ExecutionTimeout struct {
	RequestID string
	Timeout   string
}

func (e *ExecutionTimeout) Error() string {
	return fmt.Sprintf("engine execution for request %s timed out after %s", e.RequestID, e.Timeout)
}

// ExecutionFailure reports an engine invocation that exited non-zero or
// produced an unreadable response. Stderr carries the engine's diagnostic
// output.
type ExecutionFailure struct {
	RequestID string
	ExitCode  int
	Stderr    string
	Err       error
}

func (e *ExecutionFailure) Error() string {
	msg := fmt.Sprintf("engine execution for request %s failed (exit %d)", e.RequestID, e.ExitCode)
	if diag := strings.TrimSpace(e.Stderr); diag != "" {
		msg += ": " + diag
	}
	return msg
}

func (e *ExecutionFailure) Unwrap() error { return e.Err }

// ResponseSchemaError reports a malformed or incomplete engine response.
// When only part of the response is malformed, PerTest names the affected
// tests and the well-formed remainder is still aggregated.
type ResponseSchemaError struct {
	RequestID string
	Reason    string
	PerTest   map[string]string
}

func (e *ResponseSchemaError) Error() string {
	if len(e.PerTest) > 0 {
		tests := make([]string, 0, len(e.PerTest))
		for id := range e.PerTest {
			tests = append(tests, id)
		}
		return fmt.Sprintf("malformed engine response for request %s: %s (tests: %s)",
			e.RequestID, e.Reason, strings.Join(tests, ", "))
	}
	return fmt.Sprintf("malformed engine response for request %s: %s", e.RequestID, e.Reason)
}
