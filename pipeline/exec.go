package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Engine is the boundary to the external rule-execution process. Execute
// performs exactly one attempt for one batch; retry and chunking policy
// belong to the caller.
type Engine interface {
	Execute(ctx context.Context, batch *ExecutionBatch, timeout time.Duration) ([]byte, error)
}

// SubprocessEngine invokes the engine as a child process, writing the batch
// as JSON to stdin and reading the response from stdout. Stderr is captured
// for diagnostics.
type SubprocessEngine struct {
	Command string
	Args    []string
}

// NewSubprocessEngine returns an engine that runs the given command per
// batch.
func NewSubprocessEngine(command string, args ...string) *SubprocessEngine {
	return &SubprocessEngine{Command: command, Args: args}
}

// Execute serializes the batch, runs the engine process, and blocks until it
// exits or timeout elapses. On timeout it returns *ExecutionTimeout carrying
// the batch's requestId; on a non-zero exit it returns *ExecutionFailure
// with the captured stderr. The response bytes are returned unparsed; a
// response that fails to decode is the aggregator's *ResponseSchemaError,
// not this layer's concern.
func (e *SubprocessEngine) Execute(ctx context.Context, batch *ExecutionBatch, timeout time.Duration) ([]byte, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize batch %s: %w", batch.RequestID, err)
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, &ExecutionTimeout{
				RequestID: batch.RequestID,
				Timeout:   timeout.String(),
			}
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ExecutionFailure{
			RequestID: batch.RequestID,
			ExitCode:  exitCode,
			Stderr:    stderr.String(),
			Err:       err,
		}
	}

	return stdout.Bytes(), nil
}
