package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func smallBatch(requestID string) *ExecutionBatch {
	return batchWith(requestID, requestFor("T1", "occ-1"))
}

func TestSubprocessEngineExecute(t *testing.T) {
	// The fake engine drains stdin and emits a fixed response.
	engine := NewSubprocessEngine("sh", "-c",
		`cat > /dev/null; printf '{"requestId":"req-1","results":{}}'`)

	raw, err := engine.Execute(context.Background(), smallBatch("req-1"), 10*time.Second)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(string(raw), `"requestId":"req-1"`) {
		t.Errorf("Execute() returned %q", raw)
	}
}

func TestSubprocessEngineTimeout(t *testing.T) {
	engine := NewSubprocessEngine("sh", "-c", "sleep 10")

	_, err := engine.Execute(context.Background(), smallBatch("req-slow"), 100*time.Millisecond)

	var timeout *ExecutionTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("Execute() error = %v, want *ExecutionTimeout", err)
	}
	if timeout.RequestID != "req-slow" {
		t.Errorf("timeout RequestID = %q, want req-slow", timeout.RequestID)
	}
}

func TestSubprocessEngineNonZeroExit(t *testing.T) {
	engine := NewSubprocessEngine("sh", "-c",
		`cat > /dev/null; echo "engine blew up" >&2; exit 3`)

	_, err := engine.Execute(context.Background(), smallBatch("req-fail"), 10*time.Second)

	var failure *ExecutionFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Execute() error = %v, want *ExecutionFailure", err)
	}
	if failure.RequestID != "req-fail" {
		t.Errorf("failure RequestID = %q", failure.RequestID)
	}
	if failure.ExitCode != 3 {
		t.Errorf("failure ExitCode = %d, want 3", failure.ExitCode)
	}
	if !strings.Contains(failure.Stderr, "engine blew up") {
		t.Errorf("failure Stderr = %q, want captured diagnostics", failure.Stderr)
	}
}

func TestSubprocessEngineMissingCommand(t *testing.T) {
	engine := NewSubprocessEngine("/nonexistent/engine-binary")

	_, err := engine.Execute(context.Background(), smallBatch("req-x"), time.Second)

	var failure *ExecutionFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Execute() error = %v, want *ExecutionFailure", err)
	}
}

func TestSubprocessEngineReceivesBatchOnStdin(t *testing.T) {
	// The fake engine echoes stdin back, so the raw response is the request
	// payload itself.
	engine := NewSubprocessEngine("cat")

	batch := smallBatch("req-echo")
	raw, err := engine.Execute(context.Background(), batch, 10*time.Second)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(string(raw), `"requestId":"req-echo"`) {
		t.Errorf("engine did not receive the serialized batch, got %q", raw)
	}
	if !strings.Contains(string(raw), `"testId":"T1"`) {
		t.Errorf("serialized batch missing test payload, got %q", raw)
	}
}

func TestSubprocessEngineCallerCancellation(t *testing.T) {
	engine := NewSubprocessEngine("sh", "-c", "sleep 10")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := engine.Execute(ctx, smallBatch("req-cancel"), 10*time.Second)
	if err == nil {
		t.Fatal("Execute() should fail when the caller cancels")
	}
	// Caller cancellation is not a timeout of the engine.
	var timeout *ExecutionTimeout
	if errors.As(err, &timeout) {
		t.Error("caller cancellation should not be reported as *ExecutionTimeout")
	}
}
