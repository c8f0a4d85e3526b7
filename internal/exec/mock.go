package exec

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Call records a single invocation made against a MockExecutor.
type Call struct {
	Program string
	Args    []string
}

// MockExecutor is a deterministic Executor substitute for tests. It
// records every invocation and returns pre-programmed responses keyed
// first by exact (program, args) match, falling back to a match on the
// program's base name so tests do not need to know absolute tool paths.
type MockExecutor struct {
	mu             sync.Mutex
	responses      map[string]mockResponse
	spawnResponses map[string]int
	calls          []Call
}

type mockResponse struct {
	output string
	err    error
}

// NewMockExecutor creates an empty mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		responses:      make(map[string]mockResponse),
		spawnResponses: make(map[string]int),
	}
}

func mockKey(program string, args []string) string {
	return program + " " + strings.Join(args, " ")
}

// WithSuccess programs a successful response for the given command.
func (m *MockExecutor) WithSuccess(program string, args []string, output string) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[mockKey(program, args)] = mockResponse{output: output}
	return m
}

// WithError programs a failure for the given command.
func (m *MockExecutor) WithError(program string, args []string, errText string) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[mockKey(program, args)] = mockResponse{err: errors.New(errText)}
	return m
}

// WithSpawnResponse programs a PID for a spawned command.
func (m *MockExecutor) WithSpawnResponse(program string, args []string, pid int) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawnResponses[mockKey(program, args)] = pid
	return m
}

// Calls returns a copy of the recorded invocation history.
func (m *MockExecutor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// ClearCalls resets the invocation history.
func (m *MockExecutor) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockExecutor) record(program string, args []string) {
	argsCopy := make([]string, len(args))
	copy(argsCopy, args)
	m.calls = append(m.calls, Call{Program: program, Args: argsCopy})
}

func (m *MockExecutor) lookup(program string, args []string) (mockResponse, bool) {
	if resp, ok := m.responses[mockKey(program, args)]; ok {
		return resp, true
	}
	// Fall back to matching by the program's base name so tests can
	// program "avdmanager" and match "/sdk/cmdline-tools/bin/avdmanager".
	base := filepath.Base(program)
	if base != program {
		if resp, ok := m.responses[mockKey(base, args)]; ok {
			return resp, true
		}
	}
	return mockResponse{}, false
}

// Run implements Executor.
func (m *MockExecutor) Run(_ context.Context, program string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(program, args)

	resp, ok := m.lookup(program, args)
	if !ok {
		return "", fmt.Errorf("no mock response for: %s", mockKey(program, args))
	}
	if resp.err != nil {
		return "", &CommandError{
			Program:  program,
			Args:     args,
			ExitCode: 1,
			Output:   resp.err.Error(),
			Err:      resp.err,
		}
	}
	return resp.output, nil
}

// Spawn implements Executor.
func (m *MockExecutor) Spawn(_ context.Context, program string, args ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(program, args)

	if pid, ok := m.spawnResponses[mockKey(program, args)]; ok {
		return pid, nil
	}
	base := filepath.Base(program)
	if base != program {
		if pid, ok := m.spawnResponses[mockKey(base, args)]; ok {
			return pid, nil
		}
	}
	return 0, fmt.Errorf("no mock spawn response for: %s", mockKey(program, args))
}

// RunWithRetry implements Executor. The mock does not simulate flaky
// attempts; it delegates to Run once.
func (m *MockExecutor) RunWithRetry(ctx context.Context, program string, args []string, _ int) (string, error) {
	return m.Run(ctx, program, args...)
}

// RunIgnoringErrors implements Executor with the same ignore-pattern
// semantics as the real Runner.
func (m *MockExecutor) RunIgnoringErrors(ctx context.Context, program string, args []string, ignorePatterns []string) (string, error) {
	output, err := m.Run(ctx, program, args...)
	if err == nil {
		return output, nil
	}
	if matchesIgnorePattern(err.Error(), ignorePatterns) {
		return output, nil
	}
	return output, err
}
