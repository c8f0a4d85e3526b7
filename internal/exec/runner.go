package exec

import (
	"bytes"
	"context"
	"errors"
	osexec "os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/wasabeef/emu-sub003/internal/logging"
)

// Executor abstracts external command execution so device managers can be
// tested with a deterministic substitute.
type Executor interface {
	// Run executes a command, waits for it to complete, and returns its
	// captured output.
	Run(ctx context.Context, program string, args ...string) (string, error)

	// Spawn launches a command detached from the caller and returns its
	// process ID without waiting for completion.
	Spawn(ctx context.Context, program string, args ...string) (int, error)

	// RunWithRetry calls Run up to retries+1 times, returning the last
	// error if all attempts fail.
	RunWithRetry(ctx context.Context, program string, args []string, retries int) (string, error)

	// RunIgnoringErrors calls Run; a failure whose error text matches one
	// of ignorePatterns is converted into a success with the output
	// captured so far.
	RunIgnoringErrors(ctx context.Context, program string, args []string, ignorePatterns []string) (string, error)
}

// Config holds tunables for the real command runner.
type Config struct {
	// Timeout is the maximum time a single Run invocation may take.
	// Default: 2 minutes.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Minute,
	}
}

// Runner executes commands via os/exec. It is the production Executor.
type Runner struct {
	config Config
}

// NewRunner creates a Runner with the given configuration.
func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

// NewDefaultRunner creates a Runner with DefaultConfig.
func NewDefaultRunner() *Runner {
	return NewRunner(DefaultConfig())
}

// Run executes the command and returns combined stdout+stderr output.
// A non-zero exit, spawn failure, or timeout yields a *CommandError.
func (r *Runner) Run(ctx context.Context, program string, args ...string) (string, error) {
	logging.LogCommand(program, args)

	runCtx := ctx
	var cancel context.CancelFunc
	if r.config.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := osexec.CommandContext(runCtx, program, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		exitCode := -1
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if runCtx.Err() == context.DeadlineExceeded {
			err = context.DeadlineExceeded
		}
		logging.Debug("command failed",
			zap.String("program", program),
			zap.Int("exit_code", exitCode),
			zap.String("output", output),
		)
		return output, &CommandError{
			Program:  program,
			Args:     args,
			ExitCode: exitCode,
			Output:   output,
			Err:      err,
		}
	}

	logging.Debug("command succeeded",
		zap.String("program", program),
		zap.Int("output_size", len(output)),
	)
	return output, nil
}

// Spawn launches the command detached with all stdio redirected to null
// and returns the PID. The process outlives the caller; its exit status
// is not monitored.
func (r *Runner) Spawn(ctx context.Context, program string, args ...string) (int, error) {
	logging.LogCommand(program, args)

	cmd := osexec.Command(program, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return 0, &CommandError{
			Program: program,
			Args:    args,
			Err:     err,
		}
	}

	pid := cmd.Process.Pid

	// Reap the child when it eventually exits so it does not linger as a
	// zombie while emu keeps running.
	go func() { _ = cmd.Wait() }()

	return pid, nil
}

// RunWithRetry calls Run up to retries+1 times. Retries are immediate;
// they exist to absorb transient tool flakiness (a platform tool still
// initializing), not network latency.
func (r *Runner) RunWithRetry(ctx context.Context, program string, args []string, retries int) (string, error) {
	var output string
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		output, err = r.Run(ctx, program, args...)
		if err == nil {
			return output, nil
		}
		if ctx.Err() != nil {
			break
		}
		logging.Debug("retrying command",
			zap.String("program", program),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return output, err
}

// RunIgnoringErrors calls Run and converts a failure into a success when
// the error text matches one of ignorePatterns. Used for idempotent
// operations where the tool reports "already in that state" as an error.
func (r *Runner) RunIgnoringErrors(ctx context.Context, program string, args []string, ignorePatterns []string) (string, error) {
	output, err := r.Run(ctx, program, args...)
	if err == nil {
		return output, nil
	}
	if matchesIgnorePattern(err.Error(), ignorePatterns) {
		logging.Debug("ignoring recognized command failure",
			zap.String("program", program),
			zap.Error(err),
		)
		return output, nil
	}
	return output, err
}
