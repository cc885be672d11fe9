package checker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// TypeChecker produces the raw diagnostic text of one checker invocation.
// Implementations must treat "no errors" as empty output.
type TypeChecker interface {
	Read(ctx context.Context) (string, error)
}

// TimeoutError reports that every checker attempt hit its deadline.
type TimeoutError struct {
	Attempts    int
	LastTimeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("type checker timed out after %d attempts (last timeout %s)", e.Attempts, e.LastTimeout)
}

// IsTimeout reports whether err is a checker timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// Runner invokes the external type checker as a subprocess. Each attempt gets
// an escalating timeout; attempts are separated by a short backoff.
type Runner struct {
	Dir         string
	Command     []string
	Attempts    int
	BaseTimeout time.Duration
	Backoff     time.Duration
}

// DefaultCommand is the conventional way to type-check a TypeScript project
// without emitting output. `--pretty false` keeps diagnostics one per line.
var DefaultCommand = []string{"npx", "tsc", "--noEmit", "--pretty", "false"}

// NewRunner returns a Runner with the default command and retry policy.
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:         dir,
		Command:     DefaultCommand,
		Attempts:    3,
		BaseTimeout: 30 * time.Second,
		Backoff:     2 * time.Second,
	}
}

// Read runs the checker and returns its combined output. A non-zero exit with
// output is the normal "errors found" signal, not a failure. Exhausted
// timeouts yield a *TimeoutError; the caller decides how to degrade.
func (r *Runner) Read(ctx context.Context) (string, error) {
	if len(r.Command) == 0 {
		return "", fmt.Errorf("checker command is empty")
	}

	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastTimeout time.Duration
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		timeout := r.BaseTimeout * time.Duration(attempt)
		lastTimeout = timeout

		out, err := r.runOnce(ctx, timeout)
		if err == nil {
			return out, nil
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ctx.Err()
		}
		lastErr = err

		if attempt < attempts {
			select {
			case <-time.After(r.Backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return "", &TimeoutError{Attempts: attempts, LastTimeout: lastTimeout}
	}
	return "", fmt.Errorf("type checker failed: %w", lastErr)
}

func (r *Runner) runOnce(ctx context.Context, timeout time.Duration) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir

	out, err := cmd.CombinedOutput()
	if cctx.Err() == context.DeadlineExceeded {
		return "", context.DeadlineExceeded
	}
	if err != nil {
		// Checkers signal "errors found" via non-zero exit with diagnostics
		// on stdout/stderr. Only an exit without output is a real failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(out) > 0 {
			return string(out), nil
		}
		return "", err
	}
	return string(out), nil
}
