package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/pranshuparmar/portls/internal/proc Executor

var (
	// ErrToolUnavailable means the external command could not be started at all.
	ErrToolUnavailable = errors.New("tool unavailable")
	// ErrTimeout means the external command did not finish within the executor timeout.
	ErrTimeout = errors.New("command timed out")
)

// DefaultTimeout bounds every external command unless configured otherwise.
const DefaultTimeout = 5 * time.Second

type Executor interface {
	Run(name string, args ...string) ([]byte, error)
}

// RealExecutor runs commands on the host. A non-zero exit still returns
// whatever the command wrote to stdout alongside the *exec.ExitError.
type RealExecutor struct {
	Timeout time.Duration
}

func (r *RealExecutor) Run(name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("%s: %w after %s", name, ErrTimeout, timeout)
	}
	if err != nil && isNotStartable(err) {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrToolUnavailable, err)
	}
	return out, err
}

func isNotStartable(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return true
}

var executor Executor = &RealExecutor{}

func SetExecutor(e Executor) {
	executor = e
}

func ResetExecutor() {
	executor = &RealExecutor{}
}

// SetTimeout bounds every host command by d. It has no effect while a
// custom executor is installed.
func SetTimeout(d time.Duration) {
	if _, ok := executor.(*RealExecutor); ok {
		executor = &RealExecutor{Timeout: d}
	}
}

// Run executes a command using the current executor
func Run(name string, args ...string) ([]byte, error) {
	return executor.Run(name, args...)
}

// exitedNonZero reports whether err is only a non-zero exit status, in which
// case the output collected so far is still worth parsing.
func exitedNonZero(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
