package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

var (
	ErrNoSuchProcess    = errors.New("no such process")
	ErrPermissionDenied = errors.New("permission denied")
)

// pidExists is swapped out in tests.
var pidExists = process.PidExists

// Terminate signals pid with SIGTERM, or SIGKILL when force is set.
// A nil error only means the signal was delivered, not that the process exited.
func Terminate(pid int, force bool) error {
	if pid <= 0 {
		return fmt.Errorf("terminate pid %d: %w", pid, ErrNoSuchProcess)
	}

	sig := "-TERM"
	if force {
		sig = "-KILL"
	}

	out, err := Run("kill", sig, strconv.Itoa(pid))
	msg := strings.ToLower(strings.TrimSpace(string(out)))
	if err == nil && msg == "" {
		return nil
	}
	if errors.Is(err, ErrToolUnavailable) || errors.Is(err, ErrTimeout) {
		return fmt.Errorf("terminate pid %d: %w", pid, err)
	}

	// kill reports failures on stderr.
	if msg == "" && err != nil {
		msg = strings.ToLower(errorText(err))
	}
	switch {
	case strings.Contains(msg, "no such process"):
		return fmt.Errorf("terminate pid %d: %w", pid, ErrNoSuchProcess)
	case strings.Contains(msg, "not permitted"), strings.Contains(msg, "permission"):
		return fmt.Errorf("terminate pid %d: %w", pid, ErrPermissionDenied)
	case err != nil && exitedNonZero(err):
		// Without a message, a surviving process means we lacked the privilege.
		if alive, _ := pidExists(int32(pid)); !alive {
			return fmt.Errorf("terminate pid %d: %w", pid, ErrNoSuchProcess)
		}
		return fmt.Errorf("terminate pid %d: %w", pid, ErrPermissionDenied)
	default:
		return fmt.Errorf("terminate pid %d: %s", pid, msg)
	}
}

func errorText(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return string(exitErr.Stderr)
	}
	return err.Error()
}

// WaitExit polls until pid disappears or timeout elapses.
func WaitExit(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		alive, err := pidExists(int32(pid))
		if err == nil && !alive {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(50 * time.Millisecond)
	}
}
