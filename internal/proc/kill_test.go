package proc

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/portls/internal/proc/mocks"
)

func TestTerminateSignals(t *testing.T) {
	tests := []struct {
		name  string
		force bool
		sig   string
	}{
		{"graceful", false, "-TERM"},
		{"forced", true, "-KILL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExec := mocks.NewMockExecutor(ctrl)
			SetExecutor(mockExec)
			defer ResetExecutor()

			mockExec.EXPECT().Run("kill", tt.sig, "1234").Return(nil, nil)

			if err := Terminate(1234, tt.force); err != nil {
				t.Errorf("Terminate() error = %v", err)
			}
		})
	}
}

func TestTerminateFailures(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		err     error
		wantErr error
	}{
		{"gone", "", errors.New("kill: (1234) - No such process"), ErrNoSuchProcess},
		{"not permitted", "", errors.New("kill: (1234) - Operation not permitted"), ErrPermissionDenied},
		{"text on stdout", "kill: 1234: No such process", nil, ErrNoSuchProcess},
		{"tool missing", "", ErrToolUnavailable, ErrToolUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExec := mocks.NewMockExecutor(ctrl)
			SetExecutor(mockExec)
			defer ResetExecutor()

			mockExec.EXPECT().Run("kill", "-TERM", "1234").Return([]byte(tt.out), tt.err)

			err := Terminate(1234, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Terminate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTerminateInvalidPID(t *testing.T) {
	if err := Terminate(0, true); !errors.Is(err, ErrNoSuchProcess) {
		t.Errorf("Terminate(0) error = %v", err)
	}
}

func TestWaitExit(t *testing.T) {
	orig := pidExists
	defer func() { pidExists = orig }()

	calls := 0
	pidExists = func(pid int32) (bool, error) {
		calls++
		return calls < 3, nil
	}
	if !WaitExit(1234, time.Second) {
		t.Error("WaitExit should report exit once the pid disappears")
	}

	pidExists = func(pid int32) (bool, error) { return true, nil }
	if WaitExit(1234, 10*time.Millisecond) {
		t.Error("WaitExit should time out for a surviving pid")
	}
}
