package browser

import (
	"errors"
	"runtime"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/internal/proc/mocks"
)

func TestOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	proc.SetExecutor(mockExec)
	defer proc.ResetExecutor()

	mockExec.EXPECT().Run(opener(runtime.GOOS), "http://localhost:3000").Return(nil, nil)

	if err := Open(3000); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	proc.SetExecutor(mockExec)
	defer proc.ResetExecutor()

	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, proc.ErrToolUnavailable)

	if err := Open(8080); !errors.Is(err, proc.ErrToolUnavailable) {
		t.Errorf("Open() error = %v, want ErrToolUnavailable", err)
	}
	if err := Open(0); err == nil {
		t.Error("Open(0) should fail without running anything")
	}
	if err := Open(70000); err == nil {
		t.Error("Open(70000) should fail")
	}
}

func TestOpener(t *testing.T) {
	if got := opener("darwin"); got != "open" {
		t.Errorf("opener(darwin) = %q", got)
	}
	if got := opener("linux"); got != "xdg-open" {
		t.Errorf("opener(linux) = %q", got)
	}
}
