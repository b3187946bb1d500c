package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/portls/internal/proc/mocks"
)

func TestResolveNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	psOut := "  1234 /usr/local/bin/node\n  555 postgres\n  42 /Applications/Visual Studio Code.app/Contents/MacOS/Electron\n"
	mockExec.EXPECT().Run("ps", "-p", "1234,555,42", "-o", "pid=,comm=").
		Return([]byte(psOut), nil).Times(1)

	names := ResolveNames([]int{1234, 555, 42})
	want := map[int]string{1234: "node", 555: "postgres", 42: "Electron"}
	for pid, name := range want {
		if names[pid] != name {
			t.Errorf("names[%d] = %q, want %q", pid, names[pid], name)
		}
	}
}

func TestResolveNamesPartialExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	// 99 already exited: ps prints the survivors and exits 1
	mockExec.EXPECT().Run("ps", "-p", "1234,99", "-o", "pid=,comm=").
		Return([]byte("1234 node\n"), &exec.ExitError{})

	names := ResolveNames([]int{1234, 99})
	if names[1234] != "node" {
		t.Errorf("names[1234] = %q, want node", names[1234])
	}
	if _, ok := names[99]; ok {
		t.Error("exited pid should be absent")
	}
}

func TestResolveCommandLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run("ps", "-p", "1234,4321", "-o", "pid=,args=").
		Return([]byte(" 1234 node server.js --port 3000\n 4321 python3 -m http.server\n"), nil)

	args := ResolveCommandLines([]int{1234, 4321})
	if args[1234] != "node server.js --port 3000" {
		t.Errorf("args[1234] = %q", args[1234])
	}
	if args[4321] != "python3 -m http.server" {
		t.Errorf("args[4321] = %q", args[4321])
	}
}

func TestResolveWorkingDirs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	lsofOut := "p1234\nfcwd\nn/Users/dev/app\np555\nfcwd\nn/var/lib/postgres\n"
	mockExec.EXPECT().Run("lsof", "-a", "-p", "1234,555,7", "-d", "cwd", "-F", "pn").
		Return([]byte(lsofOut), nil)

	dirs := ResolveWorkingDirs([]int{1234, 555, 7})
	if dirs[1234] != "/Users/dev/app" {
		t.Errorf("dirs[1234] = %q", dirs[1234])
	}
	if dirs[555] != "/var/lib/postgres" {
		t.Errorf("dirs[555] = %q", dirs[555])
	}
	if _, ok := dirs[7]; ok {
		t.Error("pid 7 should be absent")
	}
}

func TestResolveToolFailureIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom")).AnyTimes()

	if got := ResolveNames([]int{1}); len(got) != 0 {
		t.Errorf("ResolveNames = %v, want empty", got)
	}
	if got := ResolveWorkingDirs([]int{1}); len(got) != 0 {
		t.Errorf("ResolveWorkingDirs = %v, want empty", got)
	}
}

func TestResolveTimeoutIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("ps: %w after 5s", ErrTimeout)).AnyTimes()

	tests := []struct {
		name    string
		resolve func([]int) map[int]string
	}{
		{"names", ResolveNames},
		{"command lines", ResolveCommandLines},
		{"working dirs", ResolveWorkingDirs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolve([]int{1234, 555}); len(got) != 0 {
				t.Errorf("got %v, want empty", got)
			}
		})
	}
}

func TestResolveNoPIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: an empty PID set must not spawn anything
	SetExecutor(mocks.NewMockExecutor(ctrl))
	defer ResetExecutor()

	if len(ResolveNames(nil)) != 0 || len(ResolveCommandLines(nil)) != 0 || len(ResolveWorkingDirs(nil)) != 0 {
		t.Error("expected empty maps")
	}
}

func TestShortenPath(t *testing.T) {
	home := "/Users/dev"
	tests := []struct {
		path string
		want string
	}{
		{"/Users/dev/app", "~/app"},
		{"/Users/dev", "~"},
		{"/Users/developer/app", "/Users/developer/app"},
		{"/var/lib", "/var/lib"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortenPath(tt.path, home); got != tt.want {
			t.Errorf("shortenPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExpandPathRoundTrip(t *testing.T) {
	t.Setenv("HOME", "/home/dev")
	if got := ExpandPath("~/code/api"); got != "/home/dev/code/api" {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ShortenPath("/home/dev/code/api"); got != "~/code/api" {
		t.Errorf("ShortenPath = %q", got)
	}
	if got := ExpandPath("/srv/app"); got != "/srv/app" {
		t.Errorf("ExpandPath = %q", got)
	}
}

func TestJoinPIDs(t *testing.T) {
	if got := JoinPIDs([]int{1, 22, 333}); got != "1,22,333" {
		t.Errorf("JoinPIDs = %q", got)
	}
}
