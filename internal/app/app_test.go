package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/internal/proc/mocks"
	"github.com/pranshuparmar/portls/pkg/model"
)

// execute runs rootCmd with args and an isolated config path, resetting
// flags afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	config := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs(append([]string{"--config", config}, args...))

	defer func() {
		rootCmd.SetArgs(nil)
		flagclean := func(c *cobra.Command) {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		flagclean(rootCmd)
		for _, c := range rootCmd.Commands() {
			flagclean(c)
		}
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func withMockExecutor(t *testing.T) *mocks.MockExecutor {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockExec := mocks.NewMockExecutor(ctrl)
	proc.SetExecutor(mockExec)
	t.Cleanup(proc.ResetExecutor)
	return mockExec
}

func TestRunApp_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute help failed: %v", err)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("Help output missing 'Usage:'. Got: %s", out)
	}
	for _, sub := range []string{"ports", "kill", "open", "watch"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help does not list %q", sub)
		}
	}
}

func expectScan(mockExec *mocks.MockExecutor, workDir string) {
	lsof := "COMMAND  PID USER FD TYPE DEVICE SIZE/OFF NODE NAME\n" +
		"node    1234  dev 23u IPv4 0x1 0t0 TCP *:3000 (LISTEN)\n" +
		"node    1234  dev 24u IPv6 0x2 0t0 TCP [::1]:3000 (LISTEN)\n" +
		"rapportd  99  dev  4u IPv4 0x3 0t0 TCP *:49152 (LISTEN)\n"
	mockExec.EXPECT().Run("lsof", "-iTCP", "-sTCP:LISTEN", "-n", "-P").Return([]byte(lsof), nil)
	mockExec.EXPECT().Run("ps", "-p", "99,1234", "-o", "pid=,comm=").
		Return([]byte("   99 /usr/libexec/rapportd\n 1234 /usr/local/bin/node\n"), nil)
	mockExec.EXPECT().Run("ps", "-p", "99,1234", "-o", "pid=,args=").
		Return([]byte("   99 /usr/libexec/rapportd\n 1234 node server.js\n"), nil)
	mockExec.EXPECT().Run("lsof", "-a", "-p", "99,1234", "-d", "cwd", "-F", "pn").
		Return([]byte("p1234\nfcwd\nn"+workDir+"\n"), nil)
}

func TestRunApp_ListJSON(t *testing.T) {
	mockExec := withMockExecutor(t)
	expectScan(mockExec, t.TempDir())

	out, err := execute(t, "--json")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var entries []model.ProcessEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want the system daemon filtered: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Label != "node: server.js" || e.PID != 1234 || len(e.Ports) != 1 || e.Ports[0] != 3000 {
		t.Errorf("entry = %+v", e)
	}
}

func TestRunApp_ListAllTable(t *testing.T) {
	mockExec := withMockExecutor(t)
	expectScan(mockExec, t.TempDir())

	out, err := execute(t, "--all", "--no-color")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"node: server.js", "rapportd", "49152", "Found 2 listening processes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunApp_Ports(t *testing.T) {
	mockExec := withMockExecutor(t)
	expectScan(mockExec, t.TempDir())

	out, err := execute(t, "ports", "--all", "--json")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var bindings []model.PortBinding
	if err := json.Unmarshal([]byte(out), &bindings); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(bindings) != 2 || bindings[0].Port != 3000 || bindings[1].Port != 49152 {
		t.Errorf("bindings = %+v", bindings)
	}
}

func TestRunApp_ToolUnavailable(t *testing.T) {
	mockExec := withMockExecutor(t)
	mockExec.EXPECT().Run("lsof", "-iTCP", "-sTCP:LISTEN", "-n", "-P").Return(nil, proc.ErrToolUnavailable)

	_, err := execute(t)
	if !errors.Is(err, proc.ErrToolUnavailable) {
		t.Errorf("error = %v, want ErrToolUnavailable", err)
	}
}

func TestRunApp_Kill(t *testing.T) {
	tests := []struct {
		name string
		args []string
		sig  string
		want string
	}{
		{"graceful", []string{"kill", "1234"}, "-TERM", "Sent SIGTERM to PID 1234"},
		{"forced", []string{"kill", "--force", "1234"}, "-KILL", "Sent SIGKILL to PID 1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExec := withMockExecutor(t)
			mockExec.EXPECT().Run("kill", tt.sig, "1234").Return(nil, nil)

			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunApp_KillPermissionDenied(t *testing.T) {
	mockExec := withMockExecutor(t)
	mockExec.EXPECT().Run("kill", "-TERM", "1").Return([]byte("kill: 1: Operation not permitted"), nil)

	_, err := execute(t, "kill", "1")
	if !errors.Is(err, proc.ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
	if !strings.Contains(err.Error(), "sudo") {
		t.Errorf("error %q lacks the privilege hint", err)
	}
}

func TestRunApp_KillInvalidPID(t *testing.T) {
	withMockExecutor(t)
	if _, err := execute(t, "kill", "abc"); err == nil {
		t.Error("expected error for non-numeric pid")
	}
}

func TestRunApp_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("command_timeout: later"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path); err == nil {
		t.Error("expected config error")
	}
}
