package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/portls/internal/browser"
	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/internal/tui"
)

var (
	flagForce       bool
	flagWait        bool
	flagWaitTimeout time.Duration
)

var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process (SIGTERM, or SIGKILL with --force)",
	Args:  cobra.ExactArgs(1),
	RunE:  runKill,
}

var openCmd = &cobra.Command{
	Use:   "open <port>",
	Short: "Open http://localhost:<port> in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive dashboard with live refresh",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	killCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "send SIGKILL instead of SIGTERM")
	killCmd.Flags().BoolVar(&flagWait, "wait", false, "wait until the process has exited")
	killCmd.Flags().DurationVar(&flagWaitTimeout, "wait-timeout", 3*time.Second, "how long --wait polls")
}

func runKill(cmd *cobra.Command, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil || pid <= 0 {
		return fmt.Errorf("invalid pid %q", args[0])
	}

	sig := "SIGTERM"
	if flagForce {
		sig = "SIGKILL"
	}

	if err := proc.Terminate(pid, flagForce); err != nil {
		if errors.Is(err, proc.ErrPermissionDenied) {
			return fmt.Errorf("%w; try again with sudo", err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to PID %d\n", sig, pid)

	if !flagWait {
		return nil
	}
	// delivery alone does not prove the process is gone
	if !proc.WaitExit(pid, flagWaitTimeout) {
		return fmt.Errorf("PID %d still running after %s", pid, flagWaitTimeout)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PID %d exited\n", pid)
	return nil
}

func runOpen(_ *cobra.Command, args []string) error {
	port, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid port %q", args[0])
	}
	return browser.Open(port)
}

func runWatch(_ *cobra.Command, _ []string) error {
	return tui.Run(tui.Options{
		Scanner:       dir,
		Interval:      cfg.RefreshInterval.Std(),
		IncludeSystem: cfg.IncludeSystem,
		DevOnly:       cfg.DevOnly,
	})
}
