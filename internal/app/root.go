// Package app wires the portls command tree.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/portls/internal/config"
	"github.com/pranshuparmar/portls/internal/container"
	"github.com/pranshuparmar/portls/internal/directory"
	"github.com/pranshuparmar/portls/internal/enhance"
	"github.com/pranshuparmar/portls/internal/icon"
	"github.com/pranshuparmar/portls/internal/proc"
)

var (
	flagConfig  string
	flagAll     bool
	flagDev     bool
	flagTimeout time.Duration
	flagNoColor bool
	flagDebug   bool
	flagJSON    bool
	flagYAML    bool

	cfg config.Config
	dir *directory.Directory
)

var rootCmd = &cobra.Command{
	Use:   "portls",
	Short: "List processes listening on TCP ports",
	Long: `portls lists every process listening on a TCP port, named after the
project it runs (package.json, pyproject.toml, pom.xml, ...) rather than
the bare binary. Ports published by docker are attributed to their container.`,
	Example: `  portls                  # dev and user processes
  portls --all            # include system daemons
  portls ports --json     # port-indexed view as JSON
  portls kill 1234        # SIGTERM
  portls kill -f --wait 1234
  portls watch            # interactive dashboard`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runList,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/portls/config.yaml)")
	pf.BoolVarP(&flagAll, "all", "a", false, "include system processes")
	pf.BoolVarP(&flagDev, "dev", "d", false, "show development processes only")
	pf.DurationVar(&flagTimeout, "timeout", proc.DefaultTimeout, "timeout for each external command")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	pf.BoolVar(&flagDebug, "debug", false, "log pipeline timings to stderr")

	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.Flags().BoolVar(&flagYAML, "yaml", false, "output as YAML")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(portsCmd, killCmd, openCmd, watchCmd)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if errors.Is(err, proc.ErrToolUnavailable) {
		return fmt.Errorf("%w (portls needs lsof and ps on PATH)", err)
	}
	return err
}

// setup loads configuration, applies explicitly set flags over it and
// builds the process directory shared by every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	configureLogging(cmd.ErrOrStderr(), flagDebug)

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("all") {
		cfg.IncludeSystem = flagAll
	}
	if flags.Changed("dev") {
		cfg.DevOnly = flagDev
	}
	if flags.Changed("timeout") {
		if flagTimeout <= 0 {
			return fmt.Errorf("--timeout must be positive")
		}
		cfg.CommandTimeout = config.Duration(flagTimeout)
	}

	proc.SetTimeout(cfg.CommandTimeout.Std())
	slog.Debug("config loaded", "path", path, "timeout", cfg.CommandTimeout.Std(), "include_system", cfg.IncludeSystem)

	dir = directory.New(
		proc.Host{},
		proc.Host{},
		container.Docker{Binary: cfg.DockerBinary},
		enhance.New(cfg.ManifestCacheTTL.Std()),
		icon.NewCache(cfg.IconCacheSize),
	)
	return nil
}

func configureLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// colorEnabled follows --no-color and the NO_COLOR convention.
func colorEnabled(w io.Writer) bool {
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
