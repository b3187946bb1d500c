package app

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/portls/internal/directory"
	"github.com/pranshuparmar/portls/internal/output"
	"github.com/pranshuparmar/portls/pkg/model"
)

var (
	flagPortsJSON bool
	flagPortsYAML bool
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List ports with every process bound to each",
	Args:  cobra.NoArgs,
	RunE:  runPorts,
}

func init() {
	portsCmd.Flags().BoolVar(&flagPortsJSON, "json", false, "output as JSON")
	portsCmd.Flags().BoolVar(&flagPortsYAML, "yaml", false, "output as YAML")
	portsCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func scanEntries() ([]model.ProcessEntry, time.Duration, error) {
	start := time.Now()
	entries, err := dir.Scan(cfg.IncludeSystem)
	if err != nil {
		return nil, 0, err
	}
	if cfg.DevOnly {
		entries = directory.FilterDevOnly(entries)
	}
	return entries, time.Since(start), nil
}

func runList(cmd *cobra.Command, _ []string) error {
	entries, elapsed, err := scanEntries()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, entries, flagJSON, flagYAML); handled {
		return err
	}
	output.RenderTable(out, entries, colorEnabled(out), elapsed)
	return nil
}

func runPorts(cmd *cobra.Command, _ []string) error {
	entries, _, err := scanEntries()
	if err != nil {
		return err
	}
	bindings := directory.ByPort(entries)
	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, bindings, flagPortsJSON, flagPortsYAML); handled {
		return err
	}
	output.RenderPorts(out, bindings, colorEnabled(out))
	return nil
}

// writeStructured prints v as JSON or YAML when requested.
func writeStructured(w io.Writer, v any, asJSON, asYAML bool) (bool, error) {
	var (
		text string
		err  error
	)
	switch {
	case asJSON:
		text, err = output.ToJSON(v)
	case asYAML:
		text, err = output.ToYAML(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}
	fmt.Fprint(w, text)
	if asJSON {
		fmt.Fprintln(w)
	}
	return true, nil
}
