//go:build !linux && !darwin

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"portls is only supported on Linux and macOS.\n\nIt relies on lsof, ps and kill, which are not available on this platform.",
	)
	os.Exit(1)
}
