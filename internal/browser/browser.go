// Package browser hands local URLs to the desktop's default handler.
package browser

import (
	"fmt"
	"runtime"

	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/pkg/model"
)

// Open opens http://localhost:<port> in the default browser.
func Open(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("open port %d: invalid port", port)
	}
	return OpenURL(model.LocalURL(port))
}

func OpenURL(url string) error {
	if _, err := proc.Run(opener(runtime.GOOS), url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func opener(goos string) string {
	if goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}
