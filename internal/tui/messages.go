package tui

import (
	"time"

	"github.com/pranshuparmar/portls/pkg/model"
)

// tickMsg signals a refresh tick
type tickMsg time.Time

// entriesMsg contains a fresh snapshot and the system setting it was scanned with
type entriesMsg struct {
	entries       []model.ProcessEntry
	includeSystem bool
	err           error
}

// killResultMsg contains the result of a kill request
type killResultMsg struct {
	pid   int
	label string
	force bool
	err   error
}

// actionMsg reports the outcome of open/copy
type actionMsg struct {
	notice string
	err    error
}
