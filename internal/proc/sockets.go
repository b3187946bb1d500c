package proc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portls/pkg/model"
)

// lsof tabular columns:
// COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME (LISTEN)
const (
	lsofMinColumns  = 9
	lsofAddrColumn  = 8
	lsofLabelColumn = 0
	lsofPIDColumn   = 1
)

var listenArgs = []string{"-iTCP", "-sTCP:LISTEN", "-n", "-P"}

// ListListeningSockets returns one row per listening TCP socket.
// A missing or unrunnable lsof yields ErrToolUnavailable; lsof exiting 1
// without output means nothing is listening.
func ListListeningSockets() ([]model.SocketRow, error) {
	out, err := Run("lsof", listenArgs...)
	if err != nil {
		if exitedNonZero(err) {
			return ParseSocketRows(string(out)), nil
		}
		return nil, fmt.Errorf("list listening sockets: %w", err)
	}
	return ParseSocketRows(string(out)), nil
}

// ParseSocketRows parses lsof tabular output. Short or malformed rows are skipped.
func ParseSocketRows(out string) []model.SocketRow {
	var rows []model.SocketRow
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) < lsofMinColumns {
			continue
		}

		pid, err := strconv.Atoi(fields[lsofPIDColumn])
		if err != nil {
			continue // header
		}

		port, ok := ParsePort(fields[lsofAddrColumn])
		if !ok {
			continue
		}

		rows = append(rows, model.SocketRow{
			Label: fields[lsofLabelColumn],
			PID:   pid,
			Port:  port,
		})
	}
	return rows
}

// ParsePort extracts the port from "addr:port" or "addr:start-end",
// e.g. "*:3000", "[::1]:8080", "127.0.0.1:5000-5010".
func ParsePort(addr string) (int, bool) {
	idx := strings.LastIndex(addr, ":")
	if idx == -1 {
		return 0, false
	}
	portStr := addr[idx+1:]
	if start, _, found := strings.Cut(portStr, "-"); found {
		portStr = start
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 {
		return 0, false
	}
	return port, true
}
