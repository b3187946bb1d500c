package proc

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ResolveNames maps each PID to its canonical command name (path prefix
// stripped) with a single ps call. PIDs that have exited are simply absent.
func ResolveNames(pids []int) map[int]string {
	names := make(map[int]string)
	for pid, comm := range psColumn(pids, "comm=") {
		names[pid] = filepath.Base(comm)
	}
	return names
}

// ResolveCommandLines maps each PID to its full invocation with a single ps call.
func ResolveCommandLines(pids []int) map[int]string {
	return psColumn(pids, "args=")
}

// ResolveWorkingDirs maps each PID to its absolute working directory with a
// single lsof call. Permission-denied PIDs are absent.
func ResolveWorkingDirs(pids []int) map[int]string {
	dirs := make(map[int]string)
	if len(pids) == 0 {
		return dirs
	}

	out, err := Run("lsof", "-a", "-p", JoinPIDs(pids), "-d", "cwd", "-F", "pn")
	if err != nil && !exitedNonZero(err) {
		slog.Debug("cwd lookup failed", "err", err)
		return dirs
	}

	// lsof -F output format:
	// p<pid>
	// fcwd
	// n<path>
	current := 0
	for line := range strings.Lines(string(out)) {
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 2 {
			continue
		}
		switch line[0] {
		case 'p':
			pid, err := strconv.Atoi(line[1:])
			if err != nil {
				current = 0
				continue
			}
			current = pid
		case 'n':
			if current > 0 {
				dirs[current] = line[1:]
			}
		}
	}
	return dirs
}

func psColumn(pids []int, column string) map[int]string {
	values := make(map[int]string)
	if len(pids) == 0 {
		return values
	}

	// ps exits 1 when some of the PIDs are gone but still prints the rest.
	out, err := Run("ps", "-p", JoinPIDs(pids), "-o", "pid="+","+column)
	if err != nil && !exitedNonZero(err) {
		slog.Debug("ps lookup failed", "column", column, "err", err)
		return values
	}

	for line := range strings.Lines(string(out)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pidStr, rest, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			continue
		}
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}
		values[pid] = rest
	}
	return values
}

// JoinPIDs renders PIDs as the comma-separated list ps and lsof expect.
func JoinPIDs(pids []int) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = strconv.Itoa(pid)
	}
	return strings.Join(parts, ",")
}

// ShortenPath replaces home directory with ~ for display
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return shortenPath(path, home)
}

func shortenPath(path, home string) string {
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}

// ExpandPath reverses ShortenPath.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
