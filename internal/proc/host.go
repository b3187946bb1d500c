package proc

import "github.com/pranshuparmar/portls/pkg/model"

// Host exposes the package-level OS queries as a value so callers can depend
// on small interfaces instead of package functions.
type Host struct{}

func (Host) ListListeningSockets() ([]model.SocketRow, error) { return ListListeningSockets() }
func (Host) ResolveNames(pids []int) map[int]string          { return ResolveNames(pids) }
func (Host) ResolveCommandLines(pids []int) map[int]string   { return ResolveCommandLines(pids) }
func (Host) ResolveWorkingDirs(pids []int) map[int]string    { return ResolveWorkingDirs(pids) }
