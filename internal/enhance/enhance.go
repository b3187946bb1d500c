// Package enhance turns bare command names such as "node" or "java" into
// labels naming the project or framework behind the process.
package enhance

import (
	"strings"
	"time"
)

// Strategy derives a label detail from a command line and an absolute
// working directory. Either argument may be empty.
type Strategy struct {
	Name   string
	Detect func(cmdline, workDir string) (string, bool)
}

// Ecosystem groups the strategies tried, in order, for one family of runtimes.
type Ecosystem struct {
	Name       string
	Matches    func(rawName string) bool
	Strategies []Strategy
}

// Enhancer applies the first ecosystem matching a process name.
type Enhancer struct {
	ecosystems []Ecosystem
}

// DefaultManifestTTL is how long manifest reads are reused across scans.
const DefaultManifestTTL = 30 * time.Second

// New returns an Enhancer with the node, python and java ecosystems.
func New(manifestTTL time.Duration) *Enhancer {
	if manifestTTL <= 0 {
		manifestTTL = DefaultManifestTTL
	}
	m := newManifestReader(manifestTTL)
	return &Enhancer{
		ecosystems: []Ecosystem{
			nodeEcosystem(m),
			pythonEcosystem(m),
			javaEcosystem(m),
		},
	}
}

// NewWithEcosystems is used by callers that bring their own rules.
func NewWithEcosystems(ecosystems ...Ecosystem) *Enhancer {
	return &Enhancer{ecosystems: ecosystems}
}

// Enhance returns "<ecosystem>: <detail>" for the first strategy that
// succeeds, or rawName unchanged.
func (e *Enhancer) Enhance(rawName, cmdline, workDir string) string {
	for _, eco := range e.ecosystems {
		if !eco.Matches(rawName) {
			continue
		}
		for _, s := range eco.Strategies {
			if detail, ok := s.Detect(cmdline, workDir); ok && detail != "" {
				return eco.Name + ": " + detail
			}
		}
		return rawName
	}
	return rawName
}

func nameIn(names ...string) func(string) bool {
	return func(raw string) bool {
		raw = strings.ToLower(raw)
		for _, n := range names {
			if raw == n {
				return true
			}
		}
		return false
	}
}

// tokens splits a command line on whitespace.
func tokens(cmdline string) []string {
	return strings.Fields(cmdline)
}

// nextArg returns the first non-flag token after index i.
func nextArg(fields []string, i int) (string, bool) {
	for _, f := range fields[i+1:] {
		if strings.HasPrefix(f, "-") {
			continue
		}
		return f, true
	}
	return "", false
}
