package enhance

import (
	"path/filepath"
	"strings"
)

func pythonEcosystem(m *manifestReader) Ecosystem {
	return Ecosystem{
		Name:    "python",
		Matches: isPython,
		Strategies: []Strategy{
			{Name: "pyproject.toml", Detect: func(_, dir string) (string, bool) { return m.pyprojectName(dir) }},
			{Name: "setup.py", Detect: func(_, dir string) (string, bool) { return m.setupPyName(dir) }},
			{Name: "script path", Detect: detectPythonScript},
			{Name: "module", Detect: detectPythonModule},
		},
	}
}

// isPython matches python, python3, python3.12, Python (macOS framework
// build) and the common ASGI/WSGI servers.
func isPython(raw string) bool {
	raw = strings.ToLower(raw)
	if strings.HasPrefix(raw, "python") {
		return true
	}
	switch raw {
	case "uvicorn", "gunicorn", "hypercorn", "daphne", "flask":
		return true
	}
	return false
}

// detectPythonScript: "python3 /srv/api/manage.py runserver" → "manage.py"
func detectPythonScript(cmdline, _ string) (string, bool) {
	for _, f := range tokens(cmdline) {
		if strings.HasPrefix(f, "-") {
			continue
		}
		if strings.HasSuffix(f, ".py") {
			return filepath.Base(f), true
		}
	}
	return "", false
}

// detectPythonModule: "python -m http.server 8000" → "http.server"
func detectPythonModule(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		if f == "-m" && i+1 < len(fields) {
			return fields[i+1], true
		}
		// -mhttp.server
		if strings.HasPrefix(f, "-m") && len(f) > 2 && !strings.HasPrefix(f, "--") {
			return f[2:], true
		}
	}
	return "", false
}
