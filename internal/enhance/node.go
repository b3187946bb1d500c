package enhance

import (
	"path/filepath"
	"strings"
)

// frameworkSubstrings are distinctive enough to match anywhere in a command line.
var frameworkSubstrings = []struct {
	substr string
	name   string
}{
	{"next-server", "Next.js"},
	{"next/dist", "Next.js"},
	{"react-scripts", "Create React App"},
	{"webpack-dev-server", "Webpack"},
	{"@angular/cli", "Angular"},
	{"@nestjs", "NestJS"},
	{"svelte-kit", "SvelteKit"},
	{"@remix-run", "Remix"},
	{"storybook", "Storybook"},
	{"gatsby", "Gatsby"},
	{"nuxt", "Nuxt"},
}

// frameworkBinaries match a token's base name exactly (extension ignored),
// since names like "next" or "vite" are too short for substring matching.
var frameworkBinaries = map[string]string{
	"next":    "Next.js",
	"vite":    "Vite",
	"nuxi":    "Nuxt",
	"webpack": "Webpack",
	"ng":      "Angular",
	"astro":   "Astro",
	"remix":   "Remix",
	"nest":    "NestJS",
	"parcel":  "Parcel",
	"expo":    "Expo",
	"esbuild": "esbuild",
}

var packageManagers = map[string]string{
	"npm":        "npm",
	"npm-cli.js": "npm",
	"yarn":       "yarn",
	"yarn.js":    "yarn",
	"yarn.cjs":   "yarn",
	"pnpm":       "pnpm",
	"pnpm.cjs":   "pnpm",
	"bun":        "bun",
}

// Commands of yarn/pnpm that are not script invocations.
var packageManagerBuiltins = map[string]bool{
	"install": true, "add": true, "remove": true, "upgrade": true,
	"update": true, "exec": true, "dlx": true, "x": true,
}

var tsRunners = map[string]bool{
	"ts-node":     true,
	"ts-node-dev": true,
	"tsx":         true,
}

var scriptExts = []string{".js", ".mjs", ".cjs", ".ts"}

var entryPoints = []string{"server", "app", "index", "main"}

func nodeEcosystem(m *manifestReader) Ecosystem {
	return Ecosystem{
		Name:    "node",
		Matches: nameIn("node", "nodejs", "bun", "deno"),
		Strategies: []Strategy{
			{Name: "package.json", Detect: func(_, dir string) (string, bool) { return m.packageName(dir) }},
			{Name: "node_modules/.bin", Detect: detectBinDir},
			{Name: "package manager script", Detect: detectPackageScript},
			{Name: "framework", Detect: detectFramework},
			{Name: "pm2", Detect: detectPM2},
			{Name: "ts runner", Detect: detectTSRunner},
			{Name: "script path", Detect: detectScriptPath},
			{Name: "entry point", Detect: detectEntryPoint},
		},
	}
}

// detectBinDir: "node /app/node_modules/.bin/vite --port 5173" → "vite"
func detectBinDir(cmdline, _ string) (string, bool) {
	const marker = "node_modules/.bin/"
	idx := strings.Index(cmdline, marker)
	if idx == -1 {
		return "", false
	}
	rest := cmdline[idx+len(marker):]
	if end := strings.IndexAny(rest, " \t/"); end != -1 {
		rest = rest[:end]
	}
	return rest, rest != ""
}

// detectPackageScript: "npm run dev" → "npm:dev", "yarn start" → "yarn:start"
func detectPackageScript(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		pm, ok := packageManagers[filepath.Base(f)]
		if !ok {
			continue
		}
		next, ok := nextArg(fields, i)
		if !ok {
			continue
		}
		if next == "run" || next == "run-script" {
			if j := indexOf(fields, next, i); j != -1 {
				if script, ok := nextArg(fields, j); ok {
					return pm + ":" + script, true
				}
			}
			continue
		}
		// npm requires "run" except for its lifecycle shortcuts
		if pm == "npm" {
			if next == "start" || next == "test" {
				return pm + ":" + next, true
			}
			continue
		}
		if !packageManagerBuiltins[next] {
			return pm + ":" + next, true
		}
	}
	return "", false
}

func indexOf(fields []string, want string, after int) int {
	for i := after + 1; i < len(fields); i++ {
		if fields[i] == want {
			return i
		}
	}
	return -1
}

func detectFramework(cmdline, _ string) (string, bool) {
	lower := strings.ToLower(cmdline)
	for _, fw := range frameworkSubstrings {
		if strings.Contains(lower, fw.substr) {
			return fw.name, true
		}
	}
	for _, f := range tokens(lower) {
		base := trimExt(filepath.Base(f))
		if name, ok := frameworkBinaries[base]; ok {
			return name, true
		}
	}
	return "", false
}

// detectPM2: "pm2 start api/server.js" → "pm2:server.js"
func detectPM2(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		if filepath.Base(f) != "pm2" {
			continue
		}
		j := indexOf(fields, "start", i)
		if j == -1 {
			return "pm2", true
		}
		if script, ok := nextArg(fields, j); ok {
			return "pm2:" + filepath.Base(script), true
		}
		return "pm2", true
	}
	return "", false
}

// detectTSRunner: "node .../tsx watch src/index.ts" → "index.ts"
func detectTSRunner(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		if !isTSRunner(f) {
			continue
		}
		for _, arg := range fields[i+1:] {
			if strings.HasPrefix(arg, "-") || arg == "watch" {
				continue
			}
			return filepath.Base(arg), true
		}
	}
	return "", false
}

func isTSRunner(f string) bool {
	if tsRunners[trimExt(filepath.Base(f))] {
		return true
	}
	for runner := range tsRunners {
		if strings.Contains(f, "/"+runner+"/") {
			return true
		}
	}
	return false
}

// detectScriptPath: "node dist/server.js" → "server.js"
func detectScriptPath(cmdline, _ string) (string, bool) {
	for _, f := range tokens(cmdline) {
		if strings.HasPrefix(f, "-") {
			continue
		}
		if hasScriptExt(f) {
			return filepath.Base(f), true
		}
	}
	return "", false
}

// detectEntryPoint looks for server.*, app.*, index.* or main.* anywhere.
func detectEntryPoint(cmdline, _ string) (string, bool) {
	for _, f := range tokens(cmdline) {
		base := filepath.Base(f)
		stem, ext, found := strings.Cut(base, ".")
		if !found || ext == "" {
			continue
		}
		for _, entry := range entryPoints {
			if stem == entry {
				return base, true
			}
		}
	}
	return "", false
}

func hasScriptExt(f string) bool {
	for _, ext := range scriptExts {
		if strings.HasSuffix(f, ext) {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
