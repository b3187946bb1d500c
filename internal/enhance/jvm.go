package enhance

import (
	"path/filepath"
	"strings"
	"unicode"
)

func javaEcosystem(m *manifestReader) Ecosystem {
	return Ecosystem{
		Name:    "java",
		Matches: nameIn("java"),
		Strategies: []Strategy{
			{Name: "pom.xml", Detect: func(_, dir string) (string, bool) { return m.pomArtifactID(dir) }},
			{Name: "gradle", Detect: func(_, dir string) (string, bool) { return m.gradleProject(dir) }},
			{Name: "jar", Detect: detectJar},
			{Name: "main class", Detect: detectMainClass},
		},
	}
}

// detectJar: "java -Xmx512m -jar target/app-1.0.jar" → "app-1.0.jar"
func detectJar(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		if f == "-jar" && i+1 < len(fields) {
			return filepath.Base(fields[i+1]), true
		}
	}
	return "", false
}

// detectMainClass picks the first token shaped like a fully-qualified class
// name: "java -cp lib/* com.example.demo.DemoApplication" → "DemoApplication".
func detectMainClass(cmdline, _ string) (string, bool) {
	fields := tokens(cmdline)
	for i, f := range fields {
		if i == 0 || strings.HasPrefix(f, "-") {
			continue
		}
		// value of a preceding -cp/-classpath flag
		if prev := fields[i-1]; prev == "-cp" || prev == "-classpath" || prev == "--class-path" {
			continue
		}
		if isQualifiedClassName(f) {
			return f[strings.LastIndex(f, ".")+1:], true
		}
	}
	return "", false
}

func isQualifiedClassName(s string) bool {
	if strings.ContainsAny(s, "/\\:=*") || !strings.Contains(s, ".") {
		return false
	}
	segments := strings.Split(s, ".")
	capitalized := false
	for _, seg := range segments {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if !(unicode.IsLetter(r) || r == '_' || r == '$' || (i > 0 && unicode.IsDigit(r))) {
				return false
			}
		}
		if unicode.IsUpper(rune(seg[0])) {
			capitalized = true
		}
	}
	// a bare "Foo.Bar" is more likely a file than a package path
	return capitalized && len(segments) > 2
}
