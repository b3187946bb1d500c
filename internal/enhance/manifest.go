package enhance

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// manifestReader reads project files best-effort. Misses are cached too, so a
// directory without a manifest is not re-probed on every refresh.
type manifestReader struct {
	cache *gocache.Cache
}

func newManifestReader(ttl time.Duration) *manifestReader {
	return &manifestReader{cache: gocache.New(ttl, 2*ttl)}
}

func (m *manifestReader) read(path string) ([]byte, bool) {
	if cached, found := m.cache.Get(path); found {
		data, _ := cached.([]byte)
		return data, data != nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		data = nil
	}
	m.cache.Set(path, data, gocache.DefaultExpiration)
	return data, data != nil
}

func (m *manifestReader) exists(path string) bool {
	_, ok := m.read(path)
	return ok
}

type packageJSON struct {
	Name string `json:"name"`
}

// packageName returns the "name" field of package.json in dir.
func (m *manifestReader) packageName(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	data, ok := m.read(filepath.Join(dir, "package.json"))
	if !ok {
		return "", false
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", false
	}
	name := strings.TrimSpace(pkg.Name)
	return name, name != ""
}

var tomlName = regexp.MustCompile(`^name\s*=\s*["']([^"']+)["']`)

// pyprojectName returns the project name from pyproject.toml in dir, looking
// at [project] and [tool.poetry] tables.
func (m *manifestReader) pyprojectName(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	data, ok := m.read(filepath.Join(dir, "pyproject.toml"))
	if !ok {
		return "", false
	}

	section := ""
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			section = strings.Trim(line, "[] ")
			continue
		}
		if section != "" && section != "project" && section != "tool.poetry" {
			continue
		}
		if match := tomlName.FindStringSubmatch(line); match != nil {
			return match[1], true
		}
	}
	return "", false
}

var setupName = regexp.MustCompile(`\bname\s*=\s*["']([^"']+)["']`)

// setupPyName returns the name= argument of setup() in setup.py in dir.
func (m *manifestReader) setupPyName(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	data, ok := m.read(filepath.Join(dir, "setup.py"))
	if !ok {
		return "", false
	}
	if match := setupName.FindSubmatch(data); match != nil {
		return string(match[1]), true
	}
	return "", false
}

type pomProject struct {
	XMLName    xml.Name `xml:"project"`
	ArtifactID string   `xml:"artifactId"`
}

// pomArtifactID returns the project's own artifactId (not the parent's)
// from pom.xml in dir.
func (m *manifestReader) pomArtifactID(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	data, ok := m.read(filepath.Join(dir, "pom.xml"))
	if !ok {
		return "", false
	}
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return "", false
	}
	id := strings.TrimSpace(pom.ArtifactID)
	return id, id != ""
}

// gradleProject returns the directory name when dir holds a Gradle build file.
func (m *manifestReader) gradleProject(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	if m.exists(filepath.Join(dir, "build.gradle")) || m.exists(filepath.Join(dir, "build.gradle.kts")) {
		name := filepath.Base(dir)
		return name, name != "/" && name != "."
	}
	return "", false
}
