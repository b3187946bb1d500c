package classify

import "testing"

func TestIsSystemProcess(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"launchd", true},
		{"rapportd", true},
		{"com.apple.WebKit.Networking", true},
		{"com.apple.", true},
		{"ControlCenter", true},
		{"systemd-resolved", true},
		{"Dock", true},
		{"DockHelper", true},
		{"Docker", false},
		{"Docker Desktop", false},
		{"Docker.app", false},
		{"node", false},
		{"python3", false},
		{"com.docke", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSystemProcess(tt.name); got != tt.want {
				t.Errorf("IsSystemProcess(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestEveryDaemonIsSystem(t *testing.T) {
	for name := range systemDaemons {
		if !IsSystemProcess(name) {
			t.Errorf("IsSystemProcess(%q) = false", name)
		}
	}
}

func TestIsDevProcess(t *testing.T) {
	tests := []struct {
		desc    string
		name    string
		label   string
		workDir string
		want    bool
	}{
		{"runtime token", "node", "node: my-app", "", true},
		{"python", "python3", "python: manage.py", "", true},
		{"case insensitive", "Python", "Python", "", true},
		{"database", "postgres", "postgres", "", true},
		{"container entry", "com.docke", "docker: web", "", true},
		{"exclusion beats inclusion", "node-jetbrains-helper", "node-jetbrains-helper", "", false},
		{"ide with java", "java (IntelliJ IDEA)", "java (IntelliJ IDEA)", "", false},
		{"java under studio brand", "studio-java", "studio-java", "", false},
		{"node inside code helper", "code helper node", "code helper node", "", false},
		{"plain java", "java", "java: DemoApplication", "", true},
		{"dev directory", "mystery", "mystery", "/Users/x/projects/api", true},
		{"dev directory trailing", "mystery", "mystery", "/home/x/src", true},
		{"dev directory excluded binary", "Slack Helper", "Slack Helper", "/Users/x/code/thing", false},
		{"non-dev directory", "mystery", "mystery", "/usr/libexec", false},
		{"no hints", "rapportd", "rapportd", "", false},
		{"browser", "Google Chrome", "Google Chrome", "", false},
		{"project named like an ide", "node", "node: optimized-api", "", true},
		{"project containing code", "node", "node: barcode-service", "", true},
		{"project containing idea", "python3", "python: ideas-board", "", true},
		{"project containing teams", "node", "node: steamship", "", true},
		{"project containing cursor", "java", "java: cursor-paging", "", true},
		{"excluded binary with project label", "Cursor Helper", "node: my-app", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := IsDevProcess(tt.name, tt.label, tt.workDir); got != tt.want {
				t.Errorf("IsDevProcess(%q, %q, %q) = %v, want %v", tt.name, tt.label, tt.workDir, got, tt.want)
			}
		})
	}
}

func TestIsDevProcessExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/Users/alice")
	if !IsDevProcess("mystery", "mystery", "~/work/service") {
		t.Error("expected ~/work/service to be a dev directory")
	}
	if IsDevProcess("mystery", "mystery", "~") {
		t.Error("home directory alone is not a dev directory")
	}
}

func TestExclusionAlwaysDominates(t *testing.T) {
	for _, ex := range devExclusions {
		for _, tok := range devTokens {
			name := ex + " " + tok
			if IsDevProcess(name, name, "/Users/x/projects/app") {
				t.Errorf("IsDevProcess(%q) = true, want false", name)
			}
		}
	}
}
