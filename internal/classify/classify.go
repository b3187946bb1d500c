// Package classify decides whether a listener belongs to the operating
// system or to a development workflow. Both predicates are pure.
package classify

import (
	"strings"

	"github.com/pranshuparmar/portls/internal/proc"
	"github.com/pranshuparmar/portls/pkg/model"
)

// systemDaemons are macOS and Linux services that routinely hold listening
// sockets. A name equal to, or starting with, one of them is a system process.
var systemDaemons = map[string]bool{
	// macOS
	"launchd":           true,
	"rapportd":          true,
	"sharingd":          true,
	"ControlCenter":     true,
	"ControlCe":         true,
	"AirPlayXPCHelper":  true,
	"mDNSResponder":     true,
	"identityservicesd": true,
	"remoted":           true,
	"screensharingd":    true,
	"netbiosd":          true,
	"cupsd":             true,
	"UserEventAgent":    true,
	"WindowServer":      true,
	"Dock":              true,
	"Finder":            true,
	"SystemUIServer":    true,
	"loginwindow":       true,
	"configd":           true,
	"kdc":               true,
	"apsd":              true,
	"symptomsd":         true,
	"nsurlsessiond":     true,
	"Spotlight":         true,
	"IPNExtension":      true,
	// Linux
	"systemd":           true,
	"systemd-resolve":   true,
	"init":              true,
	"sshd":              true,
	"rsyslogd":          true,
	"dbus-daemon":       true,
	"avahi-daemon":      true,
	"cups-browsed":      true,
	"chronyd":           true,
	"ntpd":              true,
	"dnsmasq":           true,
	"NetworkManager":    true,
	"ModemManager":      true,
	"master":            true,
	"exim4":             true,
	"rpcbind":           true,
	"rpc.statd":         true,
	"smbd":              true,
	"nmbd":              true,
	"snapd":             true,
	"containerd":        true,
	"kubelet":           true,
}

const vendorPrefix = "com.apple."

// The macOS Dock shares its prefix with the Docker Desktop family of
// binaries, which are user-facing and must stay visible.
const (
	windowingShell   = "Dock"
	containerDesktop = "Docker"
)

// devExclusions name IDEs and desktop tools that embed runtimes or open
// dev ports but are not themselves projects.
var devExclusions = []string{
	"jetbrains",
	"intellij",
	"idea",
	"pycharm",
	"webstorm",
	"goland",
	"rider",
	"clion",
	"datagrip",
	"fleet",
	"android studio",
	"xcode",
	"cursor",
	"zed",
	"electron",
	"slack",
	"discord",
	"spotify",
	"figma",
	"teams",
	"zoom",
	"chrome",
	"firefox",
	"safari",
	"raycast",
	"1password",
	"dropbox",
}

var devTokens = []string{
	"node",
	"npm",
	"yarn",
	"pnpm",
	"bun",
	"deno",
	"python",
	"uvicorn",
	"gunicorn",
	"flask",
	"django",
	"ruby",
	"rails",
	"puma",
	"php",
	"java",
	"gradle",
	"maven",
	"dotnet",
	"cargo",
	"vite",
	"next",
	"webpack",
	"hugo",
	"jekyll",
	"postgres",
	"mysql",
	"mongod",
	"redis",
	"nginx",
	"caddy",
	"docker",
}

// runtimesInIDEs are dev tokens that also appear inside IDE binaries; they
// only count when no paired brand substring is present.
var runtimesInIDEs = map[string][]string{
	"java": {"jetbrains", "studio"},
	"node": {"code"},
}

var devDirFragments = []string{
	"/projects/",
	"/project/",
	"/dev/",
	"/development/",
	"/code/",
	"/src/",
	"/workspace/",
	"/workspaces/",
	"/repos/",
	"/github/",
	"/git/",
	"/sites/",
	"/work/",
}

// IsSystemProcess reports whether name belongs to an OS daemon.
func IsSystemProcess(name string) bool {
	if name == "" {
		return false
	}
	if systemDaemons[name] || strings.HasPrefix(name, vendorPrefix) {
		return true
	}
	for daemon := range systemDaemons {
		if !strings.HasPrefix(name, daemon) {
			continue
		}
		if daemon == windowingShell && strings.HasPrefix(name, containerDesktop) {
			continue
		}
		return true
	}
	return false
}

// IsDevProcess reports whether a listener belongs to a development
// workflow. The exclusion list and the IDE-brand suppression judge name, the
// canonical binary name; inclusion also considers label, the display label
// which may carry a user-chosen project name, and then workDir, which may
// carry a leading "~".
func IsDevProcess(name, label, workDir string) bool {
	lowerName := strings.ToLower(name)
	if isExcluded(lowerName) {
		return false
	}
	if hasDevToken(lowerName, lowerName) || hasDevToken(strings.ToLower(label), lowerName) {
		return true
	}
	if workDir != "" {
		dir := strings.ToLower(proc.ExpandPath(workDir)) + "/"
		for _, frag := range devDirFragments {
			if strings.Contains(dir, frag) {
				return true
			}
		}
	}
	return strings.HasPrefix(label, model.ContainerLabelPrefix)
}

func isExcluded(lower string) bool {
	for _, tok := range devExclusions {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// hasDevToken looks for a dev token in s. A runtime token is suppressed when
// the binary name carries one of its IDE brands.
func hasDevToken(s, binary string) bool {
	for _, tok := range devTokens {
		if !strings.Contains(s, tok) {
			continue
		}
		if brands, ok := runtimesInIDEs[tok]; ok && containsAny(binary, brands) {
			continue
		}
		return true
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
