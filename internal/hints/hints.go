// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// toolPackages maps each external tool to the package that ships it.
var toolPackages = map[string]string{
	"inkscape": "Inkscape",
	"pdfnup":   "pdfjam",
	"pdfunite": "poppler-utils",
	"ps2pdf":   "Ghostscript",
}

// ForMissingTool suggests the packages providing the missing tools and the
// in-process backends that avoid them.
func ForMissingTool(tools []string) string {
	var install, native []string
	for _, tool := range tools {
		if pkg, ok := toolPackages[tool]; ok {
			install = append(install, pkg)
		} else {
			install = append(install, tool)
		}
		switch tool {
		case "inkscape":
			native = append(native, "--render chrome")
		case "pdfnup":
			native = append(native, "--compose native")
		case "pdfunite":
			native = append(native, "--concat native")
		}
	}
	if len(install) == 0 {
		return ""
	}

	hints := []string{"install " + strings.Join(install, ", ")}
	if len(native) > 0 {
		hints = append(hints, "or use "+strings.Join(native, " "))
	}
	return formatHints(hints)
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for heavy drawings, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-booklet/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-booklet") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsafeOutputDir explains why an output directory was refused.
func ForUnsafeOutputDir() string {
	return format("the output directory is wiped on every build; pick one outside the source directory tree")
}

// ForPageNames reminds how page files must be named.
func ForPageNames(marker string) string {
	if marker == "" {
		return ""
	}
	return format("name drawings " + marker + "0.svg, " + marker + "1.svg, ... with no gaps")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
