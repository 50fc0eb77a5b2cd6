package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Load resolves a scenario by file path or name.
// Search order: explicit path -> ~/.cellsociety/scenarios/<name>.yaml ->
// ./scenarios/<name>.yaml -> built-in defaults.
func Load(name string) (*Scenario, error) {
	if isPath(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("scenario: read %s: %w", name, err)
		}
		return Parse(data, name)
	}

	file := name + ".yaml"
	if p := userScenarioPath(file); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return Parse(data, p)
		}
	}

	local := filepath.Join("scenarios", file)
	if data, err := os.ReadFile(local); err == nil {
		return Parse(data, local)
	}

	if data, err := defaults.ReadFile(path.Join("defaults", file)); err == nil {
		return Parse(data, "builtin:"+name)
	}
	return nil, fmt.Errorf("scenario: %q: %w", name, ErrNotFound)
}

// Builtin lists the names of the embedded scenarios.
func Builtin() []string {
	matches, _ := fs.Glob(defaults, "defaults/*.yaml")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// UserDir returns the per-user scenario directory, or "" if the home
// directory is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cellsociety", "scenarios")
}

func userScenarioPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

func isPath(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") {
		return true
	}
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
