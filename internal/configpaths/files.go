// Package configpaths locates padcore config files and the options image.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "padcore"

// DefaultConfigDir returns the platform-specific configuration directory for padcore.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultStoragePath is where the persisted options image lives unless
// --storage overrides it.
func DefaultStoragePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "options.bin"), nil
}

// Ext maps a format name to its file extension; unknown formats are json.
func Ext(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	}
	return "json"
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate paths for CLI config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	route := func(p string) {
		switch Ext(strings.TrimPrefix(filepath.Ext(p), ".")) {
		case "yaml":
			yamlPaths = append(yamlPaths, p)
		case "toml":
			tomlPaths = append(tomlPaths, p)
		default:
			jsonPaths = append(jsonPaths, p)
		}
	}
	if userPath != "" {
		route(userPath)
	}

	var stems []string
	if wd, err := os.Getwd(); err == nil {
		stems = append(stems, filepath.Join(wd, appName), filepath.Join(wd, "config"))
	}
	if dir, err := DefaultConfigDir(); err == nil {
		stems = append(stems, filepath.Join(dir, "config"))
	}
	if runtime.GOOS != "windows" {
		stems = append(stems, filepath.Join("/etc", appName, "config"))
	}
	for _, stem := range stems {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			route(stem + ext)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
