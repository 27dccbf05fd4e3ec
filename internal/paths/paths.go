// Package paths resolves where todos keeps its config.yaml and its SQLite
// database. Both live in per-user platform directories by default, never in
// the working directory.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory created under the platform config and data roots.
const AppDirName = "todos"

// DatabaseFileName is the SQLite file kept inside the data directory.
const DatabaseFileName = "todos.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TODOS_CONFIG_DIR"
	EnvDataDir   = "TODOS_DATA_DIR"
)

// location describes one kind of per-user directory.
type location struct {
	xdgEnv  string   // consulted on Linux
	xdgHome []string // fallback under $HOME when xdgEnv is unset
}

var (
	configLocation = location{xdgEnv: "XDG_CONFIG_HOME", xdgHome: []string{".config"}}
	dataLocation   = location{xdgEnv: "XDG_DATA_HOME", xdgHome: []string{".local", "share"}}
)

// Swapped out in tests.
var (
	lookupHome      = os.UserHomeDir
	lookupConfigDir = os.UserConfigDir
)

// root returns the platform root for loc, without the app directory.
// Linux follows XDG; other platforms use os.UserConfigDir for both kinds
// (~/Library/Application Support, %AppData%).
func (loc location) root() (string, error) {
	if runtime.GOOS != "linux" {
		return lookupConfigDir()
	}
	if dir := os.Getenv(loc.xdgEnv); dir != "" {
		return dir, nil
	}
	home, err := lookupHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, loc.xdgHome...)...), nil
}

func (loc location) dir() (string, error) {
	root, err := loc.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, AppDirName), nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/todos on Linux (falling back to
// ~/.config/todos) and the OS user config directory elsewhere.
func DefaultConfigDir() (string, error) {
	return configLocation.dir()
}

// DefaultDataDir returns $XDG_DATA_HOME/todos on Linux (falling back to
// ~/.local/share/todos) and the OS user config directory elsewhere.
func DefaultDataDir() (string, error) {
	return dataLocation.dir()
}

// firstAbs returns the first non-empty candidate made absolute, or fallback()
// when every candidate is empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ResolveConfigDir picks the configuration directory:
// flag > TODOS_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data directory:
// flag > TODOS_DATA_DIR > data_dir from config.yaml > DefaultDataDir.
// The environment wins over the file, as it does for every other key.
func ResolveDataDir(flag, configured string) (string, error) {
	return firstAbs(DefaultDataDir, flag, os.Getenv(EnvDataDir), configured)
}

// DatabasePath returns the snapshot database location inside dataDir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFileName)
}
