// Config loading for the todos CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "TODOS"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyAddr      = "addr"
	cfgKeyServerURL = "server_url"
	cfgKeyTimeout   = "timeout"

	defaultAddr      = "localhost:3001"
	defaultServerURL = "http://localhost:3001"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# todos configuration

# Storage backend for the Snapshot Store.
backend: sqlite

# Data directory (optional; overridable by --data-dir or TODOS_DATA_DIR).
# data_dir:

# Listen address for "todos serve". PORT is honoured when this is unset.
# addr: localhost:3001

# Snapshot Store used by "todos edit" and "todos list".
server_url: http://localhost:3001

# Request timeout for store and retrieve.
timeout: 10s
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. TODOS_* environment variables
// override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyServerURL, defaultServerURL)
	v.SetDefault(cfgKeyTimeout, client.DefaultTimeout)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// resolveAddr picks the listen address: --addr flag > addr key (TODOS_ADDR)
// > PORT env on all interfaces > localhost:3001.
func resolveAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if addr := config.GetString(cfgKeyAddr); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return defaultAddr
}

// requestTimeout returns the configured client timeout, falling back to
// the default on a non-positive value.
func requestTimeout() time.Duration {
	if d := config.GetDuration(cfgKeyTimeout); d > 0 {
		return d
	}
	return client.DefaultTimeout
}
