// Root command for the todos CLI.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/todos"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagLogLevel  = levelFlag{level: slog.LevelInfo}
)

// Loaded by PersistentPreRunE so all subcommands can use them.
var (
	config *viper.Viper
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:           "todos",
	Short:         "A personal to-do list with store and retrieve snapshots",
	Version:       todos.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		config, err = loadConfig(configDir)
		if err != nil {
			return err
		}

		logger = newLogger(cmd.ErrOrStderr(), flagLogLevel.level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/todos)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/todos)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().Var(&flagLogLevel, "log-level", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveDataDir returns the data directory:
// --data-dir flag > TODOS_DATA_DIR env > config.yaml data_dir > platform default.
// viper already folds TODOS_DATA_DIR into the data_dir key.
func resolveDataDir() (string, error) {
	var configured string
	if config != nil {
		configured = config.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(flagDataDir, configured)
}

// resolveConfigDir returns the configuration directory:
// --config-dir flag > TODOS_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
