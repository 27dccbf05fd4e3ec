// Init command for the todos CLI.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize todos storage",
	Long: `Init creates the configuration and data directories, writes a default
config.yaml, and creates the todos table. With --data-dir the directory is
also recorded in config.yaml so later commands use it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already created the config dir and default file.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if flagDataDir != "" {
			abs, err := filepath.Abs(flagDataDir)
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			if err := setConfigValue(filepath.Join(configDir, configFileExt), cfgKeyDataDir, abs); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		if err := backend.Detach(); err != nil {
			return fmt.Errorf("finalize storage: %w", err)
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "todos initialized successfully")
		fmt.Fprintln(out, "  config:", configDir)
		fmt.Fprintln(out, "  data:  ", dataDir)
		return nil
	},
}

// setConfigValue sets a top-level scalar key in the YAML file at path,
// keeping the rest of the document and its comments intact.
func setConfigValue(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parse %s: top level is not a mapping", path)
	}

	updated := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			updated = true
			break
		}
	}
	if !updated {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
