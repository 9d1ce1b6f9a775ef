package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-serve configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/" + configName + ".yaml.",
		Example: `  vibe-serve config                                  # show all config
  vibe-serve config set sources.ckb ckb_entries.tsv  # register a knowledgebase export
  vibe-serve config set workers 8                    # extraction workers
  vibe-serve config set ref_genome GRCh37            # output build
  vibe-serve config get ref_genome                   # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "# No configuration set. Config file: ~/%s.yaml\n", configName)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// validateConfigValue rejects values extract would fail on later.
func validateConfigValue(key, value string) error {
	key = strings.ToLower(key)
	switch {
	case key == "ref_genome" || key == "models_build":
		if _, err := datamodel.ParseRefGenome(value); err != nil {
			return err
		}
	case strings.HasPrefix(key, "sources."):
		if _, err := datamodel.ParseKnowledgebase(strings.TrimPrefix(key, "sources.")); err != nil {
			return err
		}
	case key == "sources":
		return fmt.Errorf("set a single source with sources.<knowledgebase>")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if err := validateConfigValue(key, value); err != nil {
		return &usageError{err: err}
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, configName+".yaml")
	}

	// Write through a file-only instance so bound flag defaults are not
	// persisted.
	file := viper.New()
	file.SetConfigFile(cfgFile)
	if _, err := os.Stat(cfgFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	v := configValue(value)
	file.Set(key, v)
	viper.Set(key, v)

	if err := file.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

// configValue stores booleans and integers with their YAML types.
func configValue(value string) any {
	switch value {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

func runConfigGet(cmd *cobra.Command, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
