// Package main provides the vibe-serve command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configName = ".vibe-serve"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var uErr *usageError
		if errors.As(err, &uErr) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "vibe-serve",
		Short: "Build a consolidated actionable-event dataset from knowledgebase exports",
		Long: `vibe-serve classifies knowledgebase entries into event types, resolves them
to genomic positions and merges the results of all knowledgebases into one
dataset.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/"+configName+".yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newExtractCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// initConfig reads the config file and environment. A missing config file
// is not an error.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("VIBE_SERVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile == "" && os.IsNotExist(err)) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// free for command output.
func newLogger() (*zap.Logger, error) {
	var cfg zap.Config
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = ""
		cfg.DisableStacktrace = true
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// defaultDataDir returns ~/.vibe-serve, where downloaded reference files
// are kept.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configName)
}
