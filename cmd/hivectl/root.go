package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	cfgFile  string
	logLevel string
	maxDepth int

	// cfg is loaded by the root command before any subcommand runs.
	cfg = defaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "hivectl",
	Short: "Inspect Windows registry hive files",
	Long: `hivectl reads Windows Registry hive files (SYSTEM, SOFTWARE, SAM, ...)
and prints their keys and values. For SYSTEM hives it derives the 16-byte boot
key from the class names under Control\Lsa.

Hives compressed with gzip (.gz), zstd (.zst), or LZ4 (.lz4) are decompressed
in memory.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: search ., $HOME/.hivectl, /etc/hivectl)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Maximum key nesting accepted while decoding")
}

// setup loads configuration, applies flag overrides, and starts the logger.
func setup(cmd *cobra.Command) error {
	c, err := loadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c
	if err := initLogger(cfg.LogLevel, os.Stderr); err != nil {
		return err
	}
	logger.Debug("config loaded", "file", cfg.Source, "max_depth", cfg.MaxDepth, "workers", cfg.Workers)
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	return encodeJSON(os.Stdout, v)
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
