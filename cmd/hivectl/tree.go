package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hiveparse/hive/printer"
)

var (
	treeDepth      int
	treeValues     bool
	treeTimestamps bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 3, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeValues, "values", false, "Show values too")
	cmd.Flags().BoolVar(&treeTimestamps, "timestamps", false, "Show last-write times")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <hive> [path]",
		Short: "Print the key tree",
		Long: `The tree command prints a key and its descendants. Output follows the
configured format: text, json (or --json), or reg.

Example:
  hivectl tree system.hive
  hivectl tree system.hive "ControlSet001\\Control" --depth 2 --values`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	hivePath := args[0]
	var keyPath string
	if len(args) > 1 {
		keyPath = args[1]
	}

	h, err := openHive(hivePath)
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.Format = outputFormat()
	opts.MaxDepth = treeDepth
	opts.ShowValues = treeValues
	opts.ShowTimestamps = treeTimestamps

	if quiet {
		return nil
	}
	return printer.New(h, os.Stdout, opts).PrintTree(keyPath)
}
