package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hiveparse/hive/printer"
)

var (
	valuesShowType bool
	valuesMaxBytes int
)

func init() {
	cmd := newValuesCmd()
	cmd.Flags().BoolVar(&valuesShowType, "show-type", true, "Show registry type")
	cmd.Flags().IntVar(&valuesMaxBytes, "max-bytes", printer.DefaultMaxValueBytes, "Binary bytes shown per value (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <hive> [path]",
		Short: "List values of a key",
		Long: `The values command lists every value of a registry key with its type and
decoded data.

Example:
  hivectl values system.hive "Select"
  hivectl values system.hive "ControlSet001\\Control\\Lsa" --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
	return cmd
}

func runValues(args []string) error {
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
	opts.ShowValueTypes = valuesShowType
	opts.MaxValueBytes = valuesMaxBytes

	if quiet {
		return nil
	}
	return printer.New(h, os.Stdout, opts).PrintValues(keyPath)
}
