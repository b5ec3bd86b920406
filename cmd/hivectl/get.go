package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/hive/printer"
	"github.com/joshuapare/hiveparse/pkg/types"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `get <hive> <path\value>`,
		Short: "Get a specific registry value",
		Long: `The get command retrieves and displays one value. The last path segment
names the value; the rest names its key.

Example:
  hivectl get system.hive "Select\\Default"
  hivectl get system.hive "ControlSet001\\Control\\Lsa\\LmCompatibilityLevel" --type`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	hivePath, valuePath := args[0], args[1]

	h, err := openHive(hivePath)
	if err != nil {
		return err
	}

	_, ok, err := h.ResolveValue(valuePath)
	if err != nil {
		return err
	}
	keyPath, name := "", valuePath
	if i := strings.LastIndex(valuePath, hive.PathSeparator); i >= 0 {
		keyPath, name = valuePath[:i], valuePath[i+1:]
	}
	if !ok {
		return &types.Error{
			Kind:    types.ErrKindPathNotFound,
			Msg:     fmt.Sprintf("value %q not found in key %q", name, keyPath),
			Segment: name,
		}
	}

	opts := printer.DefaultOptions()
	opts.Format = outputFormat()
	opts.ShowValueTypes = getShowType
	opts.MaxValueBytes = 0
	return printer.New(h, os.Stdout, opts).PrintValue(keyPath, name)
}
