package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/hiveparse/hive"
)

var (
	keysRecursive bool
	keysDepth     int
)

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVarP(&keysRecursive, "recursive", "r", false, "List all subkeys recursively")
	cmd.Flags().IntVar(&keysDepth, "depth", 1, "Maximum recursion depth (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <hive> [path]",
		Short: "List keys at a given path",
		Long: `The keys command lists all subkeys at a given path in a registry hive.
If no path is specified, lists keys at the root.

Example:
  hivectl keys system.hive
  hivectl keys system.hive "ControlSet001\\Services"
  hivectl keys system.hive --recursive --depth 2
  hivectl keys system.hive "Software" --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
	return cmd
}

type keyEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Subkeys int    `json:"subkeys"`
	Values  int    `json:"values"`
}

func runKeys(args []string) error {
	hivePath := args[0]
	var keyPath string
	if len(args) > 1 {
		keyPath = args[1]
	}

	h, err := openHive(hivePath)
	if err != nil {
		return err
	}
	start, err := h.ResolveNode(keyPath)
	if err != nil {
		return err
	}

	depth := 1
	if keysRecursive {
		depth = keysDepth
	}
	base := h.Node(start).Depth

	var keys []keyEntry
	err = h.Walk(start, func(id hive.NodeID, path string, n *hive.Node) error {
		if id == start {
			return nil
		}
		keys = append(keys, keyEntry{
			Name:    n.Name,
			Path:    path,
			Subkeys: len(n.Children),
			Values:  len(n.Values),
		})
		if depth > 0 && n.Depth-base >= depth {
			return hive.SkipChildren
		}
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":  hivePath,
			"path":  keyPath,
			"keys":  keys,
			"count": len(keys),
		})
	}

	for _, key := range keys {
		if keysRecursive {
			printInfo("%s\n", key.Path)
		} else {
			printInfo("%s\n", key.Name)
		}
	}
	printVerbose("\nTotal: %d keys\n", len(keys))
	return nil
}
