package main

import (
	"fmt"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/hive/printer"
	"github.com/joshuapare/hiveparse/internal/source"
)

// openHive decodes the hive at path with the configured limits.
func openHive(path string) (*hive.Hive, error) {
	printVerbose("Opening hive: %s\n", path)
	h, err := source.Open(path,
		hive.WithMaxDepth(cfg.MaxDepth),
		hive.WithLogger(logger.With("hive", path)),
	)
	if err != nil {
		logger.Warn("open failed", "hive", path, "error", err)
		return nil, fmt.Errorf("failed to open hive: %w", err)
	}
	return h, nil
}

// outputFormat resolves --json against the configured output format.
func outputFormat() printer.Format {
	if jsonOut {
		return printer.FormatJSON
	}
	f, err := printer.ParseFormat(cfg.Output)
	if err != nil {
		return printer.FormatText
	}
	return f
}
