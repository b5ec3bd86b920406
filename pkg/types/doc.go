// Package types defines the small, dependency-free vocabulary shared by the
// hive parser, the boot key deriver, and the command-line tool: typed errors
// with stable categories, registry value types, and header metadata.
//
// Callers branch on error categories with errors.Is against the sentinels
// declared here, for example:
//
//	if errors.Is(err, types.ErrPathNotFound) { ... }
//
// This package has no dependencies beyond the standard library.
package types
