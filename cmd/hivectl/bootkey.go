package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/hiveparse/hive/bootkey"
)

var bootkeyRecipient string

func init() {
	cmd := newBootkeyCmd()
	cmd.Flags().StringVar(&bootkeyRecipient, "encrypt-to", "", "Encrypt the output to this age public key (armored)")
	rootCmd.AddCommand(cmd)
}

func newBootkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootkey <system-hive>...",
		Short: "Derive the boot key from SYSTEM hives",
		Long: `The bootkey command derives the 16-byte boot key (SysKey) from one or
more SYSTEM hives. Hives are decoded concurrently, bounded by the configured
worker count.

With --encrypt-to the report is encrypted to an age X25519 recipient and
written ASCII-armored, so the key never appears in plaintext on the terminal.

Example:
  hivectl bootkey SYSTEM
  hivectl bootkey host1/SYSTEM host2/SYSTEM.gz --json
  hivectl bootkey SYSTEM --encrypt-to age1...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootkey(cmd.Context(), args)
		},
	}
	return cmd
}

type bootkeyResult struct {
	Path    string `json:"path"`
	RootKey string `json:"root_key,omitempty"`
	BootKey string `json:"boot_key,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runBootkey(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var recipient *age.X25519Recipient
	if bootkeyRecipient != "" {
		r, err := age.ParseX25519Recipient(bootkeyRecipient)
		if err != nil {
			return fmt.Errorf("failed to parse age public key: %w", err)
		}
		recipient = r
	}

	results := deriveAll(ctx, args)

	out := io.Writer(os.Stdout)
	var closers []io.Closer
	if recipient != nil {
		aw := armor.NewWriter(os.Stdout)
		ew, err := age.Encrypt(aw, recipient)
		if err != nil {
			return fmt.Errorf("failed to create age encryption writer: %w", err)
		}
		out = ew
		closers = []io.Closer{ew, aw}
	}

	werr := writeBootkeys(out, results)
	for _, c := range closers {
		if err := c.Close(); err != nil && werr == nil {
			werr = fmt.Errorf("finish encrypted output: %w", err)
		}
	}
	if werr != nil {
		return werr
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hives failed", failed, len(results))
	}
	return nil
}

// deriveAll derives the boot key of every path, cfg.Workers at a time.
// Results keep argument order.
func deriveAll(ctx context.Context, paths []string) []bootkeyResult {
	results := make([]bootkeyResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, path := range paths {
		i, path := i, path // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			results[i] = deriveOne(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func deriveOne(ctx context.Context, path string) bootkeyResult {
	res := bootkeyResult{Path: path}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	h, err := openHive(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.RootKey = h.Node(h.Root()).Name

	key, err := bootkey.Derive(h)
	if err != nil {
		logger.Warn("boot key unavailable", "hive", path, "error", err)
		res.Error = err.Error()
		return res
	}
	res.BootKey = bootkey.Format(key)
	logger.Debug("boot key derived", "hive", path)
	return res
}

func writeBootkeys(w io.Writer, results []bootkeyResult) error {
	if jsonOut {
		return encodeJSON(w, results)
	}
	for _, r := range results {
		lines := []string{r.Path}
		if r.RootKey != "" {
			lines = append(lines, "  Root key: "+r.RootKey)
		}
		if r.Error != "" {
			lines = append(lines, "  Error: "+r.Error)
		} else {
			lines = append(lines, "  Boot key: "+r.BootKey)
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("write boot key report: %w", err)
			}
		}
	}
	return nil
}
