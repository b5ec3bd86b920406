package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := loadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, 512, c.MaxDepth)
	require.Equal(t, "text", c.Output)
	require.Equal(t, "warn", c.LogLevel)
	require.Equal(t, 4, c.Workers)
	require.Empty(t, c.Source)
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hivectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 64\noutput: json\nworkers: 8\nlog_level: info\n"), 0o644))

	c, err := loadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, 64, c.MaxDepth)
	require.Equal(t, "json", c.Output)
	require.Equal(t, 8, c.Workers)
	require.Equal(t, path, c.Source)

	t.Setenv("HIVECTL_WORKERS", "2")
	c, err = loadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, 2, c.Workers)

	cmd := &cobra.Command{}
	cmd.Flags().IntVar(new(int), "max-depth", 0, "")
	cmd.Flags().StringVar(new(string), "log-level", "", "")
	require.NoError(t, cmd.Flags().Set("max-depth", "16"))
	c, err = loadConfig(path, cmd.Flags())
	require.NoError(t, err)
	require.Equal(t, 16, c.MaxDepth)
	require.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_SearchPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hivectl.yaml"), []byte("output: reg\n"), 0o644))

	c, err := loadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, "reg", c.Output)
	require.Equal(t, 512, c.MaxDepth)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: xml\n"), 0o644))
	_, err = loadConfig(bad, nil)
	require.ErrorContains(t, err, "unknown output format")
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		_, err := parseLevel(s)
		require.NoError(t, err, s)
	}
	_, err := parseLevel("loud")
	require.Error(t, err)
}

func TestInitLogger_RunID(t *testing.T) {
	resetFlags(t)
	var buf bytes.Buffer
	require.NoError(t, initLogger("info", &buf))
	logger.Info("hello")
	require.Contains(t, buf.String(), "run_id="+runID)
	require.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	logger.Debug("hidden")
	require.Empty(t, buf.String())
}
