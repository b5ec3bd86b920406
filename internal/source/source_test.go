package source

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hiveparse/internal/testutil"
	"github.com/joshuapare/hiveparse/pkg/types"
)

func TestDetect(t *testing.T) {
	tests := map[string]Compression{
		"SYSTEM":         CompressionNone,
		"SYSTEM.hiv":     CompressionNone,
		"SYSTEM.gz":      CompressionGzip,
		"system.GZ":      CompressionGzip,
		"SYSTEM.zst":     CompressionZstd,
		"SYSTEM.zstd":    CompressionZstd,
		"dir.lz4/SYSTEM": CompressionNone,
		"SYSTEM.lz4":     CompressionLZ4,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			require.Equal(t, want, Detect(path))
		})
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("regf hive bytes "), 512)
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := Compress(data, c)
			require.NoError(t, err)
			if c != CompressionNone {
				require.Less(t, len(packed), len(data))
			}
			got, err := Decompress(bytes.NewReader(packed), c)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestOpen_Compressed(t *testing.T) {
	img := testutil.Build(testutil.SystemKey(1, "00112233445566778899aabbccddeeff"))
	for _, name := range []string{"SYSTEM", "SYSTEM.gz", "SYSTEM.zst", "SYSTEM.lz4"} {
		t.Run(name, func(t *testing.T) {
			packed, err := Compress(img.Bytes, Detect(name))
			require.NoError(t, err)
			path := testutil.WriteHive(t, name, packed)

			h, err := Open(path)
			require.NoError(t, err)
			require.Equal(t, path, h.SourcePath())
			require.Equal(t, "ROOT", h.Node(h.Root()).Name)
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	for _, name := range []string{"SYSTEM", "SYSTEM.gz"} {
		_, err := Open(filepath.Join(t.TempDir(), name))
		require.ErrorIs(t, err, types.ErrFileNotFound)
	}
}

func TestOpen_CorruptStream(t *testing.T) {
	path := testutil.WriteHive(t, "SYSTEM.gz", []byte("definitely not gzip"))
	_, err := Open(path)
	require.Error(t, err)
	require.NotErrorIs(t, err, types.ErrFileNotFound)
}
