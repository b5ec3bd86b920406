// Package source opens hive files that may be stored compressed. The
// compression is chosen by file extension: .gz (gzip), .zst (zstd), and
// .lz4 (LZ4 frame). Anything else is handed to hive.Open unchanged.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// Compression identifies how a hive file is stored.
type Compression uint8

const (
	// CompressionNone indicates a plain hive file.
	CompressionNone Compression = iota
	// CompressionGzip indicates a gzip stream.
	CompressionGzip
	// CompressionZstd indicates a zstd stream.
	CompressionZstd
	// CompressionLZ4 indicates an LZ4 frame stream.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Detect picks the compression from the extension of path.
func Detect(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Open decodes the hive at path, decompressing it in memory first when its
// extension names a supported compression.
func Open(path string, opts ...hive.Option) (*hive.Hive, error) {
	c := Detect(path)
	if c == CompressionNone {
		return hive.Open(path, opts...)
	}
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return hive.OpenBytes(data, append([]hive.Option{hive.WithSourcePath(path)}, opts...)...)
}

// Load reads and, where needed, decompresses the file at path.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.Error{
				Kind: types.ErrKindFileNotFound,
				Msg:  fmt.Sprintf("hive file %s not found", path),
				Err:  err,
			}
		}
		return nil, err
	}
	defer f.Close()

	c := Detect(path)
	data, err := Decompress(f, c)
	if err != nil {
		return nil, fmt.Errorf("read %s (%s): %w", path, c, err)
	}
	return data, nil
}

// Decompress reads all of r, undoing compression c.
func Decompress(r io.Reader, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return io.ReadAll(r)

	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)

	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)

	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(r))

	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

// Compress is the inverse of Decompress. It is used to produce fixtures and
// by callers archiving hives.
func Compress(data []byte, c Compression) ([]byte, error) {
	var out bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionNone:
		return append([]byte(nil), data...), nil
	case CompressionGzip:
		w = gzip.NewWriter(&out)
	case CompressionZstd:
		enc, err := zstd.NewWriter(&out, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		w = enc
	case CompressionLZ4:
		w = lz4.NewWriter(&out)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
