package zarr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compressor ids understood by this package. They match the numcodecs
// codec ids so written stores stay readable by other zarr tooling.
const (
	CompressorZstd = "zstd"
	CompressorZlib = "zlib"
	CompressorNone = "none"
)

// CompressorConfig is the compressor section of .zarray metadata. A nil
// config means chunks are stored raw.
type CompressorConfig struct {
	ID    string `json:"id"`
	Level int    `json:"level,omitempty"`
}

// NewCompressor validates a codec id and level from configuration.
func NewCompressor(id string, level int) (*CompressorConfig, error) {
	switch id {
	case CompressorZstd, CompressorZlib:
		return &CompressorConfig{ID: id, Level: level}, nil
	case CompressorNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported compressor: %q", id)
}

// Compress encodes raw chunk bytes with the configured codec.
func (c *CompressorConfig) Compress(raw []byte) ([]byte, error) {
	if c == nil {
		return raw, nil
	}

	var buf bytes.Buffer
	switch c.ID {
	case CompressorZstd:
		enc, err := zstd.NewWriter(&buf,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.Level)))
		if err != nil {
			return nil, err
		}
		if _, err := enc.Write(raw); err != nil {
			enc.Close()
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case CompressorZlib:
		level := c.Level
		if level == 0 {
			level = zlib.DefaultCompression
		}
		w, err := zlib.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(raw); err != nil {
			w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported compressor: %q", c.ID)
	}
	return buf.Bytes(), nil
}

// Decompress decodes stored chunk bytes back to raw element bytes.
func (c *CompressorConfig) Decompress(stored io.Reader) ([]byte, error) {
	if c == nil {
		return io.ReadAll(stored)
	}

	switch c.ID {
	case CompressorZstd:
		dec, err := zstd.NewReader(stored)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)
	case CompressorZlib:
		r, err := zlib.NewReader(stored)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return nil, fmt.Errorf("unsupported compressor: %q", c.ID)
}
