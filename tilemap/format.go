package tilemap

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCompressionLevel = errors.New("tilemap: compression level out of range")

// Encoding is how tile layer data is written to disk.
type Encoding uint8

const (
	EncodingPlain Encoding = iota
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingBase64:
		return "base64"
	}
	return fmt.Sprintf("Encoding(%d)", e)
}

// ParseEncoding accepts the names produced by String.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "plain", "csv":
		return EncodingPlain, nil
	case "base64":
		return EncodingBase64, nil
	}
	return 0, fmt.Errorf("tilemap: unknown tile encoding %q", s)
}

// Compression is the codec applied to base64 encoded tile data.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", c)
}

// ParseCompression accepts the names produced by String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "zlib":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	}
	return 0, fmt.Errorf("tilemap: unknown tile compression %q", s)
}

const (
	MinZlibLevel     = -1
	MaxZlibLevel     = 9
	DefaultZlibLevel = -1

	MinZstdLevel     = 1
	MaxZstdLevel     = 19
	DefaultZstdLevel = 3
)

// TileFormat describes how tile layer data is serialized.
type TileFormat struct {
	Encoding    Encoding
	Compression Compression
	ZlibLevel   int
	ZstdLevel   int
}

// DefaultTileFormat is plain, uncompressed data with default codec levels.
func DefaultTileFormat() TileFormat {
	return TileFormat{
		Encoding:    EncodingPlain,
		Compression: CompressionNone,
		ZlibLevel:   DefaultZlibLevel,
		ZstdLevel:   DefaultZstdLevel,
	}
}

func IsValidZlibLevel(level int) bool {
	return level >= MinZlibLevel && level <= MaxZlibLevel
}

func IsValidZstdLevel(level int) bool {
	return level >= MinZstdLevel && level <= MaxZstdLevel
}

// SupportsCompression reports whether the encoding can carry compressed data.
func (f TileFormat) SupportsCompression() bool {
	return f.Encoding == EncodingBase64
}

// Validate checks codec levels and the encoding/compression combination.
func (f TileFormat) Validate() error {
	if !IsValidZlibLevel(f.ZlibLevel) {
		return fmt.Errorf("%w: zlib %d", ErrCompressionLevel, f.ZlibLevel)
	}
	if !IsValidZstdLevel(f.ZstdLevel) {
		return fmt.Errorf("%w: zstd %d", ErrCompressionLevel, f.ZstdLevel)
	}
	if f.Compression != CompressionNone && !f.SupportsCompression() {
		return fmt.Errorf("tilemap: %s compression requires base64 encoding", f.Compression)
	}
	return nil
}
