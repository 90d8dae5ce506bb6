package ir

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
)

var ErrTileData = errors.New("ir: malformed tile data")

// zstdMinMemory is the smallest decoder budget. Frames declare a window of at
// least 1 KiB and the default encoder window is 8 MiB, so small maps need
// headroom above their payload size.
const zstdMinMemory = 8 << 20

// EncodeTiles serializes a tile matrix. Plain data is one line per row with
// space separated ids. Base64 data is the row-major little endian int32 ids,
// optionally compressed.
func EncodeTiles(tiles *tile.Matrix, format tilemap.TileFormat) (string, error) {
	if format.Encoding == tilemap.EncodingPlain {
		var sb strings.Builder
		for r, row := range tiles.Rows() {
			if r > 0 {
				sb.WriteByte('\n')
			}
			for c, id := range row {
				if c > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(strconv.FormatInt(int64(id), 10))
			}
		}
		return sb.String(), nil
	}

	ext := tiles.Extent()
	raw := make([]byte, 0, ext.Cells()*4)
	tiles.Each(func(_ tile.Pos, id tile.ID) {
		raw = binary.LittleEndian.AppendUint32(raw, uint32(id))
	})
	packed, err := compress(raw, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(packed), nil
}

// DecodeTiles parses data written by EncodeTiles into a matrix of extent ext.
// The payload is checked against ext before the matrix is allocated.
func DecodeTiles(data string, ext tile.Extent, format tilemap.TileFormat) (*tile.Matrix, error) {
	size, err := payloadSize(ext)
	if err != nil {
		return nil, err
	}
	if format.Encoding == tilemap.EncodingPlain {
		fields := strings.Fields(data)
		if len(fields) != ext.Cells() {
			return nil, fmt.Errorf("%w: %d ids for %s", ErrTileData, len(fields), ext)
		}
		m := tile.NewMatrix(ext)
		for i, f := range fields {
			id, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTileData, err)
			}
			m.Set(tile.Pos{Row: i / ext.Cols, Col: i % ext.Cols}, tile.ID(id))
		}
		return m, nil
	}

	packed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTileData, err)
	}
	raw, err := decompress(packed, format, size)
	if err != nil {
		return nil, err
	}
	if len(raw) != size {
		return nil, fmt.Errorf("%w: %d bytes for %s", ErrTileData, len(raw), ext)
	}
	m := tile.NewMatrix(ext)
	for i := 0; i < ext.Cells(); i++ {
		id := tile.ID(int32(binary.LittleEndian.Uint32(raw[i*4:])))
		m.Set(tile.Pos{Row: i / ext.Cols, Col: i % ext.Cols}, id)
	}
	return m, nil
}

// payloadSize is the byte length of the raw int32 ids for ext.
func payloadSize(ext tile.Extent) (int, error) {
	if ext.Rows < 1 || ext.Cols < 1 {
		return 0, fmt.Errorf("%w: extent %s", ErrTileData, ext)
	}
	if ext.Rows > math.MaxInt32/4/ext.Cols {
		return 0, fmt.Errorf("%w: extent %s too large", ErrTileData, ext)
	}
	return ext.Cells() * 4, nil
}

func compress(raw []byte, format tilemap.TileFormat) ([]byte, error) {
	switch format.Compression {
	case tilemap.CompressionZlib:
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, format.ZlibLevel)
		if err != nil {
			return nil, fmt.Errorf("ir: zlib: %w", err)
		}
		if _, err := w.Write(raw); err != nil {
			return nil, fmt.Errorf("ir: zlib: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("ir: zlib: %w", err)
		}
		return buf.Bytes(), nil
	case tilemap.CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(format.ZstdLevel)))
		if err != nil {
			return nil, fmt.Errorf("ir: zstd: %w", err)
		}
		out := enc.EncodeAll(raw, nil)
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("ir: zstd: %w", err)
		}
		return out, nil
	}
	return raw, nil
}

// decompress inflates packed, reading at most one byte past limit so that
// oversized payloads are reported without being expanded in full.
func decompress(packed []byte, format tilemap.TileFormat, limit int) ([]byte, error) {
	switch format.Compression {
	case tilemap.CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(packed))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrTileData, err)
		}
		defer r.Close()
		raw, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrTileData, err)
		}
		return raw, nil
	case tilemap.CompressionZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(max(uint64(limit), zstdMinMemory)))
		if err != nil {
			return nil, fmt.Errorf("ir: zstd: %w", err)
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(packed, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrTileData, err)
		}
		return raw, nil
	}
	return packed, nil
}
