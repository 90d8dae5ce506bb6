package mapcmd

import (
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/tilemap"
)

// SetTileFormatEncoding changes how tile data is encoded. Switching to plain
// encoding also turns compression off, since only base64 data is compressed.
type SetTileFormatEncoding struct {
	target
	encoding tilemap.Encoding

	oldEncoding    tilemap.Encoding
	oldCompression tilemap.Compression
}

func NewSetTileFormatEncoding(doc document.Ref, encoding tilemap.Encoding) (*SetTileFormatEncoding, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	if encoding != tilemap.EncodingPlain && encoding != tilemap.EncodingBase64 {
		return nil, invalidArgument("encoding %s", encoding)
	}
	return &SetTileFormatEncoding{target: target{doc}, encoding: encoding}, nil
}

func (c *SetTileFormatEncoding) Name() string { return "Set Tile Encoding" }

func (c *SetTileFormatEncoding) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	c.oldEncoding = m.Format.Encoding
	c.oldCompression = m.Format.Compression
	m.Format.Encoding = c.encoding
	if c.encoding == tilemap.EncodingPlain {
		m.Format.Compression = tilemap.CompressionNone
	}
}

func (c *SetTileFormatEncoding) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	m.Format.Encoding = c.oldEncoding
	m.Format.Compression = c.oldCompression
}

type SetTileFormatCompression struct {
	target
	compression tilemap.Compression
	old         tilemap.Compression
}

// NewSetTileFormatCompression rejects compression of plain encoded data.
func NewSetTileFormatCompression(doc document.Ref, compression tilemap.Compression) (*SetTileFormatCompression, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	switch compression {
	case tilemap.CompressionNone, tilemap.CompressionZlib, tilemap.CompressionZstd:
	default:
		return nil, invalidArgument("compression %s", compression)
	}
	if compression != tilemap.CompressionNone && !m.Format.SupportsCompression() {
		return nil, invalidArgument("%s compression requires base64 encoding", compression)
	}
	return &SetTileFormatCompression{target: target{doc}, compression: compression}, nil
}

func (c *SetTileFormatCompression) Name() string { return "Set Tile Compression" }

func (c *SetTileFormatCompression) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	c.old = m.Format.Compression
	m.Format.Compression = c.compression
}

func (c *SetTileFormatCompression) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	m.Format.Compression = c.old
}

// SetZlibCompressionLevel merges with directly following level changes so a
// slider drag is a single history entry.
type SetZlibCompressionLevel struct {
	target
	level int
	old   int
}

func NewSetZlibCompressionLevel(doc document.Ref, level int) (*SetZlibCompressionLevel, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	if !tilemap.IsValidZlibLevel(level) {
		return nil, invalidArgument("zlib level %d not in [%d, %d]", level, tilemap.MinZlibLevel, tilemap.MaxZlibLevel)
	}
	return &SetZlibCompressionLevel{target: target{doc}, level: level}, nil
}

func (c *SetZlibCompressionLevel) Name() string { return "Set Zlib Compression Level" }

func (c *SetZlibCompressionLevel) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	c.old = m.Format.ZlibLevel
	m.Format.ZlibLevel = c.level
}

func (c *SetZlibCompressionLevel) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	m.Format.ZlibLevel = c.old
}

func (c *SetZlibCompressionLevel) MergeWith(other command.Command) bool {
	o, ok := other.(*SetZlibCompressionLevel)
	if !ok || o.doc != c.doc {
		return false
	}
	c.level = o.level
	return true
}

type SetZstdCompressionLevel struct {
	target
	level int
	old   int
}

func NewSetZstdCompressionLevel(doc document.Ref, level int) (*SetZstdCompressionLevel, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	if !tilemap.IsValidZstdLevel(level) {
		return nil, invalidArgument("zstd level %d not in [%d, %d]", level, tilemap.MinZstdLevel, tilemap.MaxZstdLevel)
	}
	return &SetZstdCompressionLevel{target: target{doc}, level: level}, nil
}

func (c *SetZstdCompressionLevel) Name() string { return "Set Zstd Compression Level" }

func (c *SetZstdCompressionLevel) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	c.old = m.Format.ZstdLevel
	m.Format.ZstdLevel = c.level
}

func (c *SetZstdCompressionLevel) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	m.Format.ZstdLevel = c.old
}

func (c *SetZstdCompressionLevel) MergeWith(other command.Command) bool {
	o, ok := other.(*SetZstdCompressionLevel)
	if !ok || o.doc != c.doc {
		return false
	}
	c.level = o.level
	return true
}
