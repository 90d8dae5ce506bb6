package ir

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/tileset"
)

const (
	layerTile   = "tile"
	layerObject = "object"
	layerGroup  = "group"
)

// FromMap converts a map into its intermediate representation.
func FromMap(m *tilemap.Map) (*Map, error) {
	out := &Map{
		Version:         FormatVersion,
		Metadata:        metadata(&m.Context, m.Components),
		Rows:            m.Extent.Rows,
		Cols:            m.Extent.Cols,
		TileWidth:       m.TileSize.X,
		TileHeight:      m.TileSize.Y,
		NextLayerIndex:  m.NextLayerIndex,
		NextObjectIndex: m.NextObjectIndex,
		Format:          tileFormat(m.Format),
	}
	for _, def := range m.Components.All() {
		out.Components = append(out.Components, Component{Name: def.Name, Attributes: attributes(&def.Attributes)})
	}
	for _, a := range m.Tilesets.All() {
		ts := a.Tileset
		out.Tilesets = append(out.Tilesets, Tileset{
			Metadata:    metadata(&ts.Context, m.Components),
			FirstTile:   int32(a.FirstTile),
			Image:       ts.ImagePath,
			ImageWidth:  ts.ImageSize.X,
			ImageHeight: ts.ImageSize.Y,
			TileWidth:   ts.TileSize.X,
			TileHeight:  ts.TileSize.Y,
			TileCount:   ts.TileCount,
			Columns:     ts.Columns,
			Embedded:    a.Embedded,
			Tiles:       fromTiles(m, ts),
		})
	}
	for _, l := range m.Root.Children {
		converted, err := fromLayer(m, l)
		if err != nil {
			return nil, err
		}
		out.Layers = append(out.Layers, converted)
	}
	return out, nil
}

func tileFormat(f tilemap.TileFormat) TileFormat {
	out := TileFormat{Encoding: f.Encoding.String()}
	if f.Compression != tilemap.CompressionNone {
		out.Compression = f.Compression.String()
	}
	zlib, zstd := f.ZlibLevel, f.ZstdLevel
	out.ZlibLevel, out.ZstdLevel = &zlib, &zstd
	return out
}

func attributes(p *attribute.Properties) []Attribute {
	var out []Attribute
	for _, prop := range p.All() {
		out = append(out, Attribute{Name: prop.Name, Type: prop.Value.Type().String(), Value: prop.Value.String()})
	}
	return out
}

func metadata(ctx *attribute.Context, defs *attribute.ComponentIndex) Metadata {
	meta := Metadata{ID: ctx.ID.String(), Name: ctx.Name, Properties: attributes(&ctx.Properties)}
	for _, comp := range ctx.Components() {
		def, ok := defs.Get(comp.Definition)
		if !ok {
			continue
		}
		meta.Components = append(meta.Components, AttachedComponent{Type: def.Name, Attributes: attributes(&comp.Attributes)})
	}
	return meta
}

func fromLayer(m *tilemap.Map, l *layer.Layer) (Layer, error) {
	out := Layer{
		Metadata: metadata(&l.Context, m.Components),
		Opacity:  l.Opacity,
		Visible:  l.Visible,
	}
	switch l.Kind {
	case layer.TileLayer:
		out.Type = layerTile
		data, err := EncodeTiles(l.Tiles, m.Format)
		if err != nil {
			return Layer{}, fmt.Errorf("ir: layer %s: %w", l.Name, err)
		}
		out.Data = data
	case layer.ObjectLayer:
		out.Type = layerObject
		for _, obj := range l.Objects {
			out.Objects = append(out.Objects, fromObject(m, obj))
		}
	case layer.GroupLayer:
		out.Type = layerGroup
		for _, child := range l.Children {
			converted, err := fromLayer(m, child)
			if err != nil {
				return Layer{}, err
			}
			out.Layers = append(out.Layers, converted)
		}
	}
	return out, nil
}

func fromObject(m *tilemap.Map, obj *layer.Object) Object {
	return Object{
		Metadata: metadata(&obj.Context, m.Components),
		Type:     obj.Kind.String(),
		X:        obj.Pos.X,
		Y:        obj.Pos.Y,
		Width:    obj.Size.X,
		Height:   obj.Size.Y,
		Tag:      obj.Tag,
		Visible:  obj.Visible,
	}
}

func fromTiles(m *tilemap.Map, ts *tileset.Tileset) []TileData {
	var out []TileData
	for _, local := range ts.TileIndices() {
		meta, _ := ts.Tile(local)
		data := TileData{Metadata: metadata(&meta.Context, m.Components), Index: local}
		for _, f := range meta.Frames {
			data.Animation = append(data.Animation, AnimationFrame{Tile: f.Tile, Duration: int(f.Duration.Milliseconds())})
		}
		for _, obj := range meta.Objects {
			data.Objects = append(data.Objects, fromObject(m, obj))
		}
		out = append(out, data)
	}
	return out
}

// ToMap builds a new map from the representation. It fails without side
// effects on malformed input.
func (in *Map) ToMap() (*tilemap.Map, error) {
	m, err := tilemap.New(in.Name, tile.Extent{Rows: in.Rows, Cols: in.Cols}, common.Int2{X: in.TileWidth, Y: in.TileHeight})
	if err != nil {
		return nil, fmt.Errorf("ir: %w", err)
	}
	m.NextLayerIndex = max(in.NextLayerIndex, 1)
	m.NextObjectIndex = max(in.NextObjectIndex, 1)
	if m.Format, err = in.Format.toFormat(); err != nil {
		return nil, err
	}

	for _, c := range in.Components {
		def, err := m.Components.Define(c.Name)
		if err != nil {
			return nil, fmt.Errorf("ir: %w", err)
		}
		if err := addAttributes(&def.Attributes, c.Attributes); err != nil {
			return nil, fmt.Errorf("ir: component %s: %w", c.Name, err)
		}
	}
	if err := applyMetadata(&m.Context, in.Metadata, m.Components); err != nil {
		return nil, err
	}

	for _, t := range in.Tilesets {
		ts := tileset.New(t.Name, t.Image, common.Int2{X: t.ImageWidth, Y: t.ImageHeight}, common.Int2{X: t.TileWidth, Y: t.TileHeight})
		if t.TileCount > 0 {
			ts.TileCount = t.TileCount
		}
		if t.Columns > 0 {
			ts.Columns = t.Columns
		}
		if err := applyMetadata(&ts.Context, t.Metadata, m.Components); err != nil {
			return nil, err
		}
		if err := toTiles(m, ts, t.Tiles); err != nil {
			return nil, fmt.Errorf("ir: tileset %s: %w", t.Name, err)
		}
		if _, err := m.Tilesets.AttachAt(ts, tile.ID(t.FirstTile), t.Embedded); err != nil {
			return nil, fmt.Errorf("ir: tileset %s: %w", t.Name, err)
		}
	}

	for _, l := range in.Layers {
		converted, err := toLayer(m, l)
		if err != nil {
			return nil, err
		}
		if err := m.Root.Insert(m.Root.ID, -1, converted); err != nil {
			return nil, fmt.Errorf("ir: %w", err)
		}
	}
	if len(m.Root.Children) > 0 {
		m.ActiveLayer = m.Root.Children[0].ID
	}
	return m, nil
}

func (f TileFormat) toFormat() (tilemap.TileFormat, error) {
	out := tilemap.DefaultTileFormat()
	var err error
	if out.Encoding, err = tilemap.ParseEncoding(f.Encoding); err != nil {
		return out, fmt.Errorf("ir: %w", err)
	}
	if out.Compression, err = tilemap.ParseCompression(f.Compression); err != nil {
		return out, fmt.Errorf("ir: %w", err)
	}
	if f.ZlibLevel != nil {
		out.ZlibLevel = *f.ZlibLevel
	}
	if f.ZstdLevel != nil {
		out.ZstdLevel = *f.ZstdLevel
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("ir: %w", err)
	}
	return out, nil
}

func parseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ir: id %q: %w", s, err)
	}
	return id, nil
}

func parseAttribute(a Attribute) (attribute.Value, error) {
	t, err := attribute.ParseType(a.Type)
	if err != nil {
		return attribute.Value{}, err
	}
	return attribute.Parse(t, a.Value)
}

func addAttributes(p *attribute.Properties, attrs []Attribute) error {
	for _, a := range attrs {
		v, err := parseAttribute(a)
		if err != nil {
			return err
		}
		if err := p.Add(a.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func applyMetadata(ctx *attribute.Context, meta Metadata, defs *attribute.ComponentIndex) error {
	id, err := parseID(meta.ID)
	if err != nil {
		return err
	}
	ctx.ID = id
	ctx.Name = meta.Name
	if err := addAttributes(&ctx.Properties, meta.Properties); err != nil {
		return fmt.Errorf("ir: %s: %w", meta.Name, err)
	}
	for _, c := range meta.Components {
		def, ok := defs.ByName(c.Type)
		if !ok {
			return fmt.Errorf("ir: %s: %w: %q", meta.Name, attribute.ErrNoSuchComponent, c.Type)
		}
		comp := def.Instantiate()
		for _, a := range c.Attributes {
			v, err := parseAttribute(a)
			if err != nil {
				return fmt.Errorf("ir: %s: %w", meta.Name, err)
			}
			if err := comp.Attributes.Set(a.Name, v); err != nil {
				return fmt.Errorf("ir: %s: %w", meta.Name, err)
			}
		}
		if err := ctx.Attach(comp); err != nil {
			return fmt.Errorf("ir: %s: %w", meta.Name, err)
		}
	}
	return nil
}

func parseObjectKind(s string) (layer.ObjectKind, error) {
	for _, k := range []layer.ObjectKind{layer.PointObject, layer.RectObject, layer.EllipseObject} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ir: unknown object type %q", s)
}

func toObject(m *tilemap.Map, in Object) (*layer.Object, error) {
	kind, err := parseObjectKind(in.Type)
	if err != nil {
		return nil, err
	}
	obj := layer.NewObject(kind, in.Name, common.Vec2{X: in.X, Y: in.Y}, common.Vec2{X: in.Width, Y: in.Height})
	obj.Tag = in.Tag
	obj.Visible = in.Visible
	if err := applyMetadata(&obj.Context, in.Metadata, m.Components); err != nil {
		return nil, err
	}
	return obj, nil
}

func toTiles(m *tilemap.Map, ts *tileset.Tileset, tiles []TileData) error {
	for _, in := range tiles {
		if _, ok := ts.Tile(in.Index); ok {
			return fmt.Errorf("duplicate metadata for tile %d", in.Index)
		}
		meta := tileset.NewTileMeta(in.Index)
		if err := applyMetadata(&meta.Context, in.Metadata, m.Components); err != nil {
			return err
		}
		if meta.Name == "" {
			meta.Name = fmt.Sprintf("Tile %d", in.Index)
		}
		for _, f := range in.Animation {
			if f.Tile < 0 || f.Tile >= ts.TileCount || f.Duration <= 0 {
				return fmt.Errorf("tile %d: bad animation frame %+v", in.Index, f)
			}
			meta.InsertFrame(len(meta.Frames), tileset.Frame{Tile: f.Tile, Duration: time.Duration(f.Duration) * time.Millisecond})
		}
		for _, o := range in.Objects {
			obj, err := toObject(m, o)
			if err != nil {
				return err
			}
			meta.InsertObject(len(meta.Objects), obj)
		}
		if err := ts.SetTile(in.Index, meta); err != nil {
			return err
		}
	}
	return nil
}

func toLayer(m *tilemap.Map, in Layer) (*layer.Layer, error) {
	var l *layer.Layer
	switch in.Type {
	case layerTile:
		tiles, err := DecodeTiles(in.Data, m.Extent, m.Format)
		if err != nil {
			return nil, fmt.Errorf("ir: layer %s: %w", in.Name, err)
		}
		l = layer.NewTileLayerOf(in.Name, tiles)
	case layerObject:
		l = layer.NewObjectLayer(in.Name)
		for _, o := range in.Objects {
			obj, err := toObject(m, o)
			if err != nil {
				return nil, err
			}
			if err := l.AddObject(obj, -1); err != nil {
				return nil, fmt.Errorf("ir: %w", err)
			}
		}
	case layerGroup:
		l = layer.NewGroupLayer(in.Name)
		for _, child := range in.Layers {
			converted, err := toLayer(m, child)
			if err != nil {
				return nil, err
			}
			l.Children = append(l.Children, converted)
		}
	default:
		return nil, fmt.Errorf("ir: layer %s: unknown type %q", in.Name, in.Type)
	}
	l.Opacity = common.Clamp(in.Opacity, 0, 1)
	l.Visible = in.Visible
	if err := applyMetadata(&l.Context, in.Metadata, m.Components); err != nil {
		return nil, err
	}
	return l, nil
}
