// Package ir is the intermediate representation of a map file. Maps are
// saved by converting them to IR and marshalling it as YAML, and opened by
// parsing YAML into IR and building a fresh map from it, so a file that fails
// to load never touches an open document.
package ir

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatVersion is written to every saved map.
const FormatVersion = 1

var ErrUnsupportedVersion = errors.New("ir: unsupported format version")

type Attribute struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type AttachedComponent struct {
	Type       string      `yaml:"type"`
	Attributes []Attribute `yaml:"attributes,omitempty"`
}

// Metadata is the context data shared by maps, layers, objects and tilesets.
type Metadata struct {
	ID         string              `yaml:"id,omitempty"`
	Name       string              `yaml:"name"`
	Properties []Attribute         `yaml:"properties,omitempty"`
	Components []AttachedComponent `yaml:"components,omitempty"`
}

type Component struct {
	Name       string      `yaml:"name"`
	Attributes []Attribute `yaml:"attributes,omitempty"`
}

type Object struct {
	Metadata `yaml:",inline"`
	Type     string  `yaml:"type"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Tag      string  `yaml:"tag,omitempty"`
	Visible  bool    `yaml:"visible"`
}

// Layer holds Data for tile layers, Objects for object layers and Layers for
// groups.
type Layer struct {
	Metadata `yaml:",inline"`
	Type     string   `yaml:"type"`
	Opacity  float64  `yaml:"opacity"`
	Visible  bool     `yaml:"visible"`
	Data     string   `yaml:"data,omitempty"`
	Objects  []Object `yaml:"objects,omitempty"`
	Layers   []Layer  `yaml:"layers,omitempty"`
}

type AnimationFrame struct {
	Tile     int `yaml:"tile"`
	Duration int `yaml:"duration_ms"`
}

// TileData is the metadata of one tile, keyed by its local index.
type TileData struct {
	Metadata  `yaml:",inline"`
	Index     int              `yaml:"index"`
	Animation []AnimationFrame `yaml:"animation,omitempty"`
	Objects   []Object         `yaml:"objects,omitempty"`
}

type Tileset struct {
	Metadata    `yaml:",inline"`
	FirstTile   int32      `yaml:"first_tile"`
	Image       string     `yaml:"image"`
	ImageWidth  int        `yaml:"image_width"`
	ImageHeight int        `yaml:"image_height"`
	TileWidth   int        `yaml:"tile_width"`
	TileHeight  int        `yaml:"tile_height"`
	TileCount   int        `yaml:"tile_count"`
	Columns     int        `yaml:"columns"`
	Embedded    bool       `yaml:"embedded,omitempty"`
	Tiles       []TileData `yaml:"tiles,omitempty"`
}

type TileFormat struct {
	Encoding    string `yaml:"encoding"`
	Compression string `yaml:"compression,omitempty"`
	ZlibLevel   *int   `yaml:"zlib_level,omitempty"`
	ZstdLevel   *int   `yaml:"zstd_level,omitempty"`
}

type Map struct {
	Metadata        `yaml:",inline"`
	Version         int         `yaml:"version"`
	Rows            int         `yaml:"rows"`
	Cols            int         `yaml:"cols"`
	TileWidth       int         `yaml:"tile_width"`
	TileHeight      int         `yaml:"tile_height"`
	NextLayerIndex  int         `yaml:"next_layer_index"`
	NextObjectIndex int         `yaml:"next_object_index"`
	Format          TileFormat  `yaml:"tile_format"`
	Components      []Component `yaml:"component_definitions,omitempty"`
	Tilesets        []Tileset   `yaml:"tilesets,omitempty"`
	Layers          []Layer     `yaml:"layers,omitempty"`
}

// Parse decodes a YAML map file.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ir: unmarshal: %w", err)
	}
	if m.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	return &m, nil
}

// Marshal encodes m as YAML.
func Marshal(m *Map) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("ir: marshal: %w", err)
	}
	return data, nil
}

func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ir: load %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ir: load %s: %w", path, err)
	}
	return m, nil
}

func Save(path string, m *Map) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ir: save %s: %w", path, err)
	}
	return nil
}
