// Package config loads editor settings. Defaults are embedded in the binary
// and a YAML file on disk overrides any subset of them.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalidSettings = errors.New("config: invalid settings")

type MapSettings struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
}

type TileFormatSettings struct {
	Encoding    string `yaml:"encoding"`
	Compression string `yaml:"compression"`
	ZlibLevel   int    `yaml:"zlib_level"`
	ZstdLevel   int    `yaml:"zstd_level"`
}

type Settings struct {
	CommandCapacity  int                `yaml:"command_capacity"`
	Map              MapSettings        `yaml:"map"`
	TileFormat       TileFormatSettings `yaml:"tile_format"`
	FixTilesOnOpen   bool               `yaml:"fix_tiles_on_open"`
	LogVerboseEvents bool               `yaml:"log_verbose_events"`
}

// Defaults returns the embedded settings.
func Defaults() Settings {
	var s Settings
	if err := yaml.Unmarshal(defaultsYAML, &s); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return s
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings as YAML.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}

func (s Settings) Validate() error {
	if s.CommandCapacity < 1 {
		return fmt.Errorf("%w: command_capacity %d", ErrInvalidSettings, s.CommandCapacity)
	}
	if s.Map.Rows < 1 || s.Map.Cols < 1 || s.Map.TileWidth < 1 || s.Map.TileHeight < 1 {
		return fmt.Errorf("%w: map %+v", ErrInvalidSettings, s.Map)
	}
	if _, err := s.Format(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Format returns the tile format new maps start with.
func (s Settings) Format() (tilemap.TileFormat, error) {
	enc, err := tilemap.ParseEncoding(s.TileFormat.Encoding)
	if err != nil {
		return tilemap.TileFormat{}, err
	}
	comp, err := tilemap.ParseCompression(s.TileFormat.Compression)
	if err != nil {
		return tilemap.TileFormat{}, err
	}
	f := tilemap.TileFormat{
		Encoding:    enc,
		Compression: comp,
		ZlibLevel:   s.TileFormat.ZlibLevel,
		ZstdLevel:   s.TileFormat.ZstdLevel,
	}
	return f, f.Validate()
}

func (s Settings) Extent() tile.Extent {
	return tile.Extent{Rows: s.Map.Rows, Cols: s.Map.Cols}
}

func (s Settings) TileSize() common.Int2 {
	return common.Int2{X: s.Map.TileWidth, Y: s.Map.TileHeight}
}
