package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/tactile/tilemap"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	f, err := s.Format()
	if err != nil {
		t.Fatal(err)
	}
	if f != tilemap.DefaultTileFormat() {
		t.Fatalf("expected default tile format, got %+v", f)
	}
	if s.CommandCapacity != 100 || !s.FixTilesOnOpen {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name     string
		data     string
		capacity int
		rows     int
		err      error
	}{
		{"missing", "", 100, 32, nil},
		{"partial", "command_capacity: 7\n", 7, 32, nil},
		{"nested", "map:\n  rows: 5\n", 100, 5, nil},
		{"invalid_level", "tile_format:\n  zstd_level: 40\n", 100, 32, ErrInvalidSettings},
		{"invalid_capacity", "command_capacity: 0\n", 100, 32, ErrInvalidSettings},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name+".yaml")
			if c.data != "" {
				if err := os.WriteFile(path, []byte(c.data), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			s, err := Load(path)
			if !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
			if s.CommandCapacity != c.capacity || s.Map.Rows != c.rows {
				t.Fatalf("unexpected settings %+v", s)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := Defaults()
	s.LogVerboseEvents = true
	s.TileFormat.Encoding = "base64"
	s.TileFormat.Compression = "zlib"
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatalf("expected %+v, got %+v", s, got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("command_capacity: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("command_capacity: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "settings.yaml" {
			t.Fatalf("unexpected event for %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a change event")
	}
}
