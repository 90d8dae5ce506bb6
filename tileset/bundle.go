package tileset

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/viewport"
)

var (
	ErrNoSuchTileset    = errors.New("tileset: no such tileset")
	ErrAlreadyAttached  = errors.New("tileset: tileset already attached")
	ErrRangeOverlap     = errors.New("tileset: tile range overlaps an attached tileset")
	ErrInvalidFirstTile = errors.New("tileset: first tile must be positive")
	ErrEmptyTileset     = errors.New("tileset: tileset has no tiles")
	ErrRangeOverflow    = errors.New("tileset: tile range exceeds the id space")
)

// Attached binds a tileset to a map. The global range [FirstTile, LastTile]
// is inclusive at both ends.
type Attached struct {
	Tileset   *Tileset
	FirstTile tile.ID
	LastTile  tile.ID
	Embedded  bool
	Viewport  viewport.Viewport
}

// Contains reports whether id falls within the attached range.
func (a *Attached) Contains(id tile.ID) bool {
	return a != nil && id >= a.FirstTile && id <= a.LastTile
}

// ToLocal converts a global id into a local tile index.
func (a *Attached) ToLocal(id tile.ID) (int, bool) {
	if !a.Contains(id) {
		return -1, false
	}
	return int(id - a.FirstTile), true
}

// ToGlobal converts a local index into a global id.
func (a *Attached) ToGlobal(local int) (tile.ID, bool) {
	if a == nil || local < 0 || local >= a.Tileset.TileCount {
		return tile.Empty, false
	}
	return a.FirstTile + tile.ID(local), true
}

// Bundle is the registry of tilesets attached to one map. Ranges are
// pairwise disjoint and NextTileID is always past every LastTile.
type Bundle struct {
	attached []*Attached
	nextTile tile.ID
	active   uuid.UUID
}

// NewBundle creates an empty registry whose first assigned id is 1.
func NewBundle() *Bundle {
	return &Bundle{nextTile: 1}
}

// NextTileID returns the first id the next Attach call will assign.
func (b *Bundle) NextTileID() tile.ID {
	return b.nextTile
}

func (b *Bundle) Len() int {
	return len(b.attached)
}

// Attach assigns the next free range to ts.
func (b *Bundle) Attach(ts *Tileset, embedded bool) (*Attached, error) {
	return b.AttachAt(ts, b.nextTile, embedded)
}

// AttachAt attaches ts with an explicit first tile, as when restoring a map
// or undoing a detach.
func (b *Bundle) AttachAt(ts *Tileset, first tile.ID, embedded bool) (*Attached, error) {
	if ts == nil {
		return nil, ErrNoSuchTileset
	}
	if first < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFirstTile, first)
	}
	if ts.TileCount < 1 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTileset, ts.Name)
	}
	// NextTileID must stay representable past the last id.
	if int64(first)+int64(ts.TileCount) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d tiles from %d", ErrRangeOverflow, ts.TileCount, first)
	}
	if _, ok := b.Get(ts.ID); ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAttached, ts.ID)
	}
	last := first + tile.ID(ts.TileCount) - 1
	for _, other := range b.attached {
		if first <= other.LastTile && other.FirstTile <= last {
			return nil, fmt.Errorf("%w: [%d, %d] vs %s [%d, %d]", ErrRangeOverlap, first, last, other.Tileset.Name, other.FirstTile, other.LastTile)
		}
	}

	a := &Attached{
		Tileset:   ts,
		FirstTile: first,
		LastTile:  last,
		Embedded:  embedded,
		Viewport:  viewport.New(ts.TileSize.Vec2()),
	}
	b.attached = append(b.attached, a)
	if last >= b.nextTile {
		b.nextTile = last + 1
	}
	if b.active == uuid.Nil {
		b.active = ts.ID
	}
	return a, nil
}

// Detach removes the tileset with id. NextTileID is left untouched so that
// ids are never reused while stale references may still exist.
func (b *Bundle) Detach(id uuid.UUID) (*Attached, error) {
	for i, a := range b.attached {
		if a.Tileset.ID == id {
			b.attached = append(b.attached[:i], b.attached[i+1:]...)
			if b.active == id {
				b.active = uuid.Nil
				if len(b.attached) > 0 {
					b.active = b.attached[0].Tileset.ID
				}
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchTileset, id)
}

// Restore re-inserts a previously detached attachment unchanged.
func (b *Bundle) Restore(a *Attached) error {
	restored, err := b.AttachAt(a.Tileset, a.FirstTile, a.Embedded)
	if err != nil {
		return err
	}
	restored.Viewport = a.Viewport
	return nil
}

func (b *Bundle) Get(id uuid.UUID) (*Attached, bool) {
	for _, a := range b.attached {
		if a.Tileset.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Lookup returns the attachment owning the global id.
func (b *Bundle) Lookup(id tile.ID) (*Attached, bool) {
	if id == tile.Empty {
		return nil, false
	}
	for _, a := range b.attached {
		if a.Contains(id) {
			return a, true
		}
	}
	return nil, false
}

// IsValidTile reports whether id belongs to an attached tileset.
func (b *Bundle) IsValidTile(id tile.ID) bool {
	_, ok := b.Lookup(id)
	return ok
}

// All returns the attachments in attach order.
func (b *Bundle) All() []*Attached {
	return append([]*Attached(nil), b.attached...)
}

// Active returns the selected tileset, if any.
func (b *Bundle) Active() (*Attached, bool) {
	return b.Get(b.active)
}

// Select makes id the active tileset.
func (b *Bundle) Select(id uuid.UUID) error {
	if _, ok := b.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchTileset, id)
	}
	b.active = id
	return nil
}

// TileSize returns the native tile size of the tileset owning id.
func (b *Bundle) TileSize(id tile.ID) (common.Int2, bool) {
	a, ok := b.Lookup(id)
	if !ok {
		return common.Int2{}, false
	}
	return a.Tileset.TileSize, true
}
