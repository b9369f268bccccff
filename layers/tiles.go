// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/gg/surface"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/mapview/paint"
)

// DefaultTileSize is the tile edge used when NewTiles gets a non-positive
// size.
const DefaultTileSize = 256

// DefaultTileCacheCapacity is the number of rendered tiles kept per attach
// cycle.
const DefaultTileCacheCapacity = 256

// TileSource renders the tile at tile coordinates t into dst. dst is
// TileSize x TileSize pixels with its origin at (0, 0) and starts
// transparent. Sources are called on the view goroutine during paint.
type TileSource func(t image.Point, dst *image.RGBA)

// TileCacheStats describes the tile cache of the attached painter.
type TileCacheStats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// Tiles paints a grid of square tiles produced by a TileSource.
//
// Tiles does not paint itself. Each attach creates a fresh tile painter
// with its own LRU cache of rendered tiles; detaching drops the cache. The
// same layer can therefore move between views without carrying stale
// tiles along.
type Tiles struct {
	paint.Base

	size     int
	capacity int
	source   TileSource

	// current is the painter of the active attach cycle.
	current atomic.Pointer[tilePainter]
}

// TilesOption configures a Tiles layer.
type TilesOption func(*Tiles)

// WithTileCacheCapacity sets how many rendered tiles are kept. Values <= 0
// select DefaultTileCacheCapacity.
func WithTileCacheCapacity(n int) TilesOption {
	return func(t *Tiles) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// NewTiles returns a tile layer.
func NewTiles(size int, src TileSource, opts ...TilesOption) *Tiles {
	if size <= 0 {
		size = DefaultTileSize
	}
	t := &Tiles{size: size, capacity: DefaultTileCacheCapacity, source: src}
	for _, opt := range opts {
		opt(t)
	}
	t.Init(t)
	return t
}

// TileSize returns the tile edge in pixels.
func (t *Tiles) TileSize() int {
	return t.size
}

// CreateMapViewPainter returns a new tile painter with an empty cache.
func (t *Tiles) CreateMapViewPainter(paint.MapViewEvent) paint.Painter {
	tiles, err := lru.New[image.Point, *image.RGBA](t.capacity)
	if err != nil {
		// capacity is always positive
		panic(err)
	}
	return &tilePainter{layer: t, tiles: tiles}
}

// AttachToMapView starts an attach cycle and makes its painter the one
// Refresh, RefreshTile and CacheStats act on.
func (t *Tiles) AttachToMapView(ev paint.MapViewEvent) paint.Painter {
	p := t.Base.AttachToMapView(ev)
	if tp, ok := paint.Unwrap(p).(*tilePainter); ok {
		t.current.Store(tp)
	}
	return p
}

// Refresh drops every rendered tile and invalidates the layer.
func (t *Tiles) Refresh() {
	if p := t.current.Load(); p != nil {
		p.tiles.Purge()
	}
	t.Invalidate()
}

// RefreshTile drops one rendered tile and invalidates its area.
func (t *Tiles) RefreshTile(tile image.Point) {
	if p := t.current.Load(); p != nil {
		p.tiles.Remove(tile)
	}
	t.InvalidateRect(t.tileRect(tile))
}

// CacheStats returns the statistics of the active tile cache. ok is false
// while the layer is not attached.
func (t *Tiles) CacheStats() (stats TileCacheStats, ok bool) {
	p := t.current.Load()
	if p == nil {
		return TileCacheStats{}, false
	}
	return TileCacheStats{
		Len:      p.tiles.Len(),
		Capacity: t.capacity,
		Hits:     p.hits.Load(),
		Misses:   p.misses.Load(),
	}, true
}

func (t *Tiles) tileRect(tile image.Point) image.Rectangle {
	return image.Rect(0, 0, t.size, t.size).Add(tile.Mul(t.size))
}

// tileOf returns the tile containing pixel p.
func (t *Tiles) tileOf(p image.Point) image.Point {
	return image.Pt(floorDiv(p.X, t.size), floorDiv(p.Y, t.size))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// tilePainter is the delegate painter of one attach cycle.
type tilePainter struct {
	layer  *Tiles
	tiles  *lru.Cache[image.Point, *image.RGBA]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Paint draws every tile overlapping the paint bounds, rendering missing
// tiles through the source.
func (p *tilePainter) Paint(g *paint.Graphics) {
	b := g.Bounds()
	if b.Empty() || p.layer.source == nil {
		return
	}
	t := p.layer
	lo := t.tileOf(b.Min)
	hi := t.tileOf(b.Max.Sub(image.Pt(1, 1)))
	s := g.Surface()

	for ty := lo.Y; ty <= hi.Y; ty++ {
		for tx := lo.X; tx <= hi.X; tx++ {
			tile := image.Pt(tx, ty)
			img := p.tile(tile)
			dst := t.tileRect(tile)
			vis := dst.Intersect(b)
			sr := vis.Sub(dst.Min)
			s.DrawImage(img, surface.Pt(float64(vis.Min.X), float64(vis.Min.Y)),
				&surface.DrawImageOptions{SrcRect: &sr, Alpha: 1})
		}
	}
}

// tile returns the cached rendering of tile, rendering it on a miss.
func (p *tilePainter) tile(tile image.Point) *image.RGBA {
	if img, ok := p.tiles.Get(tile); ok {
		p.hits.Add(1)
		return img
	}
	p.misses.Add(1)
	img := image.NewRGBA(image.Rect(0, 0, p.layer.size, p.layer.size))
	p.layer.source(tile, img)
	p.tiles.Add(tile, img)
	return img
}

// DetachFromMapView drops the tile cache of this cycle.
func (p *tilePainter) DetachFromMapView(paint.MapViewEvent) {
	p.layer.current.CompareAndSwap(p, nil)
	n := p.tiles.Len()
	p.tiles.Purge()
	paint.Logger().Debug("layers: tile cache released", "tiles", n)
}

var (
	_ paint.PainterFactory = (*Tiles)(nil)
	_ paint.Painter        = (*tilePainter)(nil)
)
