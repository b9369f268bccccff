// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/surface"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/mapview/paint"
)

// Common errors returned by MapView operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("view: invalid dimensions")

	// ErrNilLayer is returned when a nil layer is added.
	ErrNilLayer = errors.New("view: nil layer")

	// ErrLayerExists is returned when a layer is added twice.
	ErrLayerExists = errors.New("view: layer already added")

	// ErrLayerNotFound is returned for layers that are not in the view.
	ErrLayerNotFound = errors.New("view: layer not found")

	// ErrViewClosed is returned by operations on a closed view.
	ErrViewClosed = errors.New("view: view is closed")

	// ErrNilProvider is returned when WithDeviceProvider gets nil.
	ErrNilProvider = errors.New("view: nil DeviceProvider")
)

// MapView hosts paint layers and renders them into an RGBA image.
//
// The view attaches each added layer, listens for its invalidations and
// detaches it on removal. Invalidations are accumulated as damage; Render
// repaints the damaged region only.
//
// All methods except Invalidate, InvalidateAll, NeedsRender and Redraw must
// be called from a single goroutine, the view goroutine. Those four are safe
// from any goroutine.
type MapView struct {
	width  int
	height int

	// front holds the last complete frame. back is painted into; only
	// the damaged region is copied to front after each pass, so layers
	// drawing outside the region cannot corrupt the visible frame.
	front   *image.RGBA
	back    *image.RGBA
	surface *surface.ImageSurface

	background image.Image
	entries    []*entry
	seq        uint64
	closed     bool

	damage *damage
	dirty  atomic.Bool
	redraw chan struct{}
}

// New creates a view of the given size with every pixel marked damaged.
func New(width, height int, opts ...Option) (*MapView, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.providerSet {
		if o.provider == nil {
			return nil, ErrNilProvider
		}
		// Non-fatal: without an accelerator that supports device
		// sharing the view renders on the CPU.
		if err := gg.SetAcceleratorDeviceProvider(o.provider); err != nil {
			paint.Logger().Warn("view: GPU device sharing unavailable", "err", err)
		}
	}

	v := &MapView{
		background: image.NewUniform(o.background),
		damage:     newDamage(o.maxDirtyRects),
		redraw:     make(chan struct{}, 1),
	}
	v.allocate(width, height)
	v.signal()
	return v, nil
}

func (v *MapView) allocate(width, height int) {
	v.width = width
	v.height = height
	v.front = image.NewRGBA(image.Rect(0, 0, width, height))
	v.back = image.NewRGBA(image.Rect(0, 0, width, height))
	v.surface = surface.NewImageSurfaceFromImage(v.back)
	v.damage.resize(v.Bounds())
}

// Bounds returns the view area, (0,0)-(width,height).
func (v *MapView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.width, v.height)
}

// Format returns the pixel format of the rendered image.
func (v *MapView) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the last rendered frame. It is owned by the view and is
// replaced by Resize.
func (v *MapView) Image() *image.RGBA {
	return v.front
}

func (v *MapView) String() string {
	return fmt.Sprintf("MapView{%dx%d, layers=%d}", v.width, v.height, len(v.entries))
}

// Invalidate marks r (view coordinates) for repainting. It never blocks.
func (v *MapView) Invalidate(r image.Rectangle) {
	if v.damage.add(r) {
		v.signal()
	}
}

// InvalidateAll marks the whole view for repainting. It never blocks.
func (v *MapView) InvalidateAll() {
	v.damage.addAll()
	v.signal()
}

// NeedsRender reports whether damage is pending.
func (v *MapView) NeedsRender() bool {
	return v.damage.pending()
}

// Redraw returns a channel that receives a value when a render is due.
// Multiple invalidations before the next Render produce one signal.
func (v *MapView) Redraw() <-chan struct{} {
	return v.redraw
}

func (v *MapView) signal() {
	if v.dirty.CompareAndSwap(false, true) {
		select {
		case v.redraw <- struct{}{}:
		default:
		}
	}
}

// Render repaints the damaged region: it is cleared to the background and
// every visible layer is painted into it in order, each with a fresh
// paint.Graphics. It returns the repainted region, or false if nothing was
// damaged.
func (v *MapView) Render() (image.Rectangle, bool) {
	if v.closed {
		return image.Rectangle{}, false
	}

	// Reset before taking the damage so that invalidations racing with
	// this pass signal again.
	v.dirty.Store(false)
	region, ok := v.damage.take()
	if !ok {
		return image.Rectangle{}, false
	}

	draw.Draw(v.back, region, v.background, image.Point{}, draw.Src)
	painted := 0
	for _, e := range v.entries {
		if !e.visible {
			continue
		}
		e.painter.Paint(paint.NewGraphics(v.back, v.surface, region))
		painted++
	}
	draw.Draw(v.front, region, v.back, region.Min, draw.Src)

	paint.Logger().Debug("view: rendered", "region", region.String(), "layers", painted)
	return region, true
}

// Resize replaces the buffers. Layers stay attached; the whole view is
// marked damaged.
func (v *MapView) Resize(width, height int) error {
	if v.closed {
		return ErrViewClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == v.width && height == v.height {
		return nil
	}
	old := v.surface
	v.allocate(width, height)
	if err := old.Close(); err != nil {
		paint.Logger().Warn("view: closing surface failed", "err", err)
	}
	v.InvalidateAll()
	return nil
}

// Close detaches every layer, topmost first, and releases the surface.
// Close is idempotent.
func (v *MapView) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	for i := len(v.entries) - 1; i >= 0; i-- {
		v.entries[i].detach()
	}
	v.entries = nil
	return v.surface.Close()
}

var _ paint.View = (*MapView)(nil)
