// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg/surface"

	"github.com/gogpu/mapview/paint"
)

// Fill paints a solid color over a rectangle, or over the whole view when
// the rectangle is empty.
type Fill struct {
	paint.Base

	mu    sync.Mutex
	rect  image.Rectangle
	color color.Color
}

// NewFill returns a layer that fills the whole view with c.
func NewFill(c color.Color) *Fill {
	return NewFillRect(image.Rectangle{}, c)
}

// NewFillRect returns a layer that fills r (view coordinates) with c.
func NewFillRect(r image.Rectangle, c color.Color) *Fill {
	f := &Fill{rect: r.Canon(), color: c}
	f.Init(f)
	return f
}

// Color returns the fill color.
func (f *Fill) Color() color.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

// Rect returns the filled rectangle. An empty rectangle means the whole
// view.
func (f *Fill) Rect() image.Rectangle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rect
}

// SetColor changes the fill color and invalidates the filled area.
func (f *Fill) SetColor(c color.Color) {
	f.mu.Lock()
	f.color = c
	r := f.rect
	f.mu.Unlock()
	invalidateChange(f, r, r)
}

// SetRect moves the fill and invalidates both the old and new areas.
func (f *Fill) SetRect(r image.Rectangle) {
	r = r.Canon()
	f.mu.Lock()
	old := f.rect
	f.rect = r
	f.mu.Unlock()
	invalidateChange(f, old, r)
}

// Render fills the part of the rectangle inside the paint bounds.
func (f *Fill) Render(g *paint.Graphics) {
	f.mu.Lock()
	r, c := f.rect, f.color
	f.mu.Unlock()

	if c == nil {
		return
	}
	if r.Empty() {
		r = g.Buffer().Bounds()
	}
	r = r.Intersect(g.Bounds())
	if r.Empty() {
		return
	}
	g.Surface().Fill(rectPath(r), surface.FillStyle{Color: c, Rule: surface.FillRuleNonZero})
}

var (
	_ paint.Paintable = (*Fill)(nil)
	_ paint.Renderer  = (*Fill)(nil)
)
