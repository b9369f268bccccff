// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gg/surface"

	"github.com/gogpu/mapview/paint"
)

// DefaultGridSpacing is the spacing used when NewGrid gets a non-positive
// value.
const DefaultGridSpacing = 32

// Grid strokes horizontal and vertical lines every Spacing pixels,
// starting at the view origin.
type Grid struct {
	paint.Base

	mu      sync.Mutex
	spacing int
	width   float64
	color   color.Color
}

// NewGrid returns a grid layer with 1px lines.
func NewGrid(spacing int, c color.Color) *Grid {
	if spacing <= 0 {
		spacing = DefaultGridSpacing
	}
	g := &Grid{spacing: spacing, width: 1, color: c}
	g.Init(g)
	return g
}

// Spacing returns the distance between lines in pixels.
func (l *Grid) Spacing() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.spacing
}

// SetSpacing changes the line distance. Non-positive values are ignored.
func (l *Grid) SetSpacing(spacing int) {
	if spacing <= 0 {
		return
	}
	l.mu.Lock()
	changed := l.spacing != spacing
	l.spacing = spacing
	l.mu.Unlock()
	if changed {
		l.Invalidate()
	}
}

// SetLineWidth changes the stroke width. Non-positive values are ignored.
func (l *Grid) SetLineWidth(w float64) {
	if w <= 0 {
		return
	}
	l.mu.Lock()
	l.width = w
	l.mu.Unlock()
	l.Invalidate()
}

// SetColor changes the line color.
func (l *Grid) SetColor(c color.Color) {
	l.mu.Lock()
	l.color = c
	l.mu.Unlock()
	l.Invalidate()
}

// Render strokes the lines that cross the paint bounds. Lines are centred
// on pixel columns and rows so that a 1px line covers exactly one.
func (l *Grid) Render(g *paint.Graphics) {
	l.mu.Lock()
	spacing, width, c := l.spacing, l.width, l.color
	l.mu.Unlock()

	b := g.Bounds()
	if c == nil || b.Empty() {
		return
	}

	style := surface.DefaultStrokeStyle().WithColor(c).WithWidth(width)
	s := g.Surface()
	// One path per line: the image surface strokes a path as a single
	// polyline.
	for _, x := range gridLines(b.Min.X, b.Max.X, spacing, width) {
		s.Stroke(linePath(float64(x)+0.5, float64(b.Min.Y), float64(x)+0.5, float64(b.Max.Y)), style)
	}
	for _, y := range gridLines(b.Min.Y, b.Max.Y, spacing, width) {
		s.Stroke(linePath(float64(b.Min.X), float64(y)+0.5, float64(b.Max.X), float64(y)+0.5), style)
	}
}

// gridLines returns the line offsets in one axis whose stroke reaches into
// [lo, hi). A line at n covers n+0.5 +/- width/2, so wide lines just
// outside the range still count.
func gridLines(lo, hi, spacing int, width float64) []int {
	half := width / 2
	start := int(math.Floor(float64(lo)-0.5-half)) + 1
	var lines []int
	for n := firstLine(start, spacing); float64(n) < float64(hi)-0.5+half; n += spacing {
		lines = append(lines, n)
	}
	return lines
}

// firstLine returns the smallest multiple of spacing that is >= v.
func firstLine(v, spacing int) int {
	n := v / spacing * spacing
	if n < v {
		n += spacing
	}
	return n
}

var _ paint.Renderer = (*Grid)(nil)
