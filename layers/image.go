// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/gg/surface"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/mapview/paint"
)

// Image paints a raster image, for example a background map scan, into a
// destination rectangle. Images whose size differs from the destination
// are scaled with the configured interpolator.
//
// SetImage may be called from any goroutine, typically the one that
// finished loading or decoding the image.
type Image struct {
	paint.Base

	content atomic.Pointer[imageContent]
	scaler  xdraw.Scaler
}

type imageContent struct {
	src image.Image
	dst image.Rectangle
}

// ImageOption configures an Image layer.
type ImageOption func(*Image)

// WithScaler sets the interpolator used when the image has to be scaled.
// The default is draw.ApproxBiLinear.
func WithScaler(s xdraw.Scaler) ImageOption {
	return func(l *Image) {
		if s != nil {
			l.scaler = s
		}
	}
}

// NewImage returns a layer showing src in dst. A nil src paints nothing;
// an empty dst stretches the image over the whole view.
func NewImage(src image.Image, dst image.Rectangle, opts ...ImageOption) *Image {
	l := &Image{scaler: xdraw.ApproxBiLinear}
	for _, opt := range opts {
		opt(l)
	}
	l.content.Store(&imageContent{src: src, dst: dst.Canon()})
	l.Init(l)
	return l
}

// Source returns the current image and its destination.
func (l *Image) Source() (image.Image, image.Rectangle) {
	c := l.content.Load()
	return c.src, c.dst
}

// SetImage replaces the image and its destination and invalidates the
// area covered before and after.
func (l *Image) SetImage(src image.Image, dst image.Rectangle) {
	dst = dst.Canon()
	old := l.content.Swap(&imageContent{src: src, dst: dst})
	invalidateChange(l, old.dst, dst)
}

// Render draws the part of the image that falls inside the paint bounds.
func (l *Image) Render(g *paint.Graphics) {
	c := l.content.Load()
	if c.src == nil || g.Empty() {
		return
	}
	dst := c.dst
	if dst.Empty() {
		dst = g.Buffer().Bounds()
	}
	sb := c.src.Bounds()
	if sb.Empty() || !dst.Overlaps(g.Bounds()) {
		return
	}

	if sb.Size() == dst.Size() {
		// 1:1, blit only the visible part.
		vis := dst.Intersect(g.Bounds())
		sr := vis.Sub(dst.Min).Add(sb.Min)
		g.Surface().DrawImage(c.src, surface.Pt(float64(vis.Min.X), float64(vis.Min.Y)),
			&surface.DrawImageOptions{SrcRect: &sr, Alpha: 1})
		return
	}
	// Scale clips to the region but maps the full destination rectangle.
	l.scaler.Scale(g.Region(), dst, c.src, sb, xdraw.Over, nil)
}

var _ paint.Renderer = (*Image)(nil)
