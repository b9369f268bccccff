// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"fmt"
	"image"

	"github.com/gogpu/gg/surface"
	"github.com/gogpu/gputypes"
)

// Graphics gives a painter everything it needs to render one frame: the
// buffer being drawn into, a drawing surface bound to that buffer, and the
// sub-region of the buffer that is being redrawn.
//
// A Graphics is built by the view immediately before a paint call and
// discarded after it. The buffer is owned by the view; painters borrow it
// for the call and must not keep a reference to the buffer, the surface or
// any sub-image of them once Paint returns.
type Graphics struct {
	surface surface.Surface
	buffer  *image.RGBA
	bounds  image.Rectangle
}

// NewGraphics creates a Graphics for one paint call.
//
// bounds is in buffer coordinates and is clipped to the buffer. If s is nil
// an image surface drawing directly into buffer is used.
func NewGraphics(buffer *image.RGBA, s surface.Surface, bounds image.Rectangle) *Graphics {
	if buffer == nil {
		misuse("new graphics", ErrNilBuffer)
	}
	if s == nil {
		s = surface.NewImageSurfaceFromImage(buffer)
	}
	return &Graphics{
		surface: s,
		buffer:  buffer,
		bounds:  bounds.Canon().Intersect(buffer.Bounds()),
	}
}

// Surface returns the drawing surface bound to the buffer. It may already
// contain content painted by layers below.
func (g *Graphics) Surface() surface.Surface {
	return g.surface
}

// Buffer returns the pixel buffer being drawn into.
func (g *Graphics) Buffer() *image.RGBA {
	return g.buffer
}

// Bounds returns the area being redrawn, in buffer coordinates. It always
// lies within the buffer.
func (g *Graphics) Bounds() image.Rectangle {
	return g.bounds
}

// Region returns the part of the buffer inside Bounds. Drawing through it
// with image/draw cannot touch pixels outside the redrawn area.
func (g *Graphics) Region() *image.RGBA {
	return g.buffer.SubImage(g.bounds).(*image.RGBA)
}

// Empty reports whether there is nothing to redraw.
func (g *Graphics) Empty() bool {
	return g.bounds.Empty()
}

// Format returns the pixel format of the buffer.
func (g *Graphics) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (g *Graphics) String() string {
	return fmt.Sprintf("Graphics{buffer=%v, bounds=%v}", g.buffer.Bounds(), g.bounds)
}
