// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image"

	"github.com/gogpu/gg/surface"
)

// rectPath returns a closed path around r.
func rectPath(r image.Rectangle) *surface.Path {
	p := surface.NewPath()
	p.Rectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	return p
}

func linePath(x0, y0, x1, y1 float64) *surface.Path {
	p := surface.NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	return p
}

// invalidator is the part of paint.Base the setters need.
type invalidator interface {
	Invalidate()
	InvalidateRect(r image.Rectangle)
}

// invalidateChange invalidates the union of the old and new areas. An
// empty area stands for the whole view.
func invalidateChange(inv invalidator, old, cur image.Rectangle) {
	if old.Empty() || cur.Empty() {
		inv.Invalidate()
		return
	}
	inv.InvalidateRect(old.Union(cur))
}
