// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layers contains ready-made paint layers.
//
// Every layer embeds paint.Base and can be added to any host that drives
// the paint lifecycle, such as view.MapView:
//
//	v.AddLayer(layers.NewFill(color.White))
//	v.AddLayer(layers.NewGrid(32, gridColor))
//	v.AddLayer(layers.NewLabel("Ljubljana", image.Pt(10, 20), color.Black), view.AsTemporary())
//
// Setters are safe to call from any goroutine. They invalidate the area
// they affect; the host repaints on its own goroutine.
package layers
