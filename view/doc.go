// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package view provides MapView, a host for paint layers.
//
// MapView owns the pixel buffer and the drawing surface. It drives the
// paint lifecycle for every layer it holds and turns their invalidations
// into damage. A typical loop:
//
//	v, _ := view.New(800, 600, view.WithBackground(color.White))
//	defer v.Close()
//
//	_ = v.AddLayer(layers.NewGrid(50, gridColor))
//
//	for range v.Redraw() {
//	    if region, ok := v.Render(); ok {
//	        present(v.Image(), region)
//	    }
//	}
//
// Layers may invalidate from any goroutine; Render and the layer
// management methods run on one goroutine.
package view
