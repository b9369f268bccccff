// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"image"
	"sync"
)

// damage accumulates the regions that need repainting. Layers invalidate
// from any goroutine, so every method locks.
type damage struct {
	mu     sync.Mutex
	bounds image.Rectangle
	rects  []image.Rectangle
	full   bool
	max    int
}

func newDamage(limit int) *damage {
	return &damage{max: limit, full: true}
}

// resize sets the area damage is clipped to and marks all of it.
func (d *damage) resize(bounds image.Rectangle) {
	d.mu.Lock()
	d.bounds = bounds
	d.full = true
	d.rects = d.rects[:0]
	d.mu.Unlock()
}

// add marks r, clipped to the view. It reports whether anything is pending
// afterwards. Once more than max rects accumulate the whole view is marked.
func (d *damage) add(r image.Rectangle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.full {
		return true
	}
	r = r.Canon().Intersect(d.bounds)
	if r.Empty() {
		return len(d.rects) > 0
	}
	d.rects = append(d.rects, r)
	if len(d.rects) > d.max {
		d.full = true
		d.rects = d.rects[:0]
	}
	return true
}

func (d *damage) addAll() {
	d.mu.Lock()
	d.full = true
	d.rects = d.rects[:0]
	d.mu.Unlock()
}

func (d *damage) pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.full || len(d.rects) > 0
}

// take returns the region to repaint, the union of the pending rects or
// the whole view after a full invalidation, and resets the tracker.
func (d *damage) take() (image.Rectangle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.full {
		d.full = false
		d.rects = d.rects[:0]
		return d.bounds, !d.bounds.Empty()
	}
	if len(d.rects) == 0 {
		return image.Rectangle{}, false
	}
	var region image.Rectangle
	for _, r := range d.rects {
		region = region.Union(r)
	}
	d.rects = d.rects[:0]
	return region, true
}
