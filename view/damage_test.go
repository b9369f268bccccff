// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"image"
	"testing"
)

func TestDamage(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name   string
		limit  int
		rects  []image.Rectangle
		want   image.Rectangle
		wantOK bool
	}{
		{"nothing", 4, nil, image.Rectangle{}, false},
		{"single", 4, []image.Rectangle{image.Rect(10, 10, 20, 20)}, image.Rect(10, 10, 20, 20), true},
		{"union", 4, []image.Rectangle{image.Rect(0, 0, 5, 5), image.Rect(50, 60, 70, 80)}, image.Rect(0, 0, 70, 80), true},
		{"clipped", 4, []image.Rectangle{image.Rect(90, 90, 150, 150)}, image.Rect(90, 90, 100, 100), true},
		{"reversed", 4, []image.Rectangle{{Min: image.Pt(20, 20), Max: image.Pt(10, 10)}}, image.Rect(10, 10, 20, 20), true},
		{"outside", 4, []image.Rectangle{image.Rect(200, 200, 210, 210)}, image.Rectangle{}, false},
		{"at limit", 2, []image.Rectangle{image.Rect(0, 0, 1, 1), image.Rect(2, 2, 3, 3)}, image.Rect(0, 0, 3, 3), true},
		{"overflow", 2, []image.Rectangle{image.Rect(0, 0, 1, 1), image.Rect(2, 2, 3, 3), image.Rect(4, 4, 5, 5)}, bounds, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDamage(tt.limit)
			d.resize(bounds)
			d.take()

			for _, r := range tt.rects {
				d.add(r)
			}
			got, ok := d.take()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("take() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if d.pending() {
				t.Error("pending() = true after take")
			}
		})
	}
}

func TestDamageFullAbsorbsRects(t *testing.T) {
	d := newDamage(DefaultMaxDirtyRects)
	d.resize(image.Rect(0, 0, 10, 10))

	if !d.add(image.Rect(1, 1, 2, 2)) {
		t.Error("add() = false while a full repaint is pending")
	}
	if got, ok := d.take(); !ok || got != image.Rect(0, 0, 10, 10) {
		t.Errorf("take() = %v, %v, want full bounds", got, ok)
	}
	if _, ok := d.take(); ok {
		t.Error("second take() reported damage")
	}
}
