// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gogpu/mapview/paint"
)

// entry is one layer attached to the view.
type entry struct {
	paintable paint.Paintable
	painter   paint.Painter
	listener  paint.InvalidationListener
	event     paint.MapViewEvent
	z         int
	seq       uint64
	visible   bool
}

// detach unregisters the view's listener and ends the attach cycle.
func (e *entry) detach() {
	e.paintable.RemoveInvalidationListener(e.listener)
	e.painter.DetachFromMapView(e.event)
}

// comparePaintOrder orders regular layers before temporary ones, then by
// z, then by insertion.
func comparePaintOrder(a, b *entry) int {
	if a.event.Temporary != b.event.Temporary {
		if a.event.Temporary {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.z, b.z); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// AddLayer attaches p to the view and schedules a full repaint.
//
// The view calls p.AttachToMapView once and paints through the returned
// painter until the layer is removed.
func (v *MapView) AddLayer(p paint.Paintable, opts ...LayerOption) error {
	if v.closed {
		return ErrViewClosed
	}
	if p == nil {
		return ErrNilLayer
	}
	if v.find(p) >= 0 {
		return fmt.Errorf("%w: %T", ErrLayerExists, p)
	}

	var lo layerOptions
	for _, opt := range opts {
		opt(&lo)
	}

	v.seq++
	e := &entry{
		paintable: p,
		event:     paint.MapViewEvent{View: v, Temporary: lo.temporary},
		z:         lo.z,
		seq:       v.seq,
		visible:   true,
	}
	e.painter = p.AttachToMapView(e.event)
	e.listener = paint.ListenerFunc(v.layerInvalidated)
	p.AddInvalidationListener(e.listener)

	v.entries = append(v.entries, e)
	slices.SortStableFunc(v.entries, comparePaintOrder)

	paint.Logger().Debug("view: layer added",
		"layer", fmt.Sprintf("%T", p),
		"temporary", lo.temporary,
		"z", lo.z)
	v.InvalidateAll()
	return nil
}

// RemoveLayer detaches p and schedules a full repaint.
func (v *MapView) RemoveLayer(p paint.Paintable) error {
	if v.closed {
		return ErrViewClosed
	}
	i := v.find(p)
	if i < 0 {
		return fmt.Errorf("%w: %T", ErrLayerNotFound, p)
	}
	e := v.entries[i]
	v.entries = slices.Delete(v.entries, i, i+1)
	e.detach()

	paint.Logger().Debug("view: layer removed", "layer", fmt.Sprintf("%T", p))
	v.InvalidateAll()
	return nil
}

// SetLayerVisible shows or hides p without detaching it. Hidden layers
// keep their attach cycle but are not painted.
func (v *MapView) SetLayerVisible(p paint.Paintable, visible bool) error {
	i := v.find(p)
	if i < 0 {
		return fmt.Errorf("%w: %T", ErrLayerNotFound, p)
	}
	if e := v.entries[i]; e.visible != visible {
		e.visible = visible
		v.InvalidateAll()
	}
	return nil
}

// Layers returns the attached layers in paint order, bottom first.
func (v *MapView) Layers() []paint.Paintable {
	out := make([]paint.Paintable, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.paintable
	}
	return out
}

func (v *MapView) find(p paint.Paintable) int {
	return slices.IndexFunc(v.entries, func(e *entry) bool {
		return e.paintable == p
	})
}

// layerInvalidated runs on whatever goroutine invalidated the layer; it
// only records damage.
func (v *MapView) layerInvalidated(ev paint.InvalidationEvent) {
	if ev.Whole() {
		v.InvalidateAll()
		return
	}
	v.Invalidate(ev.Area)
}
