// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"fmt"
	"image"
)

// Painter is the object a view invokes once per redraw.
//
// A Painter is obtained from Paintable.AttachToMapView and is used until the
// view calls DetachFromMapView on it, exactly once. It may be the Paintable
// itself or a separate delegate; callers must not assume either.
type Painter interface {
	// Paint renders into g. The buffer behind g is borrowed for the
	// duration of the call and must not be retained.
	Paint(g *Graphics)

	// DetachFromMapView is called when the layer is removed from the view
	// and this painter is not used any more.
	DetachFromMapView(ev MapViewEvent)
}

// Paintable is a layer that can be painted on a map view and that
// announces when its visual output became stale.
//
// Most implementations embed Base, which provides everything except the
// drawing itself (see Renderer).
type Paintable interface {
	Painter

	// AttachToMapView is called when the layer is added to a view. It
	// returns the painter the view uses from now on.
	AttachToMapView(ev MapViewEvent) Painter

	AddInvalidationListener(l InvalidationListener)
	RemoveInvalidationListener(l InvalidationListener)
}

// PainterFactory is implemented by layers that paint through a delegate.
// Base.AttachToMapView consults it; without it the layer paints itself.
//
// CreateMapViewPainter must only select or construct the painter.
type PainterFactory interface {
	CreateMapViewPainter(ev MapViewEvent) Painter
}

// Renderer is implemented by layers built on Base. Base.Paint checks the
// lifecycle and then calls Render.
type Renderer interface {
	Render(g *Graphics)
}

// View is the host a Paintable is attached to.
type View interface {
	// Bounds returns the view area in screen coordinates.
	Bounds() image.Rectangle
}

// MapViewEvent is passed on attach and detach.
type MapViewEvent struct {
	View View
	// Temporary reports whether the layer is in the view's temporary
	// layer list, painted above all regular layers.
	Temporary bool
}

func (e MapViewEvent) String() string {
	return fmt.Sprintf("MapViewEvent{view=%v, temporary=%t}", e.View, e.Temporary)
}

// InvalidationEvent announces that Source must be repainted some time in
// the future.
type InvalidationEvent struct {
	Source Paintable
	// Area is the stale region in view coordinates. The zero rectangle
	// means the whole paintable.
	Area image.Rectangle
}

// Whole reports whether the event covers the entire paintable.
func (e InvalidationEvent) Whole() bool {
	return e.Area.Empty()
}

func (e InvalidationEvent) String() string {
	if e.Whole() {
		return fmt.Sprintf("InvalidationEvent{source=%p}", e.Source)
	}
	return fmt.Sprintf("InvalidationEvent{source=%p, area=%v}", e.Source, e.Area)
}

// InvalidationListener receives invalidation events. It may be called from
// any goroutine; listeners that touch view state must re-dispatch.
type InvalidationListener interface {
	PaintableInvalidated(ev InvalidationEvent)
}

// funcListener adapts a function. It is always used by pointer so that it
// can be compared on removal.
type funcListener struct {
	fn func(ev InvalidationEvent)
}

func (l *funcListener) PaintableInvalidated(ev InvalidationEvent) {
	l.fn(ev)
}

// ListenerFunc wraps fn as an InvalidationListener. Keep the returned value
// to remove the listener later; each call returns a distinct listener.
func ListenerFunc(fn func(ev InvalidationEvent)) InvalidationListener {
	return &funcListener{fn: fn}
}

// State is the lifecycle state of a Base.
type State int32

const (
	// Unattached is the initial state.
	Unattached State = iota
	// Attached means the layer is bound to a view and may be painted.
	Attached
	// Detached means the last attach cycle ended. A new attach starts
	// another cycle.
	Detached
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
