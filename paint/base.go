// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"
	"reflect"
	"sync/atomic"
)

// Base implements the parts of Paintable that every layer shares: the
// invalidation listener registry and the attach/detach lifecycle.
//
// A layer embeds Base, calls Init with itself, and implements Renderer:
//
//	type Grid struct {
//	    paint.Base
//	}
//
//	func NewGrid() *Grid {
//	    g := &Grid{}
//	    g.Init(g)
//	    return g
//	}
//
//	func (g *Grid) Render(gr *paint.Graphics) { ... }
//
// To paint through a separate object, the layer also implements
// PainterFactory. Layers that hold view-scoped resources override
// DetachFromMapView and call Base.DetachFromMapView from it.
//
// AttachToMapView, Paint and DetachFromMapView run on the view goroutine.
// Invalidate and InvalidateRect may be called from any goroutine.
type Base struct {
	registry Registry
	self     Paintable
	state    atomic.Int32

	// Owned by the view goroutine.
	view      View
	temporary bool
	cycle     uint64
	delegate  *cyclePainter
}

// Init binds b to the layer that embeds it. It must be called once, before
// the layer is shared.
func (b *Base) Init(self Paintable) {
	if self == nil {
		violate("init", b.State(), ErrNotInitialized)
	}
	b.self = self
}

// State returns the lifecycle state. Safe for concurrent use.
func (b *Base) State() State {
	return State(b.state.Load())
}

// View returns the view the layer is attached to, or nil.
func (b *Base) View() View {
	return b.view
}

// Temporary reports whether the current attach put the layer in the
// view's temporary layer list.
func (b *Base) Temporary() bool {
	return b.temporary
}

// Cycle returns the number of attach calls so far.
func (b *Base) Cycle() uint64 {
	return b.cycle
}

// AttachToMapView records the view, selects the painter and enters the
// Attached state. Attaching while already attached is a contract error.
//
// The painter is the layer itself unless the layer implements
// PainterFactory. A delegate is asked for anew on every attach.
func (b *Base) AttachToMapView(ev MapViewEvent) Painter {
	b.mustInit("attach")
	if s := b.State(); s == Attached {
		violate("attach", s, ErrAlreadyAttached)
	}

	p := b.createPainter(ev)

	b.view = ev.View
	b.temporary = ev.Temporary
	b.cycle++
	b.state.Store(int32(Attached))

	Logger().Debug("paint: attached",
		"layer", reflect.TypeOf(b.self).String(),
		"cycle", b.cycle,
		"temporary", ev.Temporary,
		"delegate", p != b.self)

	if p == b.self {
		return b.self
	}
	b.delegate = &cyclePainter{base: b, painter: p, cycle: b.cycle}
	return b.delegate
}

func (b *Base) createPainter(ev MapViewEvent) Painter {
	if f, ok := b.self.(PainterFactory); ok {
		if p := f.CreateMapViewPainter(ev); p != nil {
			return p
		}
	}
	return b.self
}

// DetachFromMapView ends the attach cycle. It releases nothing by itself;
// if a delegate painter is active, the delegate is detached once.
func (b *Base) DetachFromMapView(ev MapViewEvent) {
	b.mustInit("detach")
	b.mustBeAttached("detach")
	b.endCycle(ev)
}

func (b *Base) endCycle(ev MapViewEvent) {
	d := b.delegate
	b.delegate = nil
	b.view = nil
	b.state.Store(int32(Detached))

	Logger().Debug("paint: detached",
		"layer", reflect.TypeOf(b.self).String(),
		"cycle", b.cycle)

	if d != nil {
		d.painter.DetachFromMapView(ev)
	}
}

// Paint checks that the layer is attached and calls its Render method.
// Layers without a Render method paint nothing.
func (b *Base) Paint(g *Graphics) {
	b.mustInit("paint")
	b.mustBeAttached("paint")
	if r, ok := b.self.(Renderer); ok {
		r.Render(g)
	}
}

// AddInvalidationListener registers l. Duplicates are notified twice.
func (b *Base) AddInvalidationListener(l InvalidationListener) {
	b.registry.Add(l)
}

// RemoveInvalidationListener removes one registration of l, if any.
func (b *Base) RemoveInvalidationListener(l InvalidationListener) {
	b.registry.Remove(l)
}

// OnListenerFailure sets the handler for listeners that panic during
// Invalidate.
func (b *Base) OnListenerFailure(fn func(*ListenerError)) {
	b.registry.OnFailure(fn)
}

// Listeners returns the number of registered listeners.
func (b *Base) Listeners() int {
	return b.registry.Len()
}

// Invalidate tells every listener that the layer needs repainting. Each
// call is one synchronous notification pass on the calling goroutine.
func (b *Base) Invalidate() {
	b.mustInit("invalidate")
	b.registry.Notify(InvalidationEvent{Source: b.self})
}

// InvalidateRect is Invalidate restricted to r, in view coordinates. An
// empty r marks nothing stale and notifies no one.
func (b *Base) InvalidateRect(r image.Rectangle) {
	b.mustInit("invalidate")
	r = r.Canon()
	if r.Empty() {
		return
	}
	b.registry.Notify(InvalidationEvent{Source: b.self, Area: r})
}

func (b *Base) mustInit(op string) {
	if b.self == nil {
		violate(op, b.State(), ErrNotInitialized)
	}
}

func (b *Base) mustBeAttached(op string) {
	switch s := b.State(); s {
	case Unattached:
		violate(op, s, ErrNotAttached)
	case Detached:
		violate(op, s, ErrDetached)
	}
}

// cyclePainter wraps a delegate painter so that it can only be used during
// the attach cycle that produced it.
type cyclePainter struct {
	base    *Base
	painter Painter
	cycle   uint64
}

func (p *cyclePainter) Paint(g *Graphics) {
	p.check("paint")
	p.painter.Paint(g)
}

func (p *cyclePainter) DetachFromMapView(ev MapViewEvent) {
	p.check("detach")
	p.base.endCycle(ev)
}


func (p *cyclePainter) check(op string) {
	b := p.base
	if b.cycle != p.cycle || (b.State() == Attached && b.delegate != p) {
		violate(op, b.State(), ErrStalePainter)
	}
	b.mustBeAttached(op)
}

// Unwrap returns the painter a layer delegates to when p was returned by
// Base.AttachToMapView for a PainterFactory layer, and p otherwise.
func Unwrap(p Painter) Painter {
	if cp, ok := p.(*cyclePainter); ok {
		return cp.painter
	}
	return p
}

var (
	_ Paintable = (*Base)(nil)
	_ Painter   = (*cyclePainter)(nil)
)
