// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package paint defines how map view layers render and announce changes.
//
// # Overview
//
// A [Paintable] is a layer that exists independently of any view. When a
// view adds the layer it calls [Paintable.AttachToMapView] and receives a
// [Painter]; it then calls [Painter.Paint] once per redraw with a fresh
// [Graphics], and finally [Painter.DetachFromMapView] exactly once when the
// layer is removed.
//
// Whenever a layer's visual state changes it calls Invalidate, which
// synchronously notifies its [InvalidationListener]s so the host can
// schedule a repaint.
//
// # Lifecycle
//
//	Unattached --attach--> Attached --detach--> Detached
//	                          ^                    |
//	                          +------attach--------+
//
// Each attach/detach pair is one cycle. Attaching twice, painting or
// detaching outside a cycle, and using a delegate painter from an earlier
// cycle are contract violations: the call panics with a [*ContractError].
//
// # Threading
//
// Attach, Paint and Detach run on the view goroutine. Invalidate may be
// called from any goroutine, concurrently with listener registration and
// with other Invalidate calls. Listeners run on the invalidating goroutine.
//
// # Base
//
// [Base] supplies the registry and the lifecycle. Layers embed it and add
// drawing by implementing [Renderer], and optionally [PainterFactory] to
// paint through a delegate.
package paint
