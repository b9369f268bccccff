// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
)

// Registry holds the invalidation listeners of one paintable.
//
// The listener list is copy-on-write: Add and Remove publish a new slice
// under a per-registry mutex, Notify iterates whatever slice was published
// when it started and never takes the lock. A notification pass therefore
// neither blocks registration nor observes changes made during the pass.
//
// The zero value is ready to use. A Registry must not be copied after
// first use.
type Registry struct {
	mu        sync.Mutex // serializes writers
	listeners atomic.Pointer[[]InvalidationListener]
	onFailure atomic.Pointer[func(*ListenerError)]
}

// Add registers l. Registering the same listener twice results in two
// notifications per pass.
func (r *Registry) Add(l InvalidationListener) {
	if l == nil {
		misuse("add listener", ErrNilListener)
	}
	if !isComparable(l) {
		misuse("add listener", ErrListenerNotComparable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snapshot()
	next := make([]InvalidationListener, len(old), len(old)+1)
	copy(next, old)
	next = append(next, l)
	r.listeners.Store(&next)
}

// Remove drops one registration of l. Removing a listener that is not
// registered does nothing.
func (r *Registry) Remove(l InvalidationListener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snapshot()
	i := slices.IndexFunc(old, func(x InvalidationListener) bool {
		return sameListener(x, l)
	})
	if i < 0 {
		return
	}
	next := slices.Concat(old[:i], old[i+1:])
	r.listeners.Store(&next)
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.snapshot())
}

// OnFailure sets the function that receives listener failures. Failures
// are logged to the package logger regardless. Without a handler they are
// also reported through slog.Default at Error level. Pass nil to remove
// the handler.
func (r *Registry) OnFailure(fn func(*ListenerError)) {
	if fn == nil {
		r.onFailure.Store(nil)
		return
	}
	r.onFailure.Store(&fn)
}

// Notify delivers ev to the listeners registered when Notify was called,
// in registration order. It is safe to call from any goroutine.
//
// A listener that panics does not stop the pass; the failure is logged and
// handed to the OnFailure handler.
func (r *Registry) Notify(ev InvalidationEvent) {
	for _, l := range r.snapshot() {
		r.deliver(l, ev)
	}
}

func (r *Registry) deliver(l InvalidationListener, ev InvalidationEvent) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		le := &ListenerError{Listener: l, Event: ev, Value: v, Stack: debug.Stack()}
		Logger().Warn("paint: invalidation listener failed",
			"listener", reflect.TypeOf(l).String(),
			"panic", v)
		if fn := r.onFailure.Load(); fn != nil {
			(*fn)(le)
			return
		}
		// Nobody asked for failures; do not let them vanish.
		slog.Default().Error("paint: invalidation listener failed",
			"listener", reflect.TypeOf(l).String(),
			"panic", v,
			"stack", string(le.Stack))
	}()
	l.PaintableInvalidated(ev)
}

func (r *Registry) snapshot() []InvalidationListener {
	if p := r.listeners.Load(); p != nil {
		return *p
	}
	return nil
}

// isComparable reports whether l can be compared with ==. A comparable
// static type is not enough: a struct with an interface field holding a
// slice panics on comparison.
func isComparable(l InvalidationListener) (ok bool) {
	if !reflect.TypeOf(l).Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	other := l
	_ = l == other
	return true
}

// sameListener compares listeners by identity. A comparison that panics,
// possible only for an argument to Remove that Add would have rejected,
// counts as not equal.
func sameListener(a, b InvalidationListener) (same bool) {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
