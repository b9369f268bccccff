// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
)

// recorder is a comparable listener that records the events it receives.
type recorder struct {
	name   string
	mu     sync.Mutex
	events []InvalidationEvent
	onCall func(ev InvalidationEvent)
}

func (r *recorder) PaintableInvalidated(ev InvalidationEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	if r.onCall != nil {
		r.onCall(ev)
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// expectViolation runs fn and fails unless it panics with a *ContractError
// wrapping want.
func expectViolation(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected contract violation %v, got none", want)
		}
		ce, ok := r.(*ContractError)
		if !ok {
			t.Fatalf("panic value = %T (%v), want *ContractError", r, r)
		}
		if !errors.Is(ce, want) {
			t.Fatalf("contract error = %v, want %v", ce, want)
		}
	}()
	fn()
}

func TestRegistryNotifyOrder(t *testing.T) {
	var r Registry
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		r.Add(ListenerFunc(func(InvalidationEvent) { order = append(order, name) }))
	}

	r.Notify(InvalidationEvent{})

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("notified %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRegistryDuplicates(t *testing.T) {
	var r Registry
	l := &recorder{}
	r.Add(l)
	r.Add(l)

	r.Notify(InvalidationEvent{})
	if got := l.count(); got != 2 {
		t.Fatalf("duplicate listener notified %d times, want 2", got)
	}

	r.Remove(l)
	if r.Len() != 1 {
		t.Fatalf("Len() after one Remove = %d, want 1", r.Len())
	}
	r.Notify(InvalidationEvent{})
	if got := l.count(); got != 3 {
		t.Errorf("listener notified %d times in total, want 3", got)
	}
}

func TestRegistryRemoveUnknown(t *testing.T) {
	var r Registry
	known := &recorder{}
	r.Add(known)

	r.Remove(&recorder{})
	r.Remove(nil)
	r.Remove(ListenerFunc(func(InvalidationEvent) {}))

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryZeroValue(t *testing.T) {
	var r Registry
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	r.Notify(InvalidationEvent{}) // must not panic
}

func TestRegistrySnapshot(t *testing.T) {
	var r Registry
	late := &recorder{name: "late"}
	second := &recorder{name: "second"}
	first := &recorder{name: "first"}
	first.onCall = func(InvalidationEvent) {
		// Changes made during the pass only apply to later passes.
		r.Add(late)
		r.Remove(second)
	}
	r.Add(first)
	r.Add(second)

	r.Notify(InvalidationEvent{})
	if first.count() != 1 || second.count() != 1 {
		t.Fatalf("first pass: first=%d second=%d, want 1 and 1", first.count(), second.count())
	}
	if late.count() != 0 {
		t.Fatalf("listener added during pass was notified in that pass")
	}

	first.onCall = nil
	r.Notify(InvalidationEvent{})
	if second.count() != 1 {
		t.Errorf("removed listener notified again: %d", second.count())
	}
	if late.count() != 1 {
		t.Errorf("late listener notified %d times in second pass, want 1", late.count())
	}
}

func TestRegistryFailingListener(t *testing.T) {
	var r Registry
	boom := errors.New("boom")

	var failures []*ListenerError
	r.OnFailure(func(le *ListenerError) { failures = append(failures, le) })

	failing := ListenerFunc(func(InvalidationEvent) { panic(boom) })
	after := &recorder{}
	r.Add(failing)
	r.Add(after)

	r.Notify(InvalidationEvent{}) // must not propagate the panic

	if after.count() != 1 {
		t.Errorf("listener after the failing one notified %d times, want 1", after.count())
	}
	if len(failures) != 1 {
		t.Fatalf("failure handler called %d times, want 1", len(failures))
	}
	le := failures[0]
	if le.Listener != failing {
		t.Errorf("ListenerError.Listener = %v, want the failing listener", le.Listener)
	}
	if !errors.Is(le, boom) {
		t.Errorf("errors.Is(%v, boom) = false", le)
	}
	if len(le.Stack) == 0 {
		t.Error("ListenerError.Stack is empty")
	}

	r.OnFailure(nil)
	r.Notify(InvalidationEvent{}) // still isolated without a handler
	if after.count() != 2 {
		t.Errorf("after.count() = %d, want 2", after.count())
	}
}

func TestRegistryRejectsBadListeners(t *testing.T) {
	var r Registry
	expectViolation(t, ErrNilListener, func() { r.Add(nil) })
	expectViolation(t, ErrListenerNotComparable, func() { r.Add(sliceListener{}) })
	expectViolation(t, ErrListenerNotComparable, func() { r.Add(anyListener{v: []int{1}}) })
	if r.Len() != 0 {
		t.Errorf("Len() = %d after rejected adds, want 0", r.Len())
	}
}

func TestRegistryRemoveUncomparableValue(t *testing.T) {
	var r Registry
	r.Add(anyListener{v: 1})

	r.Remove(anyListener{v: []int{1}})
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	r.Remove(anyListener{v: 1})
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

// sliceListener has a non-comparable dynamic type.
type sliceListener []int

func (sliceListener) PaintableInvalidated(InvalidationEvent) {}

// anyListener has a comparable type whose values may not be.
type anyListener struct{ v any }

func (anyListener) PaintableInvalidated(InvalidationEvent) {}

// TestRegistryMatchesModel drives random add/remove/notify sequences and
// checks each pass against a plain slice model.
func TestRegistryMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pool := make([]*recorder, 5)
	for i := range pool {
		pool[i] = &recorder{}
	}

	for round := 0; round < 50; round++ {
		var r Registry
		var model []*recorder

		for step := 0; step < 40; step++ {
			l := pool[rng.IntN(len(pool))]
			switch rng.IntN(3) {
			case 0:
				r.Add(l)
				model = append(model, l)
			case 1:
				r.Remove(l)
				for i, m := range model {
					if m == l {
						model = append(model[:i:i], model[i+1:]...)
						break
					}
				}
			case 2:
				before := make(map[*recorder]int)
				for _, p := range pool {
					before[p] = p.count()
				}
				r.Notify(InvalidationEvent{})
				for _, p := range pool {
					exp := 0
					for _, m := range model {
						if m == p {
							exp++
						}
					}
					if got := p.count() - before[p]; got != exp {
						t.Fatalf("round %d step %d: listener notified %d times, want %d", round, step, got, exp)
					}
				}
			}
			if r.Len() != len(model) {
				t.Fatalf("round %d step %d: Len() = %d, want %d", round, step, r.Len(), len(model))
			}
		}
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	var r Registry
	var delivered atomic.Int64
	stable := ListenerFunc(func(InvalidationEvent) { delivered.Add(1) })
	r.Add(stable)

	const goroutines = 16
	const iterations = 200

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range iterations {
				r.Notify(InvalidationEvent{})
			}
		}()
		go func() {
			defer wg.Done()
			for range iterations {
				l := &recorder{}
				r.Add(l)
				r.Remove(l)
			}
		}()
	}
	wg.Wait()

	if got := delivered.Load(); got != goroutines*iterations {
		t.Errorf("stable listener notified %d times, want %d", got, goroutines*iterations)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func BenchmarkRegistryNotify(b *testing.B) {
	var r Registry
	for range 8 {
		r.Add(ListenerFunc(func(InvalidationEvent) {}))
	}
	ev := InvalidationEvent{}
	b.ReportAllocs()
	for b.Loop() {
		r.Notify(ev)
	}
}
