// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs(nil).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestListenerFailureIsLogged(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	p := newTestLayer()
	p.AddInvalidationListener(ListenerFunc(func(InvalidationEvent) { panic("bad listener") }))
	p.Invalidate()

	out := buf.String()
	if !strings.Contains(out, "invalidation listener failed") {
		t.Errorf("log output missing failure record: %s", out)
	}
	if !strings.Contains(out, "bad listener") {
		t.Errorf("log output missing panic value: %s", out)
	}
}

func TestUnhandledListenerFailureReported(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(nil)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	var r Registry
	r.Add(ListenerFunc(func(InvalidationEvent) { panic("bad listener") }))
	r.Notify(InvalidationEvent{})

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "invalidation listener failed") {
		t.Errorf("default logger output = %q, want an error record", out)
	}
	if !strings.Contains(out, "bad listener") {
		t.Errorf("default logger output missing panic value: %q", out)
	}

	// A failure handler takes over reporting.
	buf.Reset()
	var handled int
	r.OnFailure(func(*ListenerError) { handled++ })
	r.Notify(InvalidationEvent{})
	if handled != 1 {
		t.Errorf("handler called %d times, want 1", handled)
	}
	if buf.Len() != 0 {
		t.Errorf("handled failure also went to the default logger: %q", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}
