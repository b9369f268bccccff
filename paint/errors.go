// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"errors"
	"fmt"
)

// Contract violations. These are programming errors: the operation panics
// with a *ContractError wrapping one of them.
var (
	// ErrNotInitialized is raised when a Base is used before Init.
	ErrNotInitialized = errors.New("paint: base not initialized")

	// ErrAlreadyAttached is raised by a second attach without a detach.
	ErrAlreadyAttached = errors.New("paint: already attached to a map view")

	// ErrNotAttached is raised by paint or detach before any attach.
	ErrNotAttached = errors.New("paint: not attached to a map view")

	// ErrDetached is raised by paint or detach after the cycle ended.
	ErrDetached = errors.New("paint: detached from map view")

	// ErrStalePainter is raised when a painter from an earlier attach
	// cycle is used.
	ErrStalePainter = errors.New("paint: painter belongs to an earlier attach cycle")

	// ErrNilBuffer is raised when a Graphics is built without a buffer.
	ErrNilBuffer = errors.New("paint: nil buffer")

	// ErrNilListener is raised when a nil listener is registered.
	ErrNilListener = errors.New("paint: nil invalidation listener")

	// ErrListenerNotComparable is raised when a listener cannot be
	// compared for removal (e.g. a bare func or a struct holding a slice).
	ErrListenerNotComparable = errors.New("paint: invalidation listener is not comparable")
)

// ContractError is the panic value for a violated precondition.
type ContractError struct {
	// Op is the operation that was called, e.g. "attach".
	Op string
	// State is the lifecycle state at the time of the call. It is only
	// set for lifecycle operations; see HasState.
	State State
	// Err is the sentinel describing the violation.
	Err error

	lifecycle bool
}

// HasState reports whether State describes the lifecycle at the time of
// the violation. It is false for operations that have no lifecycle, such
// as registering a listener or building a Graphics.
func (e *ContractError) HasState() bool {
	return e.lifecycle
}

func (e *ContractError) Error() string {
	if !e.lifecycle {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s in state %s: %v", e.Op, e.State, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// violate logs and panics for a lifecycle operation called in the wrong
// state. Contract errors are not recoverable failures; the panic points at
// the offending caller.
func violate(op string, state State, err error) {
	ce := &ContractError{Op: op, State: state, Err: err, lifecycle: true}
	Logger().Error("paint: contract violation", "op", op, "state", state.String(), "err", err)
	panic(ce)
}

// misuse is violate for operations without a lifecycle state.
func misuse(op string, err error) {
	ce := &ContractError{Op: op, Err: err}
	Logger().Error("paint: contract violation", "op", op, "err", err)
	panic(ce)
}

// ListenerError reports a listener that panicked during a notification
// pass. Delivery to the remaining listeners continues.
type ListenerError struct {
	Listener InvalidationListener
	Event    InvalidationEvent
	// Value is the recovered panic value.
	Value any
	// Stack is the goroutine stack at the time of the panic.
	Stack []byte
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("paint: invalidation listener %T failed: %v", e.Listener, e.Value)
}

// Unwrap returns the recovered value if it was an error.
func (e *ListenerError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
