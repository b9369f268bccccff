// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"image/color"

	"github.com/gogpu/gpucontext"
)

// DefaultMaxDirtyRects is the number of pending dirty rectangles after
// which the view gives up on partial repaints and redraws everything.
const DefaultMaxDirtyRects = 16

// Option configures a MapView during creation.
//
// Example:
//
//	v, err := view.New(800, 600,
//	    view.WithBackground(color.White),
//	    view.WithMaxDirtyRects(32))
type Option func(*options)

type options struct {
	background    color.Color
	maxDirtyRects int
	provider      gpucontext.DeviceProvider
	providerSet   bool
}

func defaultOptions() options {
	return options{
		background:    color.Transparent,
		maxDirtyRects: DefaultMaxDirtyRects,
	}
}

// WithBackground sets the color the damaged region is cleared to before
// layers are painted. The default is transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = c
		}
	}
}

// WithMaxDirtyRects sets the dirty rectangle threshold. Values <= 0 select
// DefaultMaxDirtyRects.
func WithMaxDirtyRects(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxDirtyRects
		}
		o.maxDirtyRects = n
	}
}

// WithDeviceProvider shares the host's GPU device with gg's accelerator.
// The provider usually comes from gogpu.App.GPUContextProvider(). Without
// a registered accelerator this has no effect and rendering stays on the
// CPU.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
		o.providerSet = true
	}
}

// LayerOption configures how a layer is added to a view.
type LayerOption func(*layerOptions)

type layerOptions struct {
	temporary bool
	z         int
}

// AsTemporary puts the layer in the temporary layer list. Temporary layers
// are painted above all regular layers.
func AsTemporary() LayerOption {
	return func(o *layerOptions) {
		o.temporary = true
	}
}

// AtZ sets the z-order of the layer within its list. Higher values are
// painted on top; equal values keep insertion order.
func AtZ(z int) LayerOption {
	return func(o *layerOptions) {
		o.z = z
	}
}
