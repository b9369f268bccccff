// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command mapviewdemo stacks the bundled layers in a map view, replays a
// few invalidations and saves the final frame as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/gogpu/mapview/layers"
	"github.com/gogpu/mapview/paint"
	"github.com/gogpu/mapview/view"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "mapview.png", "output file")
		tile    = flag.Int("tile", 64, "tile size in pixels")
		grid    = flag.Int("grid", 50, "grid spacing in pixels")
		frames  = flag.Int("frames", 10, "number of animated frames")
		verbose = flag.Bool("v", false, "log lifecycle and render events")
	)
	flag.Parse()

	if *verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	v, err := view.New(*width, *height, view.WithBackground(color.RGBA{R: 242, G: 239, B: 233, A: 255}))
	if err != nil {
		log.Fatalf("Failed to create view: %v", err)
	}
	defer v.Close()

	tiles := layers.NewTiles(*tile, checkerTile(*tile))
	overlay := layers.NewImage(gradient(), image.Rect(*width/2, 0, *width, *height/2))
	marker := layers.NewFillRect(image.Rect(0, 0, 12, 12), color.RGBA{R: 200, G: 30, B: 30, A: 255})
	status := layers.NewLabel("", image.Pt(8, *height-8), color.Black)

	for _, add := range []struct {
		p    paint.Paintable
		opts []view.LayerOption
	}{
		{tiles, nil},
		{overlay, []view.LayerOption{view.AtZ(1)}},
		{layers.NewGrid(*grid, color.RGBA{R: 120, G: 120, B: 120, A: 160}), []view.LayerOption{view.AtZ(2)}},
		{marker, nil},
		{status, []view.LayerOption{view.AsTemporary()}},
	} {
		if err := v.AddLayer(add.p, add.opts...); err != nil {
			log.Fatalf("Failed to add layer: %v", err)
		}
	}

	// Move the marker along the diagonal; each step repaints only the
	// area it left and entered.
	for i := range *frames {
		x := i * (*width - 12) / max(*frames, 1)
		y := i * (*height - 12) / max(*frames, 1)
		marker.SetRect(image.Rect(x, y, x+12, y+12))
		status.SetText(fmt.Sprintf("frame %d  marker at %d,%d", i, x, y))

		<-v.Redraw()
		region, _ := v.Render()
		log.Printf("frame %d: repainted %v", i, region)
	}
	v.Render()

	dc := gg.NewContextForImage(v.Image())
	defer dc.Close()
	if err := dc.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	stats, _ := tiles.CacheStats()
	log.Printf("Map saved to %s (%dx%d, %d tiles cached, %d hits, %d misses)\n",
		*output, *width, *height, stats.Len, stats.Hits, stats.Misses)
}

// checkerTile returns a source that shades tiles in a checker pattern.
func checkerTile(size int) layers.TileSource {
	return func(t image.Point, dst *image.RGBA) {
		light := color.RGBA{R: 214, G: 228, B: 200, A: 255}
		dark := color.RGBA{R: 190, G: 212, B: 178, A: 255}
		c := light
		if (t.X+t.Y)&1 != 0 {
			c = dark
		}
		for y := range size {
			for x := range size {
				dst.SetRGBA(x, y, c)
			}
		}
		// Tile border.
		edge := color.RGBA{R: 160, G: 180, B: 150, A: 255}
		for i := range size {
			dst.SetRGBA(i, 0, edge)
			dst.SetRGBA(0, i, edge)
		}
	}
}

// gradient returns a small translucent image that the overlay stretches.
func gradient() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: 0, B: uint8(y * 8), A: 128})
		}
	}
	return img
}
