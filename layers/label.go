// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layers

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/mapview/paint"
)

// ReplacementRune stands in for characters the label face cannot draw.
const ReplacementRune = '?'

// Label draws a single line of text with a fixed bitmap face. It is meant
// for overlays such as coordinates, scale notes and debug output.
//
// The face covers printable ASCII only. Accented Latin letters are shown
// without their accents; anything else is replaced with ReplacementRune.
type Label struct {
	paint.Base

	mu    sync.Mutex
	face  font.Face
	text  string
	dot   image.Point
	color color.Color
}

// NewLabel returns a label whose baseline starts at dot.
func NewLabel(text string, dot image.Point, c color.Color) *Label {
	l := &Label{
		face:  basicfont.Face7x13,
		text:  prepareText(text),
		dot:   dot,
		color: c,
	}
	l.Init(l)
	return l
}

// Text returns the label text after normalisation.
func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetText changes the text and invalidates the old and new extents.
func (l *Label) SetText(text string) {
	text = prepareText(text)
	l.mu.Lock()
	if text == l.text {
		l.mu.Unlock()
		return
	}
	old := l.extent()
	l.text = text
	cur := l.extent()
	l.mu.Unlock()
	l.invalidateExtents(old, cur)
}

// Move sets the baseline origin.
func (l *Label) Move(dot image.Point) {
	l.mu.Lock()
	old := l.extent()
	l.dot = dot
	cur := l.extent()
	l.mu.Unlock()
	l.invalidateExtents(old, cur)
}

// SetColor changes the text color.
func (l *Label) SetColor(c color.Color) {
	l.mu.Lock()
	l.color = c
	r := l.extent()
	l.mu.Unlock()
	l.InvalidateRect(r)
}

// Extent returns the pixels the text covers in view coordinates.
func (l *Label) Extent() image.Rectangle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.extent()
}

// extent requires l.mu.
func (l *Label) extent() image.Rectangle {
	if l.text == "" {
		return image.Rectangle{}
	}
	b, _ := font.BoundString(l.face, l.text)
	return image.Rect(
		b.Min.X.Floor(), b.Min.Y.Floor(),
		b.Max.X.Ceil(), b.Max.Y.Ceil(),
	).Add(l.dot)
}

func (l *Label) invalidateExtents(old, cur image.Rectangle) {
	switch {
	case old.Empty():
		l.InvalidateRect(cur)
	case cur.Empty():
		l.InvalidateRect(old)
	default:
		l.InvalidateRect(old.Union(cur))
	}
}

// Render draws the text clipped to the paint bounds.
func (l *Label) Render(g *paint.Graphics) {
	l.mu.Lock()
	text, dot, c, ext := l.text, l.dot, l.color, l.extent()
	l.mu.Unlock()

	if text == "" || c == nil || !ext.Overlaps(g.Bounds()) {
		return
	}
	d := &font.Drawer{
		Dst:  g.Region(),
		Src:  image.NewUniform(c),
		Face: l.face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(text)
}

// prepareText folds s into what the face can show. Compatibility
// decomposition splits accented letters and ligatures; the combining marks
// are then dropped, leaving the ASCII base letters. Control characters
// become spaces since the label is a single line.
func prepareText(s string) string {
	s = norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < ' ' || r == 0x7f:
			b.WriteByte(' ')
		case r < 0x7f:
			b.WriteRune(r)
		case language.LookupScript(r) == language.Inherited:
			// combining mark
		default:
			b.WriteRune(ReplacementRune)
		}
	}
	return b.String()
}

var _ paint.Renderer = (*Label)(nil)
