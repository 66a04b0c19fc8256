// SPDX-License-Identifier: Unlicense OR MIT

// Package text implements the shaping, line-breaking, visual-reorder,
// glyph-lookup and fully-shaped-text composition of a 2D text layout
// pipeline: styled Unicode codepoints in, a positioned, bidi-reordered,
// line-broken glyph model out.
package text

import (
	"github.com/go-text/typesetting/language"

	"textcore.dev/font"
)

// Align selects horizontal line alignment.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Wrap selects whether lines break at the supplied width.
type Wrap uint8

const (
	WrapOn Wrap = iota
	WrapOff
)

// Sizing selects whether the layout width/height are caller-fixed or
// derived from content.
type Sizing uint8

const (
	SizingAutoWidth Sizing = iota
	SizingFixed
)

// Overflow selects how content exceeding the box is handled.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowClipped
	OverflowEllipsis
)

// Origin selects where y=0 sits relative to the shaped text.
type Origin uint8

const (
	OriginTop Origin = iota
	OriginBaseline
)

// Run is a caller-supplied styled run of contiguous codepoints (the
// "Styled Run" of SPEC_FULL.md §3).
type Run struct {
	Font           font.Face
	Size           float32
	LineHeight     float32 // < 0 means "use font intrinsic"
	LetterSpacing  float32
	CodepointCount int
	Script         language.Script
	StyleID        uint16
	Level          uint8 // bidi level; even = LTR, odd = RTL
}

// Direction reports the run's direction from its bidi level's parity.
func (r Run) Direction() (rtl bool) { return r.Level%2 == 1 }

// GlyphRun is one contiguous span of glyphs covered by a single font,
// bidi level and script — the output unit of the shaper (SPEC_FULL.md
// §3 "Glyph Run").
type GlyphRun struct {
	Font          font.Face
	Size          float32
	LineHeight    float32
	LetterSpacing float32
	StyleID       uint16
	Level         uint8

	Glyphs      []font.GlyphID
	TextIndices []int
	Advances    []float32
	Xpos        []float32 // len(Glyphs)+1, prefix sum of Advances
	OffsetsX    []float32
	OffsetsY    []float32
	// Breaks is a dense pair list of (startGlyph, endGlyph) word spans,
	// in glyph-index space local to this run. A forced break appears as
	// a degenerate pair (k, k).
	Breaks []int
}

// RTL reports whether this run's glyphs are stored in visual (reversed)
// order.
func (g *GlyphRun) RTL() bool { return g.Level%2 == 1 }

// Len returns the glyph count.
func (g *GlyphRun) Len() int { return len(g.Glyphs) }

// Paragraph is one bidi paragraph's worth of glyph runs, in logical
// memory order, plus its base bidi level.
type Paragraph struct {
	Runs  []GlyphRun
	Level uint8
}

// BaseDirection reports the paragraph's base direction.
func (p Paragraph) BaseDirection() (rtl bool) { return p.Level%2 == 1 }

// GlyphLine identifies one line's extent within a Paragraph's Runs, plus
// its vertical metrics and horizontal alignment offset (SPEC_FULL.md §3
// "Glyph Line"). End indices are exclusive at the run boundary.
type GlyphLine struct {
	StartRunIndex, StartGlyphIndex int
	EndRunIndex, EndGlyphIndex     int

	StartX             float32
	Top, Baseline, Bottom float32
}

// Empty reports whether the line covers no glyphs.
func (l GlyphLine) Empty() bool {
	return l.StartRunIndex == l.EndRunIndex && l.StartGlyphIndex == l.EndGlyphIndex
}
