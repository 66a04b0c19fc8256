// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"

	"textcore.dev/f32"
)

// TestFullyShapedTextEmpty covers boundary behavior: an empty buffer
// measures to a zero rectangle with no lines.
func TestFullyShapedTextEmpty(t *testing.T) {
	var shape FullyShapedText
	shape.Shape(nil, nil, SizingAutoWidth, 0, 0, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)

	if len(shape.OrderedLines()) != 0 {
		t.Fatalf("empty text produced %d lines, want 0", len(shape.OrderedLines()))
	}
	want := f32.Rectangle{}
	if got := shape.Bounds(); got != want {
		t.Fatalf("empty text bounds = %v, want %v", got, want)
	}
}

// TestFullyShapedTextZeroWidthOverflowsPerGlyph covers boundary behavior:
// a zero width forces every glyph of non-empty text onto its own line.
func TestFullyShapedTextZeroWidthOverflowsPerGlyph(t *testing.T) {
	text := []rune("ABC")
	var shape FullyShapedText
	shape.Shape(text, []Run{runWithCount(16, len(text))}, SizingFixed, 0, 1000, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)

	lines := shape.OrderedLines()
	glyphCount := 0
	for _, l := range lines {
		glyphCount += len(l.Glyphs())
	}
	if glyphCount != len(text) {
		t.Fatalf("laid out %d glyphs across all lines, want %d", glyphCount, len(text))
	}
	for i, l := range lines {
		if n := len(l.Glyphs()); n > 1 {
			t.Errorf("line %d holds %d glyphs at width 0, want at most 1 per line", i, n)
		}
	}
}

// TestSingleLineLayoutS1 is scenario S1: "ABC DEF" shaped with a single
// LTR font at width 300 lays out on one line holding one glyph per
// codepoint.
func TestSingleLineLayoutS1(t *testing.T) {
	text := []rune("ABC DEF")
	var shape FullyShapedText
	shape.Shape(text, []Run{runWithCount(16, len(text))}, SizingFixed, 300, 1000, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)

	lines := shape.OrderedLines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (text is short enough to fit width 300 on one line)", len(lines))
	}

	line := &lines[0]
	glyphs := line.Glyphs()
	if len(glyphs) != len(text) {
		t.Fatalf("line holds %d glyphs, want %d (no ligatures expected for ASCII Latin text)", len(glyphs), len(text))
	}
}

// TestTwoLineWrapS3 is scenario S3: a run too wide for its box wraps
// across at least two lines, each baseline strictly below the one
// before it.
func TestTwoLineWrapS3(t *testing.T) {
	text := []rune("one two three four five")
	var shape FullyShapedText
	shape.Shape(text, []Run{runWithCount(72, len(text))}, SizingFixed, 500, 1000, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)

	lines := shape.OrderedLines()
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want at least 2 (72pt text shouldn't fit width 500 on one line)", len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Baseline() <= lines[i-1].Baseline() {
			t.Errorf("line %d baseline %v did not advance past line %d's %v", i, lines[i].Baseline(), i-1, lines[i-1].Baseline())
		}
	}
}

// TestTwoParagraphsThreeLinesS5 is scenario S5: a U+000A paragraph break
// plus an internal U+2028 forced line break yields two paragraphs and
// three lines total.
func TestTwoParagraphsThreeLinesS5(t *testing.T) {
	text := []rune("hello look\u2028here\nsecond paragraph")

	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	if len(paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2 (one U+000A split)", len(paragraphs))
	}

	var shape FullyShapedText
	shape.Shape(text, []Run{runWithCount(16, len(text))}, SizingAutoWidth, -1, 1000, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)
	lines := shape.OrderedLines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (2 from the first paragraph's forced break, 1 from the second)", len(lines))
	}
}

// TestOrderedLineGlyphCountMatchesRange is quantified invariant 3: a
// line's visual glyph count equals endGlyphIndex-startGlyphIndex for a
// single-run line.
func TestOrderedLineGlyphCountMatchesRange(t *testing.T) {
	text := []rune("ABC DEF")
	var shape FullyShapedText
	shape.Shape(text, []Run{runWithCount(16, len(text))}, SizingAutoWidth, -1, 1000, AlignLeft, WrapOn, OriginTop, OverflowVisible, 0)

	for i, l := range shape.OrderedLines() {
		line := l.Line()
		if line.StartRunIndex != line.EndRunIndex {
			continue // single-run paragraph only in this fixture
		}
		want := line.EndGlyphIndex - line.StartGlyphIndex
		if got := len(l.Glyphs()); got != want {
			t.Errorf("line %d has %d visual glyphs, want %d (endGlyphIndex-startGlyphIndex)", i, got, want)
		}
	}
}
