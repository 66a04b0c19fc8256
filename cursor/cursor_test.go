// SPDX-License-Identifier: Unlicense OR MIT

package cursor

import (
	"testing"

	"textcore.dev/f32"
	"textcore.dev/font/gofont"
	"textcore.dev/text"
)

func shapeOf(t *testing.T, s string, width float32) (*text.FullyShapedText, []rune) {
	t.Helper()
	runes := []rune(s)
	run := text.Run{Font: gofont.Regular(), Size: 16, LineHeight: -1, CodepointCount: len(runes)}
	sizing := text.SizingFixed
	if width < 0 {
		sizing = text.SizingAutoWidth
	}
	shape := &text.FullyShapedText{}
	shape.Shape(runes, []text.Run{run}, sizing, width, 1000, text.AlignLeft, text.WrapOn, text.OriginTop, text.OverflowVisible, 0)
	return shape, runes
}

// TestAtIndexRoundTrip checks that AtIndex resolves every codepoint index
// to a Position on a line that actually contains it.
func TestAtIndexRoundTrip(t *testing.T) {
	shape, runes := shapeOf(t, "ABC DEF", -1)
	lookup := shape.GlyphLookup()
	for i := 0; i < len(runes); i++ {
		pos := AtIndex(i, shape)
		if !pos.HasLineIndex() {
			t.Fatalf("AtIndex(%d) left LineIndex unresolved", i)
		}
		lines := shape.OrderedLines()
		if pos.LineIndex < 0 || pos.LineIndex >= len(lines) {
			t.Fatalf("AtIndex(%d) line index %d out of range [0,%d)", i, pos.LineIndex, len(lines))
		}
		if !lines[pos.LineIndex].ContainsCodePointIndex(lookup, pos.CodePointIndex) {
			t.Errorf("AtIndex(%d): line %d does not contain resolved codepoint %d", i, pos.LineIndex, pos.CodePointIndex)
		}
	}
}

// TestFromTranslationHitTestS1 is scenario S1's hit-test half: clicking
// near the text's horizontal start should land closer to the beginning
// of the string than the end, and clicking far to the right should land
// at (or very near) the last codepoint.
func TestFromTranslationHitTestS1(t *testing.T) {
	shape, runes := shapeOf(t, "ABC DEF", 300)

	start := FromTranslation(f32.Point{X: 0, Y: 8}, shape)
	if start.CodePointIndex > len(runes)/2 {
		t.Errorf("click at x=0 resolved to codepoint %d, want it near the start of %q", start.CodePointIndex, string(runes))
	}

	end := FromTranslation(f32.Point{X: 10000, Y: 8}, shape)
	if end.CodePointIndex < len(runes)-2 {
		t.Errorf("click far to the right resolved to codepoint %d, want it near the end of %q", end.CodePointIndex, string(runes))
	}
}

// TestSelectionRectsOrdering is quantified invariant 7's selection
// counterpart: SelectionRects never emits a rectangle with Min.X > Max.X.
func TestSelectionRectsOrdering(t *testing.T) {
	shape, runes := shapeOf(t, "ABC DEF", -1)
	sel := Selection{Start: AtCodePoint(1), End: AtCodePoint(len(runes) - 1)}
	sel.ResolveLinePositions(shape)
	for i, r := range sel.SelectionRects(shape) {
		if r.Min.X > r.Max.X {
			t.Errorf("selection rect %d has Min.X=%v > Max.X=%v", i, r.Min.X, r.Max.X)
		}
	}
}

// TestSelectionFirstLastOrdering is quantified invariant 7: First().
// CodePointIndex must never exceed Last().CodePointIndex, regardless of
// which endpoint was constructed as Start or End.
func TestSelectionFirstLastOrdering(t *testing.T) {
	forward := Selection{Start: AtCodePoint(2), End: AtCodePoint(5)}
	backward := Selection{Start: AtCodePoint(5), End: AtCodePoint(2)}
	for _, s := range []Selection{forward, backward} {
		if s.First().CodePointIndex > s.Last().CodePointIndex {
			t.Errorf("First()=%d > Last()=%d for %+v", s.First().CodePointIndex, s.Last().CodePointIndex, s)
		}
	}
}

// TestIsCollapsedIgnoresUnresolvedLine exercises the fix: a Selection
// whose two ends address the same codepoint is collapsed even when only
// one side has been through ResolveLine.
func TestIsCollapsedIgnoresUnresolvedLine(t *testing.T) {
	resolved := Position{LineIndex: 0, CodePointIndex: 3}
	unresolved := AtCodePoint(3)
	sel := Selection{Start: resolved, End: unresolved}
	if !sel.IsCollapsed() {
		t.Errorf("selection with matching codepoints but mismatched LineIndex resolution reported as not collapsed")
	}
}

// TestOffsetCodePointSaturatesAtZero mirrors the original's
// operator-/codePointIndex(inc) contract: subtracting past zero clamps
// rather than going negative.
func TestOffsetCodePointSaturatesAtZero(t *testing.T) {
	p := AtCodePoint(2)
	if got := p.OffsetCodePoint(-5).CodePointIndex; got != 0 {
		t.Errorf("OffsetCodePoint(-5) from codepoint 2 = %d, want 0 (saturating)", got)
	}
	if got := p.OffsetCodePoint(3).CodePointIndex; got != 5 {
		t.Errorf("OffsetCodePoint(3) from codepoint 2 = %d, want 5", got)
	}
}

// TestOffsetAlwaysUnresolvesLine mirrors the original's CursorPosition
// operator+/-: the result always carries an unresolved line.
func TestOffsetAlwaysUnresolvesLine(t *testing.T) {
	p := Position{LineIndex: 3, CodePointIndex: 4}
	if got := p.OffsetCodePoint(1); got.HasLineIndex() {
		t.Errorf("OffsetCodePoint kept a resolved LineIndex (%d), want it unresolved", got.LineIndex)
	}
}
