// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"

	"textcore.dev/font/gofont"
)

func regularRun(size float32) Run {
	return Run{Font: gofont.Regular(), Size: size, LineHeight: -1, CodepointCount: -1}
}

func runWithCount(size float32, n int) Run {
	r := regularRun(size)
	r.CodepointCount = n
	return r
}

// TestShapeEmptyInput covers boundary behavior: empty input produces one
// empty paragraph.
func TestShapeEmptyInput(t *testing.T) {
	paragraphs := Shape(nil, nil)
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	if len(paragraphs[0].Runs) != 0 {
		t.Fatalf("empty input produced %d runs, want 0", len(paragraphs[0].Runs))
	}
}

// TestShapeTrailingNewlineNoEmptyParagraph is scenario S4: "hi\n" must
// produce exactly one paragraph, not a trailing empty one.
func TestShapeTrailingNewlineNoEmptyParagraph(t *testing.T) {
	text := []rune("hi\n")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs for trailing-newline input, want 1", len(paragraphs))
	}
}

// TestShapeNewlineStartsParagraph covers boundary behavior 3: U+000A
// starts a new paragraph.
func TestShapeNewlineStartsParagraph(t *testing.T) {
	text := []rune("a\nb")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	if len(paragraphs) != 2 {
		t.Fatalf("got %d paragraphs for \"a\\nb\", want 2", len(paragraphs))
	}
}

// TestShapeBlankLineBetweenNewlines checks that a newline followed
// immediately by another newline still yields an empty paragraph between
// them, distinguishing this from the trailing-newline case.
func TestShapeBlankLineBetweenNewlines(t *testing.T) {
	text := []rune("a\n\nb")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	if len(paragraphs) != 3 {
		t.Fatalf("got %d paragraphs for \"a\\n\\nb\", want 3", len(paragraphs))
	}
	if len(paragraphs[1].Runs) != 0 {
		t.Fatalf("middle paragraph has %d runs, want 0 (blank line)", len(paragraphs[1].Runs))
	}
}

// TestShapeU2028ForcesBreakNotParagraph covers boundary behavior 3: U+2028
// forces a line break within the same paragraph, unlike U+000A.
func TestShapeU2028ForcesBreakNotParagraph(t *testing.T) {
	text := []rune("hello look\u2028here second paragraph")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	if len(paragraphs) != 1 {
		t.Fatalf("U+2028 split the input into %d paragraphs, want 1 (it only breaks lines)", len(paragraphs))
	}

	lines := BreakLines(paragraphs[0].Runs, -1)
	if len(lines) < 2 {
		t.Fatalf("got %d lines across an unbounded-width U+2028 split, want at least 2 (the separator forces a break regardless of width)", len(lines))
	}
}

// TestXposAdvanceConsistency is quantified invariant 1: within any run,
// Xpos[i+1]-Xpos[i] must equal Advances[i], and Xpos has len(Advances)+1
// entries.
func TestXposAdvanceConsistency(t *testing.T) {
	text := []rune("ABC DEF")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	for _, p := range paragraphs {
		for _, run := range p.Runs {
			if len(run.Xpos) != len(run.Advances)+1 {
				t.Fatalf("Xpos has %d entries, want %d", len(run.Xpos), len(run.Advances)+1)
			}
			for i, adv := range run.Advances {
				got := run.Xpos[i+1] - run.Xpos[i]
				if diff := got - adv; diff > 1e-3 || diff < -1e-3 {
					t.Errorf("glyph %d: Xpos delta %v != Advance %v", i, got, adv)
				}
			}
		}
	}
}

// TestTextIndicesPermutation is quantified invariant 4: absent ligatures
// and fallback, a run's TextIndices must be a permutation of
// [0, codepointCount) when visited in storage order for an LTR run.
func TestTextIndicesPermutation(t *testing.T) {
	text := []rune("ABC DEF")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	seen := make(map[int]bool)
	for _, p := range paragraphs {
		for _, run := range p.Runs {
			for _, ti := range run.TextIndices {
				seen[ti] = true
			}
		}
	}
	if len(seen) != len(text) {
		t.Fatalf("TextIndices covered %d distinct codepoints, want %d (Latin text should shape one glyph per codepoint)", len(seen), len(text))
	}
	for i := range text {
		if !seen[i] {
			t.Errorf("codepoint %d never appears in any TextIndices", i)
		}
	}
}

// TestGlyphLookupMonotonic is quantified invariant 2.
func TestGlyphLookupMonotonic(t *testing.T) {
	text := []rune("ABC DEF")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	var lookup GlyphLookup
	lookup.Compute(text, paragraphs)
	for i := 0; i < lookup.Size()-1; i++ {
		if lookup.At(i) > lookup.At(i+1) {
			t.Fatalf("glyphLookup[%d]=%d > glyphLookup[%d]=%d, not monotonic", i, lookup.At(i), i+1, lookup.At(i+1))
		}
	}
}

// TestGlyphLookupBoundary covers the §8 scenario S1 lookup-table shape
// for "ABC DEF": seven codepoints shaped one glyph each (no ligatures in
// Go Regular's Latin range), so glyphLookup[0] must be 0 and
// glyphLookup[6] must be 6 (the sentinel at index 7 is one past).
func TestGlyphLookupBoundary(t *testing.T) {
	text := []rune("ABC DEF")
	paragraphs := Shape(text, []Run{runWithCount(16, len(text))})
	var lookup GlyphLookup
	lookup.Compute(text, paragraphs)
	if lookup.Size() != len(text)+1 {
		t.Fatalf("lookup table has %d entries, want %d", lookup.Size(), len(text)+1)
	}
	if lookup.At(0) != 0 {
		t.Errorf("glyphLookup[0] = %d, want 0", lookup.At(0))
	}
	if got := lookup.At(len(text) - 1); got != uint32(len(text)-1) {
		t.Errorf("glyphLookup[%d] = %d, want %d", len(text)-1, got, len(text)-1)
	}
}
