// SPDX-License-Identifier: Unlicense OR MIT

package text

// GlyphLookup maps every codepoint index of an input string to the flat,
// cross-paragraph glyph index that produced it, so a caller holding only
// a codepoint offset can find the glyph (and therefore the visual
// position) that carries it. Ported from original_source
// glyph_lookup.cpp/.hpp.
type GlyphLookup struct {
	indices []uint32
}

// Compute rebuilds the lookup table for text given its already-shaped
// paragraphs. The table has len(text)+1 entries: a trailing sentinel
// entry lets callers address "one past the last codepoint" (the caret
// resting after the final character) the same way they address any
// other codepoint.
func (g *GlyphLookup) Compute(text []rune, shape []Paragraph) {
	n := len(text)
	g.indices = make([]uint32, n+1)

	glyphIndex := uint32(0)
	lastTextIndex := 0
	for _, paragraph := range shape {
		for _, run := range paragraph.Runs {
			for _, textIndex := range run.TextIndices {
				for j := lastTextIndex; j < textIndex; j++ {
					g.indices[j] = glyphIndex - 1
				}
				lastTextIndex = textIndex
				glyphIndex++
			}
		}
	}
	for i := lastTextIndex; i < n; i++ {
		g.indices[i] = glyphIndex - 1
	}

	if n == 0 {
		g.indices[0] = 0
	} else {
		g.indices[n] = g.indices[n-1] + 1
	}
}

// At returns the glyph index that covers codepoint index.
func (g *GlyphLookup) At(codePointIndex int) uint32 { return g.indices[codePointIndex] }

// Size is the number of table entries (len(text)+1).
func (g *GlyphLookup) Size() int { return len(g.indices) }

// Empty reports whether Compute has not yet been called. After Compute
// over empty text the table still holds its one sentinel entry, so
// Empty is false.
func (g *GlyphLookup) Empty() bool { return len(g.indices) == 0 }

// LastCodeUnitIndex is the highest valid codepoint index, or 0 if empty.
func (g *GlyphLookup) LastCodeUnitIndex() int {
	if len(g.indices) == 0 {
		return 0
	}
	return len(g.indices) - 1
}

// Count returns how many codepoints map to the same glyph as index
// (the glyph's cluster size — 1 for a simple glyph, >1 when several
// codepoints compose one ligature glyph).
func (g *GlyphLookup) Count(index int) int {
	value := g.indices[index]
	count := 1
	for i := index + 1; i < len(g.indices) && g.indices[i] == value; i++ {
		count++
	}
	return count
}

// AdvanceFactor returns how far codePointIndex sits within its glyph's
// cluster, as a 0..1 fraction of the cluster's codepoint span — used to
// place a caret partway across a multi-codepoint ligature. inv flips
// the fraction for right-to-left clusters, where codepoint order runs
// opposite to visual (x-increasing) order.
//
// glyph_lookup.cpp only ships compute/count; this body is reconstructed
// from advanceFactor's contract in glyph_lookup.hpp and its call site in
// cursor.cpp (CursorPosition::visualPosition), see DESIGN.md Open
// Question 3.
func (g *GlyphLookup) AdvanceFactor(codePointIndex int, inv bool) float32 {
	value := g.indices[codePointIndex]
	start := codePointIndex
	for start > 0 && g.indices[start-1] == value {
		start--
	}
	count := g.Count(start)
	f := float32(codePointIndex-start) / float32(count)
	if inv {
		return 1 - f
	}
	return f
}
