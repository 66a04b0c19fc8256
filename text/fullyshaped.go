// SPDX-License-Identifier: Unlicense OR MIT

package text

import "textcore.dev/f32"

// FullyShapedText is the fully composed result of shaping, line
// breaking, visual reordering and (optionally) ellipsis truncation for
// one styled text run set within one layout box — everything a cursor,
// a selection, or a renderer needs to walk the text without repeating
// any of that work. Ported from original_source
// fully_shaped_text.cpp/.hpp.
type FullyShapedText struct {
	paragraphs     []Paragraph
	paragraphLines [][]GlyphLine
	glyphLookup    GlyphLookup
	orderedLines   []OrderedLine
	bounds         f32.Rectangle
}

// Shape runs the full pipeline: Shape (B), per-paragraph BreakLines +
// ComputeLineSpacing (C), GlyphLookup.Compute (E), then one pass per
// line building its OrderedLine (D) while applying origin/overflow/
// ellipsis placement. Ported from FullyShapedText::shape.
func (f *FullyShapedText) Shape(text []rune, runs []Run, sizing Sizing, maxWidth, maxHeight float32, align Align, wrap Wrap, origin Origin, overflow Overflow, paragraphSpacing float32) {
	f.paragraphs = Shape(text, runs)
	f.glyphLookup.Compute(text, f.paragraphs)

	width := maxWidth
	if sizing == SizingAutoWidth {
		width = -1
	}
	f.paragraphLines = breakParagraphs(f.paragraphs, width, wrap, align)
	f.orderedLines = nil

	if len(f.paragraphs) == 0 {
		f.bounds = f32.Rectangle{}
		return
	}

	y := float32(0)
	minY := float32(0)
	measuredWidth := float32(0)
	if origin == OriginBaseline && len(f.paragraphLines) > 0 && len(f.paragraphLines[0]) > 0 {
		y -= f.paragraphLines[0][0].Baseline
		minY = y
	}

	ellipsisLine := -1
	isEllipsisLineLast := false
	wantEllipsis := overflow == OverflowEllipsis && sizing == SizingFixed

	lastLineIndex := -1
	for pi, lines := range f.paragraphLines {
		paragraph := &f.paragraphs[pi]
		for _, line := range lines {
			endRun := &paragraph.Runs[line.EndRunIndex]
			startRun := &paragraph.Runs[line.StartRunIndex]
			w := endRun.Xpos[line.EndGlyphIndex] - startRun.Xpos[line.StartGlyphIndex]
			if w > measuredWidth {
				measuredWidth = w
			}
			lastLineIndex++
			if wantEllipsis && y+line.Bottom <= maxHeight {
				ellipsisLine++
			}
		}
		if len(lines) > 0 {
			y += lines[len(lines)-1].Bottom
		}
		y += paragraphSpacing
	}
	if wantEllipsis && ellipsisLine == -1 {
		ellipsisLine = 0
	}
	isEllipsisLineLast = lastLineIndex == ellipsisLine

	f.bounds = f32.Rectangle{
		Min: f32.Point{X: 0, Y: minY},
		Max: f32.Point{X: measuredWidth, Y: maxF32(minY, y-paragraphSpacing)},
	}
	if sizing == SizingFixed {
		f.bounds.Max = f32.Point{X: maxWidth, Y: minY + maxHeight}
	}

	y = 0
	if origin == OriginBaseline && len(f.paragraphLines) > 0 && len(f.paragraphLines[0]) > 0 {
		y -= f.paragraphLines[0][0].Baseline
	}

	lineIndex := 0
	for pi, lines := range f.paragraphLines {
		paragraph := &f.paragraphs[pi]
		for _, line := range lines {
			switch overflow {
			case OverflowHidden:
				if sizing == SizingFixed && y+line.Bottom > maxHeight {
					return
				}
			case OverflowClipped:
				if sizing == SizingFixed && y+line.Top > maxHeight {
					return
				}
			}

			f.orderedLines = append(f.orderedLines, NewOrderedLine(
				paragraph, line, maxWidth, ellipsisLine == lineIndex, isEllipsisLineLast, y+line.Baseline,
			))

			if lineIndex == ellipsisLine {
				return
			}
			lineIndex++
		}
		if len(lines) > 0 {
			y += lines[len(lines)-1].Bottom
		}
		y += paragraphSpacing
	}
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Paragraphs returns the shaped paragraphs backing this layout.
func (f *FullyShapedText) Paragraphs() []Paragraph { return f.paragraphs }

// ParagraphLines returns, per paragraph, its broken GlyphLines.
func (f *FullyShapedText) ParagraphLines() [][]GlyphLine { return f.paragraphLines }

// GlyphLookup returns the codepoint-to-glyph lookup table for this text.
func (f *FullyShapedText) GlyphLookup() *GlyphLookup { return &f.glyphLookup }

// OrderedLines returns the visually-ordered, overflow-truncated lines
// actually laid out (may be fewer than the sum of ParagraphLines when
// overflow is Hidden/Clipped/Ellipsis and the box is too short).
func (f *FullyShapedText) OrderedLines() []OrderedLine { return f.orderedLines }

// Bounds returns the layout bounds: the measured content extent for
// SizingAutoWidth, and the maxWidth × maxHeight box starting at minY for
// SizingFixed.
func (f *FullyShapedText) Bounds() f32.Rectangle { return f.bounds }

// breakParagraphs runs the Line Breaker (component C) independently
// over every paragraph, then assigns line spacing once the shared
// auto-width (if any) is known across all of them. wrap == WrapOff
// forces every paragraph to lay out on one unbounded-width line,
// regardless of sizing.
func breakParagraphs(paragraphs []Paragraph, width float32, wrap Wrap, align Align) [][]GlyphLine {
	autoW := width < 0 || wrap == WrapOff
	paragraphWidth := width

	lines := make([][]GlyphLine, len(paragraphs))
	for i := range paragraphs {
		w := width
		if autoW {
			w = -1
		}
		lines[i] = BreakLines(paragraphs[i].Runs, w)
		if autoW {
			if mw := ComputeMaxWidth(lines[i], paragraphs[i].Runs); mw > paragraphWidth {
				paragraphWidth = mw
			}
		}
	}
	for i := range paragraphs {
		ComputeLineSpacing(i == 0, lines[i], paragraphs[i].Runs, paragraphWidth, align)
	}
	return lines
}
