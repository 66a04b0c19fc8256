// SPDX-License-Identifier: Unlicense OR MIT

// Package cursor implements caret hit-testing, navigation and selection
// geometry over a shaped text layout (SPEC_FULL.md §4.G): turning a
// codepoint index into a screen position and back, and turning a
// selection into highlight rectangles. Ported from original_source
// cursor.cpp/cursor.hpp, with the Go idiom grounded on
// widget/index.go's positional-lookup style.
package cursor

import (
	"textcore.dev/f32"
	"textcore.dev/text"
)

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func subtract(a, b int) int {
	if a > b {
		return a - b
	}
	return 0
}

// VisualPosition is where a Position renders on screen: the caret's x
// coordinate and its vertical extent (top/bottom of the line it sits
// on). Found is false when the Position's line index is out of range.
type VisualPosition struct {
	Found       bool
	X, Top, Bottom float32
}

// Position addresses one caret location: a codepoint index, plus which
// line it resolves to when the text wraps (a codepoint can sit at the
// boundary between two lines; LineIndex disambiguates which one).
// LineIndex is -1 until ResolveLine or a constructor that already knows
// the line assigns it.
type Position struct {
	LineIndex     int
	CodePointIndex int
}

// Zero is the Position at the very start of the text.
func Zero() Position { return Position{LineIndex: 0, CodePointIndex: 0} }

// AtCodePoint is a Position with an as-yet-unresolved line.
func AtCodePoint(codePointIndex int) Position {
	return Position{LineIndex: -1, CodePointIndex: codePointIndex}
}

// HasLineIndex reports whether LineIndex has been resolved.
func (p Position) HasLineIndex() bool { return p.LineIndex != -1 }

func saturatingAdd(v, inc int) int {
	if inc < 0 && -inc > v {
		return 0
	}
	return v + inc
}

// OffsetCodePoint returns the Position addressing CodePointIndex+inc
// (saturating at 0), with its line left unresolved — mirrors the
// original's operator+/- on CursorPosition, which always yields a
// position whose line must be re-resolved.
func (p Position) OffsetCodePoint(inc int) Position {
	return AtCodePoint(saturatingAdd(p.CodePointIndex, inc))
}

// OffsetLine returns lineIndex+inc, saturating at 0.
func (p Position) OffsetLine(inc int) int {
	return saturatingAdd(p.LineIndex, inc)
}

// VisualPosition locates p on screen within shape. Ported from
// CursorPosition::visualPosition.
func (p Position) VisualPosition(shape *text.FullyShapedText) VisualPosition {
	lookup := shape.GlyphLookup()
	lines := shape.OrderedLines()

	targetIndex := lookup.At(p.CodePointIndex)
	if p.LineIndex < 0 || p.LineIndex >= len(lines) {
		return VisualPosition{}
	}
	line := &lines[p.LineIndex]
	glyphLine := line.Line()
	x := glyphLine.StartX

	haveFirst := false
	firstTextIndex, lastTextIndex := 0, 0
	for _, g := range line.Glyphs() {
		advance := g.Run.Advances[g.GlyphIndex]
		if advance != 0 && targetIndex == lookup.At(g.Run.TextIndices[g.GlyphIndex]) {
			x += advance * lookup.AdvanceFactor(p.CodePointIndex, g.Run.RTL())
			m := g.Run.Font.LineMetrics()
			return VisualPosition{
				Found:  true,
				X:      x,
				Top:    line.Baseline() + m.Ascent*g.Run.Size,
				Bottom: line.Baseline() + m.Descent*g.Run.Size,
			}
		}
		if !haveFirst {
			firstTextIndex = g.Run.TextIndices[g.GlyphIndex]
			lastTextIndex = firstTextIndex
			haveFirst = true
		} else {
			lastTextIndex = g.Run.TextIndices[g.GlyphIndex]
		}
		x += advance
	}

	run := line.LastRun()
	m := run.Font.LineMetrics()
	resultX := x
	if absDiff(p.CodePointIndex, firstTextIndex) < absDiff(p.CodePointIndex, lastTextIndex) {
		resultX = glyphLine.StartX
	}
	return VisualPosition{
		Found:  true,
		X:      resultX,
		Top:    line.Baseline() + m.Ascent*run.Size,
		Bottom: line.Baseline() + m.Descent*run.Size,
	}
}

// fromOrderedLine finds the Position nearest translationX on line.
// Ported from CursorPosition::fromOrderedLine.
func fromOrderedLine(line *text.OrderedLine, lineIndex int, translationX float32, shape *text.FullyShapedText) Position {
	lookup := shape.GlyphLookup()
	x := line.Line().StartX

	glyphs := line.Glyphs()
	if len(glyphs) == 0 {
		return Position{LineIndex: lineIndex, CodePointIndex: 0}.clamped(shape)
	}
	last := glyphs[0]
	for _, g := range glyphs {
		last = g
		advance := g.Run.Advances[g.GlyphIndex]
		if translationX <= x+advance {
			ratio := float32(1)
			if advance != 0 {
				ratio = (translationX - x) / advance
				if ratio > 1 {
					ratio = 1
				}
			}
			textIndex := g.Run.TextIndices[g.GlyphIndex]
			nextTextIndex := textIndex
			absoluteGlyphIndex := lookup.At(textIndex)
			for nextTextIndex != lookup.Size()-1 && lookup.At(nextTextIndex) == absoluteGlyphIndex {
				nextTextIndex++
			}
			parts := nextTextIndex - textIndex
			part := int(ratio*float32(parts) + 0.5)

			cp := textIndex + part
			if g.Run.RTL() {
				if part > nextTextIndex {
					cp = 0
				} else {
					cp = nextTextIndex - part
				}
			}
			return Position{LineIndex: lineIndex, CodePointIndex: cp}.clamped(shape)
		}
		x += advance
	}

	textIndex := last.Run.TextIndices[last.GlyphIndex]
	nextTextIndex := textIndex
	absoluteGlyphIndex := lookup.At(textIndex)
	for nextTextIndex != lookup.Size()-1 && lookup.At(nextTextIndex) == absoluteGlyphIndex {
		nextTextIndex++
	}
	parts := nextTextIndex - textIndex
	cp := textIndex + parts
	if last.Run.RTL() {
		cp = nextTextIndex - parts
	}
	return Position{LineIndex: lineIndex, CodePointIndex: cp}.clamped(shape)
}

// FromTranslation finds the Position closest to translation (a point in
// layout space). Ported from CursorPosition::fromTranslation.
func FromTranslation(translation f32.Point, shape *text.FullyShapedText) Position {
	lines := shape.OrderedLines()
	if len(lines) == 0 {
		return Zero()
	}
	maxLine := len(lines) - 1
	for i := range lines {
		line := &lines[i]
		if line.Bottom() < translation.Y && i != maxLine {
			continue
		}
		return fromOrderedLine(line, i, translation.X, shape)
	}
	return Zero()
}

// FromLineX finds the Position closest to x on a known line.
func FromLineX(lineIndex int, x float32, shape *text.FullyShapedText) Position {
	lines := shape.OrderedLines()
	if lineIndex >= len(lines) {
		return Zero()
	}
	return fromOrderedLine(&lines[lineIndex], lineIndex, x, shape)
}

// AtIndex finds the Position (including its line) for a codepoint
// index, scanning lines in document order. Ported from
// CursorPosition::atIndex.
func AtIndex(codePointIndex int, shape *text.FullyShapedText) Position {
	lookup := shape.GlyphLookup()
	if codePointIndex >= subtract(lookup.LastCodeUnitIndex(), 1) {
		return Position{
			LineIndex:      subtract(len(shape.OrderedLines()), 1),
			CodePointIndex: subtract(lookup.LastCodeUnitIndex(), 1),
		}.clamped(shape)
	}

	paragraphs := shape.Paragraphs()
	paragraphLines := shape.ParagraphLines()

	lineIndex := 0
	for pi, lines := range paragraphLines {
		paragraph := &paragraphs[pi]
		for _, line := range lines {
			run := paragraph.Runs[line.StartRunIndex]
			smallest := run.TextIndices[line.StartGlyphIndex]
			if smallest <= codePointIndex {
				lineIndex++
				continue
			}
			return Position{LineIndex: lineIndex - 1, CodePointIndex: codePointIndex}.clamped(shape)
		}
	}
	return Position{LineIndex: lineIndex - 1, CodePointIndex: codePointIndex}.clamped(shape)
}

// clamped keeps p's fields within shape's valid range.
func (p Position) clamped(shape *text.FullyShapedText) Position {
	return Position{
		LineIndex:      min(p.LineIndex, subtract(len(shape.OrderedLines()), 1)),
		CodePointIndex: min(p.CodePointIndex, subtract(shape.GlyphLookup().LastCodeUnitIndex(), 1)),
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ResolveLine assigns p.LineIndex to the line containing p's codepoint,
// overwriting any line index p already carries (ResolveLinePositions is
// what skips already-resolved positions).
func (p *Position) ResolveLine(shape *text.FullyShapedText) {
	lookup := shape.GlyphLookup()
	lines := shape.OrderedLines()
	lineIndex := 0
	for i := range lines {
		if lines[i].ContainsCodePointIndex(lookup, p.CodePointIndex) {
			break
		}
		lineIndex++
	}
	p.LineIndex = lineIndex
}

// Selection is a pair of Positions spanning zero or more codepoints: a
// collapsed Selection is a blinking caret, a non-collapsed one
// highlights a range. Named Selection (not Cursor) to describe what it
// does: the caret is just a collapsed selection.
type Selection struct {
	Start, End Position
}

// Collapsed returns a zero-width Selection (a caret) at position.
func Collapsed(position Position) Selection { return Selection{Start: position, End: position} }

// AtStart is the Selection at the very beginning of the text.
func AtStart() Selection { return Selection{Start: Zero(), End: Zero()} }

// First returns whichever endpoint comes first in the text.
func (s Selection) First() Position {
	if s.Start.CodePointIndex < s.End.CodePointIndex {
		return s.Start
	}
	return s.End
}

// Last returns whichever endpoint comes last in the text.
func (s Selection) Last() Position {
	if s.Start.CodePointIndex < s.End.CodePointIndex {
		return s.End
	}
	return s.Start
}

// IsCollapsed reports whether the selection is a single caret. Compares
// CodePointIndex only: a freshly-offset Position carries an unresolved
// LineIndex until ResolveLinePositions runs, so two ends addressing the
// same codepoint must still count as collapsed even when one side's
// line has been resolved and the other's hasn't.
func (s Selection) IsCollapsed() bool { return s.Start.CodePointIndex == s.End.CodePointIndex }

// HasSelection reports whether the selection spans any text.
func (s Selection) HasSelection() bool { return !s.IsCollapsed() }

// Contains reports whether codePointIndex falls within the selection.
func (s Selection) Contains(codePointIndex int) bool {
	return codePointIndex >= s.First().CodePointIndex && codePointIndex < s.Last().CodePointIndex
}

// ResolveLinePositions resolves either endpoint's line index if it
// hasn't been already, reporting whether it changed anything.
func (s *Selection) ResolveLinePositions(shape *text.FullyShapedText) bool {
	resolved := false
	if !s.Start.HasLineIndex() {
		s.Start.ResolveLine(shape)
		resolved = true
	}
	if !s.End.HasLineIndex() {
		s.End.ResolveLine(shape)
		resolved = true
	}
	return resolved
}

// SelectionRects returns one rectangle per glyph (or partial glyph at
// either end) the selection overlaps, across every line it spans. Ported from
// Cursor::selectionRects.
func (s Selection) SelectionRects(shape *text.FullyShapedText) []f32.Rectangle {
	first := s.First().clamped(shape)
	last := s.Last().clamped(shape)

	lookup := shape.GlyphLookup()
	lines := shape.OrderedLines()

	var rects []f32.Rectangle
	for lineIndex := first.LineIndex; lineIndex <= last.LineIndex; lineIndex++ {
		line := &lines[lineIndex]
		glyphLine := line.Line()
		x := glyphLine.StartX
		y := line.Baseline()
		for _, g := range line.Glyphs() {
			advance := g.Run.Advances[g.GlyphIndex]
			codePointIndex := g.Run.TextIndices[g.GlyphIndex]
			count := lookup.Count(codePointIndex)
			endCodePointIndex := codePointIndex + count

			if last.CodePointIndex > codePointIndex && endCodePointIndex > first.CodePointIndex {
				after := subtract(first.CodePointIndex, codePointIndex)
				before := subtract(endCodePointIndex, last.CodePointIndex)
				startFactor := float32(after) / float32(count)
				endFactor := float32(count-before) / float32(count)
				if g.Run.RTL() {
					startFactor, endFactor = 1-startFactor, 1-endFactor
				}

				m := g.Run.Font.LineMetrics()
				left := x + advance*startFactor
				right := x + advance*endFactor
				if left > right {
					left, right = right, left
				}
				rects = append(rects, f32.Rectangle{
					Min: f32.Point{X: left, Y: y + m.Ascent*g.Run.Size},
					Max: f32.Point{X: right, Y: y + m.Descent*g.Run.Size},
				})
			}
			x += advance
		}
	}
	return rects
}
