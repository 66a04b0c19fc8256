// SPDX-License-Identifier: Unlicense OR MIT

package text

import "textcore.dev/font"

// OrderedLine is one GlyphLine's runs sorted into visual (left-to-right
// on screen) order, with an optional synthesized "..." run spliced in
// when the line overflows a fixed-size, ellipsis-overflow box. Ported
// from original_source text.cpp's OrderedLine, simplified per
// DESIGN.md Open Question 2: runs are reordered with a single reversal
// pass over the line's own embedding, not the original's full
// descending-bidi-level reinsertion.
type OrderedLine struct {
	line         GlyphLine
	y            float32
	runs         []*GlyphRun
	startLogical *GlyphRun
	endLogical   *GlyphRun
	ellipsis     GlyphRun
}

// NewOrderedLine builds the visual run order for line within paragraph.
// When wantEllipsis is set (TextOverflow::ellipsis + TextSizing::fixed),
// it first tries to splice in a "..." run, shaped with whichever run's
// font sits at the overflow point; isEllipsisLineLast tells it whether
// this is the last line that will be shown, so a line that fits in full
// can skip the ellipsis entirely. y is this line's absolute baseline,
// already accumulated across every earlier paragraph and line.
func NewOrderedLine(paragraph *Paragraph, line GlyphLine, lineWidth float32, wantEllipsis, isEllipsisLineLast bool, y float32) OrderedLine {
	ol := OrderedLine{line: line, y: y}

	var logicalRuns []*GlyphRun
	usedEllipsis := false
	if wantEllipsis {
		logicalRuns, usedEllipsis = ol.buildEllipsisRuns(paragraph, line, lineWidth, isEllipsisLineLast)
	}
	if !usedEllipsis {
		for i := line.StartRunIndex; i < line.EndRunIndex+1; i++ {
			logicalRuns = append(logicalRuns, &paragraph.Runs[i])
		}
		if len(logicalRuns) > 0 {
			ol.startLogical = logicalRuns[0]
			ol.endLogical = logicalRuns[len(logicalRuns)-1]
		}
	}

	if !paragraph.BaseDirection() /* ltr */ || len(logicalRuns) == 0 {
		ol.runs = logicalRuns
		// Reverse each maximal sequence of consecutive RTL runs so it
		// reads right-to-left inside the left-to-right line.
		for i := 0; i < len(ol.runs); {
			j := i
			for j < len(ol.runs) && ol.runs[j].RTL() {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				ol.runs[a], ol.runs[b] = ol.runs[b], ol.runs[a]
			}
			if j == i {
				j++
			}
			i = j
		}
	} else {
		ol.runs = reorderVisual(logicalRuns)
	}
	return ol
}

// reorderVisual applies UAX#9's L2 reordering for a single embedding
// level: walk the logical runs back to front, and every time an LTR run
// follows another LTR run, reinsert it just before the block of LTR
// runs already placed (so consecutive LTR runs keep reading
// left-to-right while the RTL runs around them end up reversed).
func reorderVisual(logicalRuns []*GlyphRun) []*GlyphRun {
	visual := make([]*GlyphRun, 0, len(logicalRuns))
	first := logicalRuns[len(logicalRuns)-1]
	visual = append(visual, first)
	ltrIndex := 0
	prevRTL := first.RTL()
	for i := len(logicalRuns) - 2; i >= 0; i-- {
		run := logicalRuns[i]
		if !run.RTL() && !prevRTL {
			visual = append(visual, nil)
			copy(visual[ltrIndex+1:], visual[ltrIndex:])
			visual[ltrIndex] = run
		} else {
			if !run.RTL() {
				ltrIndex = len(visual)
			}
			visual = append(visual, run)
		}
		prevRTL = run.RTL()
	}
	return visual
}

// buildEllipsisRuns mirrors text.cpp's OrderedLine::buildEllipsisRuns:
// measure the line's glyphs against lineWidth, and as soon as adding the
// next glyph (plus the ellipsis) would overflow, stop and splice the
// ellipsis in. Returns false when nothing needed to change (the caller
// falls back to the plain, un-truncated run list).
func (ol *OrderedLine) buildEllipsisRuns(paragraph *Paragraph, line GlyphLine, lineWidth float32, isEllipsisLineLast bool) ([]*GlyphRun, bool) {
	runs := paragraph.Runs
	startGIndex := line.StartGlyphIndex

	if isEllipsisLineLast {
		x := float32(0)
		fits := true
	measure:
		for i := line.StartRunIndex; i < line.EndRunIndex+1; i++ {
			run := &runs[i]
			endGIndex := len(run.Glyphs)
			if i == line.EndRunIndex {
				endGIndex = line.EndGlyphIndex
			}
			for j := startGIndex; j != endGIndex; j++ {
				x += run.Advances[j]
				if x > lineWidth {
					fits = false
					break measure
				}
			}
			startGIndex = 0
		}
		if fits {
			return nil, false
		}
	}

	var logicalRuns []*GlyphRun
	var ellipsisFont font.Face
	ellipsisFontSet := false
	var ellipsisFontSize float32
	var ellipsisRun GlyphRun
	haveEllipsisRun := false
	ellipsisWidth := float32(0)
	ellipsisOverflowed := false
	x := float32(0)
	startGIndex = line.StartGlyphIndex

	for i := line.StartRunIndex; i < line.EndRunIndex+1; i++ {
		run := &runs[i]
		if !ellipsisFontSet || run.Size != ellipsisFontSize {
			ellipsisFont = run.Font
			ellipsisFontSize = run.Size
			ellipsisFontSet = true

			shaped := Shape([]rune("..."), []Run{{
				Font:           run.Font,
				Size:           run.Size,
				LineHeight:     run.LineHeight,
				LetterSpacing:  run.LetterSpacing,
				CodepointCount: 3,
			}})
			next := shaped[0].Runs[0]
			nextWidth := float32(0)
			for _, a := range next.Advances {
				nextWidth += a
			}
			if !haveEllipsisRun || x+nextWidth <= lineWidth {
				ellipsisWidth = nextWidth
				ellipsisRun = next
				haveEllipsisRun = true
			}
		}

		endGIndex := len(run.Glyphs)
		if i == line.EndRunIndex {
			endGIndex = line.EndGlyphIndex
		}
		for j := startGIndex; j != endGIndex; j++ {
			advance := run.Advances[j]
			if x+advance+ellipsisWidth > lineWidth {
				ol.line.EndGlyphIndex = j
				ellipsisOverflowed = true
				break
			}
			x += advance
		}
		startGIndex = 0
		logicalRuns = append(logicalRuns, run)
		ol.endLogical = run

		if ellipsisOverflowed && haveEllipsisRun {
			ol.ellipsis = ellipsisRun
			logicalRuns = append(logicalRuns, &ol.ellipsis)
			break
		}
	}

	if !ellipsisOverflowed && haveEllipsisRun {
		ol.ellipsis = ellipsisRun
		logicalRuns = append(logicalRuns, &ol.ellipsis)
	}
	if len(logicalRuns) > 0 && logicalRuns[0] != &ol.ellipsis {
		ol.startLogical = logicalRuns[0]
	}
	return logicalRuns, true
}

// Line returns the underlying (possibly ellipsis-shortened) GlyphLine.
func (ol *OrderedLine) Line() GlyphLine { return ol.line }

// Baseline is this line's absolute baseline y, accumulated across every
// paragraph and line before it. font ascent/descent (both relative to
// the baseline) are added to it to get a line's absolute top/bottom.
func (ol *OrderedLine) Baseline() float32 { return ol.y }

// Bottom is this line's absolute bottom (baseline plus descent).
func (ol *OrderedLine) Bottom() float32 { return ol.y + (ol.line.Bottom - ol.line.Baseline) }

// LastRun returns the visually-last run on the line.
func (ol *OrderedLine) LastRun() *GlyphRun {
	if len(ol.runs) == 0 {
		return nil
	}
	return ol.runs[len(ol.runs)-1]
}

// startGlyphIndex and endGlyphIndex report the glyph span of run as it
// participates in this line: the full run, except at the line's own
// first/last logical run, which may be partial (and, for RTL runs, have
// their start/end swapped since glyph storage order runs opposite to
// codepoint order).
func (ol *OrderedLine) startGlyphIndex(run *GlyphRun) int {
	if run.RTL() {
		end := len(run.Glyphs)
		if ol.endLogical == run {
			end = ol.line.EndGlyphIndex
		}
		return end - 1
	}
	if ol.startLogical == run {
		return ol.line.StartGlyphIndex
	}
	return 0
}

func (ol *OrderedLine) endGlyphIndex(run *GlyphRun) int {
	if run.RTL() {
		start := 0
		if ol.startLogical == run {
			start = ol.line.StartGlyphIndex
		}
		return start - 1
	}
	if ol.endLogical == run {
		return ol.line.EndGlyphIndex
	}
	return len(run.Glyphs)
}

// GlyphAt identifies one glyph on the line by its position in visual
// run order.
type GlyphAt struct {
	Run        *GlyphRun
	GlyphIndex int
}

// glyphIter walks a line's glyphs in visual order across run
// boundaries, skipping runs left empty by the line break. Ported from
// text.cpp's GlyphItr.
type glyphIter struct {
	ol         *OrderedLine
	runIdx     int
	glyphIndex int
}

func (ol *OrderedLine) beginIter() glyphIter {
	it := glyphIter{ol: ol, runIdx: 0}
	it.glyphIndex = ol.startGlyphIndex(ol.runs[0])
	it.tryAdvanceRun()
	return it
}

func (ol *OrderedLine) endIter() glyphIter {
	last := len(ol.runs) - 1
	return glyphIter{ol: ol, runIdx: last, glyphIndex: ol.endGlyphIndex(ol.runs[last])}
}

func (it *glyphIter) run() *GlyphRun { return it.ol.runs[it.runIdx] }

func (it *glyphIter) tryAdvanceRun() {
	for {
		run := it.run()
		if it.glyphIndex == it.ol.endGlyphIndex(run) && it.runIdx != len(it.ol.runs)-1 {
			it.runIdx++
			it.glyphIndex = it.ol.startGlyphIndex(it.run())
		} else {
			break
		}
	}
}

func (it *glyphIter) next() {
	if it.run().RTL() {
		it.glyphIndex--
	} else {
		it.glyphIndex++
	}
	it.tryAdvanceRun()
}

func (it glyphIter) equal(o glyphIter) bool {
	return it.runIdx == o.runIdx && it.glyphIndex == o.glyphIndex
}

// Glyphs returns every glyph on the line in visual (left-to-right on
// screen) order, crossing run boundaries as needed.
func (ol *OrderedLine) Glyphs() []GlyphAt {
	if len(ol.runs) == 0 {
		return nil
	}
	it := ol.beginIter()
	end := ol.endIter()
	var out []GlyphAt
	for !it.equal(end) {
		out = append(out, GlyphAt{Run: it.run(), GlyphIndex: it.glyphIndex})
		it.next()
	}
	return out
}

// ContainsCodePointIndex reports whether codePointIndex's glyph lies on
// this line.
func (ol *OrderedLine) ContainsCodePointIndex(lookup *GlyphLookup, codePointIndex int) bool {
	target := lookup.At(codePointIndex)
	for _, g := range ol.Glyphs() {
		if lookup.At(g.Run.TextIndices[g.GlyphIndex]) == target {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FirstCodePointIndex returns the codepoint index of the line's
// visually-first glyph (skipping past it, for an RTL run, to land on the
// first code unit actually read first), clamped below the trailing
// zero-width-space sentinel. Ported from text_engine.cpp's
// OrderedLine::firstCodePointIndex.
func (ol *OrderedLine) FirstCodePointIndex(lookup *GlyphLookup) int {
	glyphs := ol.Glyphs()
	if len(glyphs) == 0 {
		return 0
	}
	first := glyphs[0]
	index := first.Run.TextIndices[first.GlyphIndex]
	if first.Run.RTL() {
		index += lookup.Count(index)
	}
	return minInt(index, lookup.LastCodeUnitIndex()-1)
}

// LastCodePointIndex returns the codepoint index of the line's
// visually-last glyph, clamped below the trailing zero-width-space
// sentinel. Ported from text_engine.cpp's OrderedLine::lastCodePointIndex.
func (ol *OrderedLine) LastCodePointIndex(lookup *GlyphLookup) int {
	glyphs := ol.Glyphs()
	if len(glyphs) == 0 {
		return 0
	}
	last := glyphs[len(glyphs)-1]
	index := last.Run.TextIndices[last.GlyphIndex]
	if !last.Run.RTL() {
		index += lookup.Count(index)
	}
	return minInt(index, lookup.LastCodeUnitIndex()-1)
}
