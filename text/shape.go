// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"textcore.dev/font"
)

// Shape is the Shaper of SPEC_FULL.md §4.B: given the full input text and
// its caller-styled runs, it splits into paragraphs, computes bidi levels
// and scripts per codepoint, splits styled runs on level-or-script
// boundaries, shapes each resulting sub-run (retrying through font
// fallback when a sub-run comes back with missing glyphs), and returns
// the finished
// paragraphs with continuous xpos and a break table.
//
// Grounded on text/gotext.go's splitByScript/splitBidi/shapeText pipeline
// shape, reordered to match the original implementation's combined
// level-or-script split (font_hb.cpp's onShapeText).
func Shape(codepoints []rune, runs []Run) []Paragraph {
	if len(codepoints) == 0 {
		return []Paragraph{{Runs: nil, Level: 0}}
	}

	var paragraphs []Paragraph
	start := 0
	for start <= len(codepoints) {
		end := start
		for end < len(codepoints) && codepoints[end] != '\n' {
			end++
		}
		paraRuns := runsInRange(runs, start, end)
		paragraph := shapeParagraph(codepoints[start:end], paraRuns)
		for ri := range paragraph.Runs {
			for gi := range paragraph.Runs[ri].TextIndices {
				paragraph.Runs[ri].TextIndices[gi] += start // paragraph-local to full-input index
			}
		}
		paragraphs = append(paragraphs, paragraph)
		if end >= len(codepoints) {
			break
		}
		start = end + 1 // skip the \n: it ends this paragraph, starts no empty trailing one unless more text follows
		if start >= len(codepoints) {
			break
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = append(paragraphs, Paragraph{})
	}
	return paragraphs
}

// runsInRange returns the caller styled runs (re-sliced in codepoint
// count) that cover text[start:end] of the full input.
func runsInRange(runs []Run, start, end int) []Run {
	var out []Run
	pos := 0
	for _, r := range runs {
		rStart, rEnd := pos, pos+r.CodepointCount
		pos = rEnd
		if rEnd <= start || rStart >= end {
			continue
		}
		lo, hi := rStart, rEnd
		if lo < start {
			lo = start
		}
		if hi > end {
			hi = end
		}
		rr := r
		rr.CodepointCount = hi - lo
		out = append(out, rr)
	}
	return out
}

// bidiLevels returns the Unicode bidi level for every codepoint in text,
// and the paragraph's base level.
func bidiLevels(text []rune) ([]uint8, uint8) {
	levels := make([]uint8, len(text))
	if len(text) == 0 {
		return levels, 0
	}
	var p bidi.Paragraph
	p.SetString(string(text), bidi.DefaultDirection(bidi.LeftToRight))
	order, err := p.Order()
	if err != nil {
		return levels, 0
	}
	baseRTL := false
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		rtl := run.Direction() == bidi.RightToLeft
		if i == 0 {
			baseRTL = rtl
		}
		level := uint8(0)
		if rtl {
			level = 1
		}
		start, end := run.Pos()
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	base := uint8(0)
	if baseRTL {
		base = 1
	}
	return levels, base
}

// scripts returns the propagated script for every codepoint, following
// Common/Inherited propagation from the previous concrete script.
func scripts(text []rune) []language.Script {
	out := make([]language.Script, len(text))
	last := language.Script(0)
	for i, r := range text {
		s := language.LookupScript(r)
		if s == language.Common || s == language.Inherited {
			s = last
		} else {
			last = s
		}
		out[i] = s
	}
	return out
}

func shapeParagraph(text []rune, runs []Run) Paragraph {
	if len(text) == 0 {
		return Paragraph{}
	}
	levels, base := bidiLevels(text)
	scr := scripts(text)

	subRuns := splitRuns(text, runs, levels, scr)

	glyphRuns := make([]GlyphRun, 0, len(subRuns))
	for _, sr := range subRuns {
		glyphRuns = append(glyphRuns, shapeSubRun(text, sr))
	}
	for i := range glyphRuns {
		buildBreaks(text, &glyphRuns[i], subRuns[i])
	}
	assignXpos(glyphRuns)
	return Paragraph{Runs: glyphRuns, Level: base}
}

// subRun is one caller run further split on level/script boundaries.
type subRun struct {
	Run
	start, end int // codepoint range within the paragraph's text
	level      uint8
	script     language.Script
}

// splitRuns walks the paragraph and splits the caller's styled runs
// whenever the bidi level or the script changes (SPEC_FULL.md §4.B
// step 3).
func splitRuns(text []rune, runs []Run, levels []uint8, scr []language.Script) []subRun {
	var out []subRun
	pos := 0
	for _, r := range runs {
		runEnd := pos + r.CodepointCount
		segStart := pos
		for i := pos; i < runEnd; i++ {
			if i+1 == runEnd || levels[i+1] != levels[segStart] || scr[i+1] != scr[segStart] {
				out = append(out, subRun{Run: r, start: segStart, end: i + 1, level: levels[segStart], script: scr[segStart]})
				segStart = i + 1
			}
		}
		pos = runEnd
	}
	return out
}

func shapeSubRun(text []rune, sr subRun) GlyphRun {
	gr := GlyphRun{
		Font:          sr.Font,
		Size:          sr.Size,
		LineHeight:    sr.LineHeight,
		LetterSpacing: sr.LetterSpacing,
		StyleID:       sr.StyleID,
		Level:         sr.level,
	}
	shapeInto(&gr, text, sr)
	if anyMissing(gr.Glyphs) {
		performFallback(&gr, text, sr)
	}
	return gr
}

func anyMissing(glyphs []font.GlyphID) bool {
	for _, g := range glyphs {
		if g == 0 {
			return true
		}
	}
	return false
}

// shapeInto runs one font's shaper over text[sr.start:sr.end] and fills
// gr's glyph arrays (excluding Xpos, assigned globally afterward).
func shapeInto(gr *GlyphRun, text []rune, sr subRun) {
	raw, ok := sr.Font.Raw()
	if !ok || sr.end <= sr.start {
		return
	}
	dir := di.DirectionLTR
	if sr.level%2 == 1 {
		dir = di.DirectionRTL
	}
	shaper := shaping.HarfbuzzShaper{}
	out := shaper.Shape(shaping.Input{
		Text:     text,
		RunStart: sr.start,
		RunEnd:   sr.end,
		Direction: dir,
		Face:     *raw,
		Size:     fixed.I(int(sr.Size)),
		Script:   sr.script,
	})
	n := len(out.Glyphs)
	gr.Glyphs = make([]font.GlyphID, n)
	gr.TextIndices = make([]int, n)
	gr.Advances = make([]float32, n)
	gr.OffsetsX = make([]float32, n)
	gr.OffsetsY = make([]float32, n)
	for i, g := range out.Glyphs {
		gr.Glyphs[i] = font.GlyphID(g.GlyphID)
		gr.TextIndices[i] = g.ClusterIndex
		gr.Advances[i] = fx(g.XAdvance) + sr.LetterSpacing
		gr.OffsetsX[i] = fx(g.XOffset)
		gr.OffsetsY[i] = -fx(g.YOffset) // negate once, here: font is y-up, layout is y-down
	}
}

func fx(v fixed.Int26_6) float32 { return float32(v) / 64 }

// performFallback asks the process-wide fallback hook once, for the
// first missing codepoint, and re-shapes the whole sub-run in the face
// it returns, keeping that result when it has fewer missing glyphs than
// gr. It does not partition gr into good and missing spans: the sub-run
// ends up shaped entirely in one face, so glyphs only the primary face
// covers become tofu when the fallback result is kept. Grounded on
// font_hb.cpp's perform_fallback.
func performFallback(gr *GlyphRun, text []rune, sr subRun) {
	if font.Fallback == nil || len(gr.Glyphs) == 0 {
		return
	}
	missingCP := text[sr.start]
	for i, g := range gr.Glyphs {
		if g == 0 {
			missingCP = text[sr.start+clampIdx(gr.TextIndices[i]-sr.start, len(text)-sr.start)]
			break
		}
	}
	fallback, ok := font.Fallback(missingCP, 0, sr.Font)
	if !ok {
		return
	}
	retry := sr
	retry.Font = fallback
	var retried GlyphRun
	shapeInto(&retried, text, retry)
	if anyMissing(retried.Glyphs) {
		// Keep whichever attempt has fewer tofu glyphs; never loop
		// indefinitely hunting for a perfect fallback.
		if countMissing(retried.Glyphs) < countMissing(gr.Glyphs) {
			*gr = retried
			gr.Font = fallback
		}
		return
	}
	*gr = retried
	gr.Font = fallback
}

func countMissing(glyphs []font.GlyphID) int {
	n := 0
	for _, g := range glyphs {
		if g == 0 {
			n++
		}
	}
	return n
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		if n == 0 {
			return 0
		}
		return n - 1
	}
	return i
}

// assignXpos performs the single global prefix-sum pass across all of a
// paragraph's runs in logical order (SPEC_FULL.md §4.B step 6): each
// run's Xpos continues where the previous run's left off.
func assignXpos(runs []GlyphRun) {
	pos := float32(0)
	for i := range runs {
		r := &runs[i]
		r.Xpos = make([]float32, len(r.Advances)+1)
		for j, adv := range r.Advances {
			r.Xpos[j] = pos
			pos += adv
		}
		r.Xpos[len(r.Advances)] = pos
	}
}

// runeLineSeparator is U+2028 LINE SEPARATOR, written as an explicit
// \u2028 escape (not the literal codepoint) so it can't be misread as
// an ordinary space in a diff or terminal.
const runeLineSeparator = '\u2028'

func isWhitespace(r rune) bool {
	return r <= 0x20 || r == runeLineSeparator
}

// buildBreaks derives gr.Breaks by scanning the run's own codepoint span
// once, toggling between whitespace and non-whitespace runs of glyphs and
// inserting a forced degenerate pair at U+2028 (SPEC_FULL.md §4.B step
// 7). Indices are local to gr (glyph-index space).
func buildBreaks(text []rune, gr *GlyphRun, sr subRun) {
	n := len(gr.Glyphs)
	if n == 0 {
		return
	}
	catOf := func(i int) bool { // true = whitespace
		cp := text[sr.start+clampIdx(gr.TextIndices[i]-sr.start, sr.end-sr.start)]
		return isWhitespace(cp)
	}
	breaks := make([]int, 0, 4)
	segStart := 0
	for i := 0; i < n; i++ {
		cp := text[sr.start+clampIdx(gr.TextIndices[i]-sr.start, sr.end-sr.start)]
		forced := cp == runeLineSeparator
		last := i+1 == n
		changed := !last && catOf(i) != catOf(i+1)
		if forced {
			if i > segStart {
				breaks = append(breaks, segStart, i)
			}
			breaks = append(breaks, i, i) // degenerate forced-break pair
			segStart = i + 1
			continue
		}
		if last || changed {
			breaks = append(breaks, segStart, i+1)
			segStart = i + 1
		}
	}
	gr.Breaks = breaks
}
