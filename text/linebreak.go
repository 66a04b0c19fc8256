// SPDX-License-Identifier: Unlicense OR MIT

package text

import "math"

// autoWidth reports whether width is the "no wrap limit" sentinel
// (SizingAutoWidth / WrapOff use a negative width to mean "unbounded").
func autoWidth(width float32) bool { return width < 0 }

// wordMarker walks a GlyphRun slice's Breaks pair lists two entries (one
// break span) at a time, hopping across run boundaries when a run's
// Breaks are exhausted. Ported from line_breaker.cpp's WordMarker.
type wordMarker struct {
	runs  []GlyphRun
	run   int
	index int
}

func (w *wordMarker) next() bool {
	w.index += 2
	for w.index >= len(w.runs[w.run].Breaks) {
		w.index -= len(w.runs[w.run].Breaks)
		w.run++
		if w.run >= len(w.runs) {
			return false
		}
	}
	return true
}

// glyphCursor walks single glyphs across run boundaries, skipping runs
// with no glyphs. Ported from line_breaker.cpp's RunIterator.
type glyphCursor struct {
	runs  []GlyphRun
	run   int
	index int
}

func (c *glyphCursor) back() bool {
	if c.index == 0 {
		if c.run == 0 {
			return false
		}
		c.run--
		if len(c.runs[c.run].Glyphs) == 0 {
			c.index = 0
			return c.back()
		}
		c.index = len(c.runs[c.run].Glyphs) - 1
	} else {
		c.index--
	}
	return true
}

func (c *glyphCursor) forward() bool {
	if c.index == len(c.runs[c.run].Glyphs) {
		if c.run >= len(c.runs)-1 {
			return false
		}
		c.run++
		c.index = 0
		if len(c.runs[c.run].Glyphs) == 0 {
			return c.forward()
		}
	} else {
		c.index++
	}
	return true
}

func (c *glyphCursor) x() float32 { return c.runs[c.run].Xpos[c.index] }

func (c glyphCursor) equal(o glyphCursor) bool { return c.run == o.run && c.index == o.index }

func newGlyphLine(runIdx, glyphIdx int) GlyphLine {
	return GlyphLine{StartRunIndex: runIdx, StartGlyphIndex: glyphIdx, EndRunIndex: runIdx, EndGlyphIndex: glyphIdx}
}

// BreakLines greedily fills lines up to width (a negative width means
// unbounded: SizingAutoWidth/WrapOff), breaking at word boundaries
// recorded in each run's Breaks, and falling back to mid-word breaking
// when a single word cannot fit within width on its own. Ported from
// line_breaker.cpp's GlyphLine::BreakLines.
func BreakLines(runs []GlyphRun, width float32) []GlyphLine {
	maxLineWidth := width
	if autoWidth(width) {
		maxLineWidth = math.MaxFloat32
	}

	var lines []GlyphLine
	if len(runs) == 0 {
		return lines
	}

	limit := maxLineWidth
	advanceWord := false

	start := wordMarker{runs: runs, run: 0, index: -2}
	end := wordMarker{runs: runs, run: 0, index: -1}
	if !start.next() || !end.next() {
		return lines
	}

	line := GlyphLine{}

	breakIndex := runs[end.run].Breaks[end.index]
	breakRun := end.run
	lastEndGlyphIndex := end.index
	startBreakIndex := runs[start.run].Breaks[start.index]
	startBreakRun := start.run

	x := runs[end.run].Xpos[breakIndex]
	for {
		if advanceWord {
			lastEndGlyphIndex = end.index

			if !start.next() {
				break
			}
			if !end.next() {
				break
			}

			advanceWord = false

			breakIndex = runs[end.run].Breaks[end.index]
			breakRun = end.run
			startBreakIndex = runs[start.run].Breaks[start.index]
			startBreakRun = start.run
			x = runs[end.run].Xpos[breakIndex]
		}

		isForcedBreak := breakRun == startBreakRun && breakIndex == startBreakIndex

		if !isForcedBreak && x > limit {
			startRunIndex := start.run

			if line.StartRunIndex == startRunIndex && line.StartGlyphIndex == startBreakIndex {
				canBreakMore := true
				for canBreakMore && x > limit {
					lineStart := glyphCursor{runs: runs, run: line.StartRunIndex, index: line.StartGlyphIndex}
					lineEnd := glyphCursor{runs: runs, run: end.run, index: runs[end.run].Breaks[end.index]}
					for {
						if !lineEnd.back() {
							canBreakMore = false
							break
						} else if lineEnd.x() <= limit {
							if lineStart.equal(lineEnd) && !lineEnd.forward() {
								canBreakMore = false
							} else {
								line.EndRunIndex = lineEnd.run
								line.EndGlyphIndex = lineEnd.index
							}
							break
						}
					}
					if canBreakMore {
						limit = lineEnd.x() + maxLineWidth
						if !line.Empty() {
							lines = append(lines, line)
						}
						line = newGlyphLine(lineEnd.run, lineEnd.index)
					}
				}
			} else {
				startX := runs[start.run].Xpos[runs[start.run].Breaks[start.index]]
				limit = startX + maxLineWidth

				if !line.Empty() || start.index-lastEndGlyphIndex > 1 {
					lines = append(lines, line)
				}

				line = newGlyphLine(startRunIndex, startBreakIndex)
			}
		} else {
			line.EndRunIndex = end.run
			line.EndGlyphIndex = runs[end.run].Breaks[end.index]
			advanceWord = true
			if isForcedBreak {
				lines = append(lines, line)
				startX := runs[start.run].Xpos[runs[start.run].Breaks[start.index]+1]
				limit = startX + maxLineWidth
				line = newGlyphLine(start.run, startBreakIndex+1)
			}
		}
	}

	if !line.Empty() {
		lines = append(lines, line)
	}

	return lines
}

// ComputeMaxWidth returns the widest line's content width, ignoring the
// trailing letter-spacing of each line's last glyph.
func ComputeMaxWidth(lines []GlyphLine, runs []GlyphRun) float32 {
	var maxLineWidth float32
	for _, line := range lines {
		w := runs[line.EndRunIndex].Xpos[line.EndGlyphIndex] -
			runs[line.StartRunIndex].Xpos[line.StartGlyphIndex] -
			runs[line.EndRunIndex].LetterSpacing
		if w > maxLineWidth {
			maxLineWidth = w
		}
	}
	return maxLineWidth
}

// computeLineMetrics derives a run's effective ascent/descent, either
// straight from the font (customLineHeight < 0) or rescaled to a
// caller-supplied line height while preserving the font's
// ascent/descent ratio.
func computeLineMetrics(fontAscent, fontDescent, customLineHeight, fontSize float32) (ascent, descent float32) {
	if customLineHeight < 0 {
		return fontAscent * fontSize, fontDescent * fontSize
	}
	baseline := -fontAscent
	height := baseline + fontDescent
	baselineFactor := float32(0)
	if height != 0 {
		baselineFactor = baseline / height
	}
	actualAscent := -baselineFactor * customLineHeight
	return actualAscent, customLineHeight + actualAscent
}

// ComputeLineSpacing assigns each line's Top/Baseline/Bottom and
// horizontal StartX (per align), mutating lines in place. isFirstLine
// controls whether the first line's top is seated at the tallest run's
// real font ascent (rather than its possibly-shorter custom line
// height), matching how a line's first baseline never eats into
// whatever sits above the layout box. Ported from
// line_breaker.cpp's GlyphLine::ComputeLineSpacing.
func ComputeLineSpacing(isFirstLine bool, lines []GlyphLine, runs []GlyphRun, width float32, align Align) {
	first := isFirstLine
	y := float32(0)
	for i := range lines {
		line := &lines[i]
		asc := float32(0)
		realAscent := float32(0)
		des := float32(0)
		lh := float32(0)
		for ri := line.StartRunIndex; ri <= line.EndRunIndex; ri++ {
			run := &runs[ri]
			metrics := run.Font.LineMetrics()
			a, d := computeLineMetrics(metrics.Ascent, metrics.Descent, run.LineHeight, run.Size)
			if fa := metrics.Ascent * run.Size; fa < realAscent {
				realAscent = fa
			}
			if a < asc {
				asc = a
			}
			if d > des {
				des = d
			}
			if run.LineHeight >= 0 {
				if run.LineHeight > lh {
					lh = run.LineHeight
				}
			} else if v := -asc + des; v > lh {
				lh = v
			}
		}
		_ = lh // line height currently folds into asc/des; kept for parity with the ported algorithm's intent

		line.Top = y
		if first {
			y = -realAscent
			first = false
		} else {
			y -= asc
		}
		line.Baseline = y
		y += des
		line.Bottom = y

		lineWidth := runs[line.EndRunIndex].Xpos[line.EndGlyphIndex] -
			runs[line.StartRunIndex].Xpos[line.StartGlyphIndex] -
			runs[line.EndRunIndex].LetterSpacing
		switch align {
		case AlignRight:
			line.StartX = width - lineWidth
		case AlignCenter:
			line.StartX = width/2 - lineWidth/2
		default:
			line.StartX = 0
		}
	}
}
