// SPDX-License-Identifier: Unlicense OR MIT

// Package editor implements the Editor component of the layout engine
// (SPEC_FULL.md §4.H): a plain-text input model that owns a text
// buffer, its shaped layout, a cursor/selection, and an undo/redo
// journal. It exposes editing (insert/erase/backspace), navigation
// (character/word/sub-word/line boundaries, vertical movement, pointer
// hit-testing), and measurement — everything a caller needs to drive a
// text box, independent of how that box is actually painted. Ported
// from original_source raw_text_input.cpp/.hpp; rendering-only members
// (glyph outline paths, clip paths, draw()) have no Go port here, in
// keeping with this module's scope around layout and editing rather
// than scene-graph/GPU integration.
package editor

import (
	"textcore.dev/cursor"
	"textcore.dev/f32"
	"textcore.dev/font"
	"textcore.dev/text"
)

// zeroWidthSpace terminates every buffer: it gives the caret somewhere
// to rest past the last real character without that position aliasing
// the start of a nonexistent next character, and anchors length()'s
// "real text excludes the sentinel" accounting.
const zeroWidthSpace rune = 0x200B

// CursorBoundary selects what cursorLeft/cursorRight stop at.
type CursorBoundary uint8

const (
	BoundaryCharacter CursorBoundary = iota
	BoundaryWord
	BoundarySubWord
	BoundaryLine
)

// Flags tracks which cached derived state (shape, selection geometry)
// needs recomputing before it's next read.
type Flags uint8

const (
	flagShapeDirty Flags = 1 << iota
	flagSelectionDirty
	flagSeparateSelectionText
	flagMeasureDirty
)

// Delineator classifies a codepoint for word/sub-word navigation
// purposes. It's a bitmask so callers (find, findPosition) can search
// for "anything other than this" via bitwise negation.
type Delineator uint8

const (
	DelineatorUnknown     Delineator = 0
	DelineatorLowercase   Delineator = 1 << 0
	DelineatorUppercase   Delineator = 1 << 1
	DelineatorSymbol      Delineator = 1 << 2
	DelineatorUnderscore  Delineator = 1 << 3
	DelineatorWhitespace  Delineator = 1 << 4
	DelineatorWord        = DelineatorLowercase | DelineatorUppercase | DelineatorUnderscore
	DelineatorAny         = DelineatorLowercase | DelineatorUppercase | DelineatorSymbol | DelineatorUnderscore | DelineatorWhitespace
)

// JournalEntry is one undo/redo step: the selection before and after
// the edit, and the full text after it. The journal stores whole-buffer
// snapshots (not diffs), matching the original's tradeoff of simplicity
// over memory use for an editable-text-box-sized buffer.
type JournalEntry struct {
	CursorFrom, CursorTo cursor.Selection
	Text                 string
}

// Input is an editable, shaped text box. The zero value is not usable;
// construct with New.
type Input struct {
	selection cursor.Selection
	run       text.Run
	buffer    []rune

	shape          text.FullyShapedText
	measuringShape *text.FullyShapedText
	lastMeasureMaxWidth, lastMeasureMaxHeight float32

	flags Flags

	paragraphSpacing float32
	origin           text.Origin
	sizing           text.Sizing
	overflow         text.Overflow
	align            text.Align
	wrap             text.Wrap
	maxWidth, maxHeight float32

	idealCursorX float32

	cursorVisualPos cursor.VisualPosition
	selectionRects  []f32.Rectangle

	selectionCornerRadius float32

	journal      []JournalEntry
	journalIndex int
}

// New returns an empty, left-aligned, top-origin, word-wrapping Input
// with a 16pt font size and no font set (callers must call SetFont
// before the first Update produces a usable shape).
func New() *Input {
	return &Input{
		selection:             cursor.AtStart(),
		run:                   text.Run{Size: 16, LineHeight: -1},
		buffer:                []rune{zeroWidthSpace},
		idealCursorX:          -1,
		selectionCornerRadius: 5,
		wrap:                  text.WrapOn,
	}
}

func (e *Input) flagged(mask Flags) bool { return e.flags&mask != 0 }

func (e *Input) unflag(mask Flags) bool {
	if e.flags&mask != 0 {
		e.flags &^= mask
		return true
	}
	return false
}

func (e *Input) flag(mask Flags) { e.flags |= mask }

// FontSize returns the current font size.
func (e *Input) FontSize() float32 { return e.run.Size }

// SetFontSize sets the font size in layout units.
func (e *Input) SetFontSize(value float32) {
	if e.run.Size == value {
		return
	}
	e.run.Size = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// MaxWidth returns the current layout width.
func (e *Input) MaxWidth() float32 { return e.maxWidth }

// SetMaxWidth sets the layout width used when Sizing is SizingFixed.
func (e *Input) SetMaxWidth(value float32) {
	if e.maxWidth == value {
		return
	}
	e.maxWidth = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// MaxHeight returns the current layout height.
func (e *Input) MaxHeight() float32 { return e.maxHeight }

// SetMaxHeight sets the layout height used when Sizing is SizingFixed.
func (e *Input) SetMaxHeight(value float32) {
	if e.maxHeight == value {
		return
	}
	e.maxHeight = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Sizing returns the current sizing mode.
func (e *Input) Sizing() text.Sizing { return e.sizing }

// SetSizing sets whether the box is caller-fixed or content-sized.
func (e *Input) SetSizing(value text.Sizing) {
	if e.sizing == value {
		return
	}
	e.sizing = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Overflow returns the current overflow handling.
func (e *Input) Overflow() text.Overflow { return e.overflow }

// SetOverflow sets how content exceeding the box is handled.
func (e *Input) SetOverflow(value text.Overflow) {
	if e.overflow == value {
		return
	}
	e.overflow = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Align returns the current horizontal alignment.
func (e *Input) Align() text.Align { return e.align }

// SetAlign sets the horizontal line alignment.
func (e *Input) SetAlign(value text.Align) {
	if e.align == value {
		return
	}
	e.align = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Wrap returns the current wrap mode.
func (e *Input) Wrap() text.Wrap { return e.wrap }

// SetWrap sets whether lines break at MaxWidth.
func (e *Input) SetWrap(value text.Wrap) {
	if e.wrap == value {
		return
	}
	e.wrap = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Origin returns where y=0 sits relative to the shaped text.
func (e *Input) Origin() text.Origin { return e.origin }

// SetOrigin sets where y=0 sits relative to the shaped text.
func (e *Input) SetOrigin(value text.Origin) {
	if e.origin == value {
		return
	}
	e.origin = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Font returns the face used to shape the buffer.
func (e *Input) Font() font.Face { return e.run.Font }

// SetFont sets the face used to shape the buffer. Face wraps an
// underlying font table behind unexported maps, so unlike the other
// setters this can't cheaply compare old vs. new before flagging dirty;
// it always reshapes.
func (e *Input) SetFont(value font.Face) {
	e.run.Font = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// ParagraphSpacing returns the extra vertical gap inserted between
// paragraphs.
func (e *Input) ParagraphSpacing() float32 { return e.paragraphSpacing }

// SetParagraphSpacing sets the extra vertical gap between paragraphs.
func (e *Input) SetParagraphSpacing(value float32) {
	if e.paragraphSpacing == value {
		return
	}
	e.paragraphSpacing = value
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// SelectionCornerRadius returns the corner radius used when rounding
// selection highlight rectangles.
func (e *Input) SelectionCornerRadius() float32 { return e.selectionCornerRadius }

// SetSelectionCornerRadius sets the corner radius for selection
// highlights.
func (e *Input) SetSelectionCornerRadius(value float32) {
	if e.selectionCornerRadius == value {
		return
	}
	e.selectionCornerRadius = value
	e.flag(flagSelectionDirty)
}

// SeparateSelectionText reports whether glyphs under the selection are
// tracked separately (so a caller can paint them with a different
// color).
func (e *Input) SeparateSelectionText() bool { return e.flagged(flagSeparateSelectionText) }

// SetSeparateSelectionText sets whether glyphs under the selection are
// tracked separately.
func (e *Input) SetSeparateSelectionText(value bool) {
	if value {
		e.flag(flagSeparateSelectionText)
	} else {
		e.unflag(flagSeparateSelectionText)
	}
}

// Shape returns the current fully-shaped layout. Only valid once Update
// has run with no shape-affecting change since.
func (e *Input) Shape() *text.FullyShapedText { return &e.shape }

// Selection returns the current selection (a collapsed selection is a
// caret).
func (e *Input) Selection() cursor.Selection { return e.selection }

// SetSelection replaces the current selection outright.
func (e *Input) SetSelection(value cursor.Selection) {
	if e.selection == value {
		return
	}
	e.selection = value
	e.flag(flagSelectionDirty)
}

// Bounds returns the bounds of the current shape (see
// text.FullyShapedText.Bounds).
func (e *Input) Bounds() f32.Rectangle { return e.shape.Bounds() }

// CursorVisualPositionAt returns where position renders within the
// current shape.
func (e *Input) CursorVisualPositionAt(position cursor.Position) cursor.VisualPosition {
	return position.VisualPosition(&e.shape)
}

// CursorVisualPosition returns the cached screen position of the
// selection's active end, as of the last Update.
func (e *Input) CursorVisualPosition() cursor.VisualPosition { return e.cursorVisualPos }

// Length returns the number of real (non-sentinel) codepoints.
func (e *Input) Length() int {
	if e.Empty() {
		return 0
	}
	return len(e.buffer) - 1
}

// Empty reports whether the buffer holds only the trailing sentinel.
func (e *Input) Empty() bool { return len(e.buffer) <= 1 }

// Text returns the buffer's real (non-sentinel) text as a string.
func (e *Input) Text() string {
	if len(e.buffer) == 0 {
		return ""
	}
	return string(e.buffer[:len(e.buffer)-1])
}

func (e *Input) setTextPrivate(value string) {
	e.buffer = e.buffer[:0]
	e.buffer = append(e.buffer, []rune(value)...)
	e.buffer = append(e.buffer, zeroWidthSpace)
}

// SetText replaces the buffer wholesale, collapsing the selection to
// the start and recording an undo step.
func (e *Input) SetText(value string) {
	starting := e.selection
	e.setTextPrivate(value)
	e.selection = cursor.Collapsed(cursor.Zero())
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
	e.captureJournalEntry(starting)
}

// Erase deletes the current selection in place, collapsing the cursor
// to where it started. A no-op on a collapsed selection.
func (e *Input) Erase() {
	e.idealCursorX = -1
	if e.selection.IsCollapsed() {
		return
	}
	first := e.selection.First().CodePointIndex
	last := e.selection.Last().CodePointIndex
	e.buffer = append(e.buffer[:first], e.buffer[last:]...)
	e.selection = cursor.Collapsed(cursor.AtCodePoint(first))
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// InsertRune inserts a single codepoint at the cursor, first erasing any
// existing selection, and records an undo step.
func (e *Input) InsertRune(codePoint rune) {
	starting := e.selection
	e.Erase()

	at := e.selection.Start.CodePointIndex
	e.buffer = append(e.buffer, 0)
	copy(e.buffer[at+1:], e.buffer[at:])
	e.buffer[at] = codePoint

	e.selection = cursor.Collapsed(cursor.AtCodePoint(e.selection.First().OffsetCodePoint(1).CodePointIndex))
	e.captureJournalEntry(starting)
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Insert inserts a string at the cursor, first erasing any existing
// selection, and records a single undo step for the whole string.
func (e *Input) Insert(value string) {
	starting := e.selection
	e.Erase()

	at := e.selection.Start.CodePointIndex
	runes := []rune(value)
	tail := append([]rune{}, e.buffer[at:]...)
	e.buffer = append(e.buffer[:at], runes...)
	e.buffer = append(e.buffer, tail...)

	e.selection = cursor.Collapsed(cursor.AtCodePoint(at + len(runes)))
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
	e.captureJournalEntry(starting)
}

// Backspace deletes the character behind (direction < 0) or ahead of
// (direction >= 0) the cursor when the selection is collapsed, or
// otherwise erases the selection.
func (e *Input) Backspace(direction int) {
	starting := e.selection
	offset := 0
	if direction < 0 {
		offset = -1
	}
	if !e.selection.IsCollapsed() {
		e.Erase()
		e.captureJournalEntry(starting)
		return
	}
	e.idealCursorX = -1
	if offset < 0 && e.selection.First().CodePointIndex == 0 {
		return
	}

	index := e.selection.First().OffsetCodePoint(offset).CodePointIndex
	if index >= len(e.buffer)-1 {
		return
	}
	e.buffer = append(e.buffer[:index], e.buffer[index+1:]...)
	e.selection = cursor.Collapsed(cursor.AtCodePoint(index))
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
	e.captureJournalEntry(starting)
}

// Undo reverts to the previous journal snapshot, if any.
func (e *Input) Undo() {
	if e.journalIndex == 0 {
		return
	}
	from := e.journal[e.journalIndex]
	to := e.journal[e.journalIndex-1]
	e.setTextPrivate(to.Text)
	e.selection = from.CursorFrom
	e.journalIndex--
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

// Redo reapplies the next journal snapshot, if any.
func (e *Input) Redo() {
	if len(e.journal) == 0 || e.journalIndex+1 >= len(e.journal) {
		return
	}
	to := e.journal[e.journalIndex+1]
	e.setTextPrivate(to.Text)
	e.selection = to.CursorTo
	e.journalIndex++
	e.flag(flagShapeDirty | flagSelectionDirty | flagMeasureDirty)
}

func (e *Input) captureJournalEntry(from cursor.Selection) {
	if e.journalIndex+1 < len(e.journal) {
		e.journal = e.journal[:e.journalIndex+1]
	}
	e.journal = append(e.journal, JournalEntry{CursorFrom: from, CursorTo: e.selection, Text: e.Text()})
	e.journalIndex = len(e.journal) - 1
}

// classifyRune categorizes a single codepoint for word-navigation
// purposes. Only ASCII ranges (plus U+2028 as whitespace) are
// distinguished; any other codepoint (including all non-ASCII letters)
// classifies as lowercase, i.e. "part of a word" — matching the
// original's fallthrough behavior.
func classifyRune(codepoint rune) Delineator {
	if codepoint <= ' ' || codepoint == 0x2028 {
		return DelineatorWhitespace
	}
	if codepoint == '_' {
		return DelineatorUnderscore
	}
	if codepoint < 48 || (codepoint >= 58 && codepoint <= 64) ||
		(codepoint >= 91 && codepoint <= 96) || (codepoint >= 123 && codepoint <= 127) {
		return DelineatorSymbol
	}
	if codepoint >= 'A' && codepoint <= 'Z' {
		return DelineatorUppercase
	}
	return DelineatorLowercase
}

// classifyAt classifies the codepoint at position, treating any
// position past the real text (or an empty buffer) as whitespace so
// navigation always finds a boundary at the edges of the buffer.
func (e *Input) classifyAt(position cursor.Position) Delineator {
	if e.Empty() || position.CodePointIndex < 0 || position.CodePointIndex >= len(e.buffer)-1 {
		return DelineatorWhitespace
	}
	return classifyRune(e.buffer[position.CodePointIndex])
}

// find walks position one codepoint at a time in direction until it
// finds a codepoint whose classification intersects mask, or it can no
// longer move; it mutates *position to the stopping point and returns
// the classification found there (DelineatorUnknown if it never moved).
// Ported from raw_text_input.cpp's RawTextInput::find.
func (e *Input) find(mask Delineator, position *cursor.Position, direction int) Delineator {
	last := DelineatorUnknown
	for {
		next := position.OffsetCodePoint(direction)
		if next.CodePointIndex == position.CodePointIndex || next.CodePointIndex > e.Length() {
			break
		}
		*position = next
		probe := next
		if direction < 0 {
			probe = next.OffsetCodePoint(-1)
		} else {
			probe = next.OffsetCodePoint(0)
		}
		last = e.classifyAt(probe)
		if last&mask != 0 {
			break
		}
	}
	return last
}

// findPosition is find's read-only counterpart: it returns the found
// position instead of mutating one in place. Moving right it stops
// before the last real codepoint's successor (e.Length()); moving left
// it stops at index 0, where OffsetCodePoint saturates. Ported from
// RawTextInput::findPosition.
func (e *Input) findPosition(mask Delineator, position cursor.Position, direction int) cursor.Position {
	result := position
	for {
		next := result.OffsetCodePoint(direction)
		if next.CodePointIndex == result.CodePointIndex || next.CodePointIndex >= e.Length() {
			break
		}
		if e.classifyAt(next)&mask != 0 {
			break
		}
		result = next
	}
	return result
}

func (e *Input) orderedLine(position cursor.Position) *text.OrderedLine {
	lines := e.shape.OrderedLines()
	if position.LineIndex < 0 || position.LineIndex >= len(lines) {
		return nil
	}
	return &lines[position.LineIndex]
}

// SelectWord expands the selection to cover the word (or, if the cursor
// sits between words, the whitespace/symbol run) at its start.
func (e *Input) SelectWord() {
	search := e.selection.Start
	classification := e.classifyAt(search)
	if classification&DelineatorWord == DelineatorUnknown {
		previous := search.OffsetCodePoint(-1)
		previousClassification := e.classifyAt(previous)
		if previousClassification&DelineatorWord != DelineatorUnknown {
			search = previous
			classification = previousClassification
		}
	}
	if classification&DelineatorWord != DelineatorUnknown {
		classification = DelineatorWord
	}

	mask := Delineator(^uint8(classification))
	start := e.findPosition(mask, search, -1)
	end := e.findPosition(mask, search, 1)
	end = end.OffsetCodePoint(1)

	e.selection = cursor.Selection{Start: start, End: end}
	e.flag(flagSelectionDirty)
}

// cursorHorizontal resolves a single character/word/sub-word/line step
// from the active end of the selection, mutating the selection
// (extending it if select is set, collapsing to the new position
// otherwise). Ported from RawTextInput::cursorHorizontal.
func (e *Input) cursorHorizontal(offset int, boundary CursorBoundary, selecting bool) {
	e.idealCursorX = -1
	end := e.selection.End
	position := end

	switch boundary {
	case BoundaryCharacter:
		position = cursor.AtIndex(end.OffsetCodePoint(offset).CodePointIndex, &e.shape)

	case BoundaryLine:
		if line := e.orderedLine(end); line != nil {
			lookup := e.shape.GlyphLookup()
			codePointIndex := line.LastCodePointIndex(lookup)
			if offset < 0 {
				codePointIndex = line.FirstCodePointIndex(lookup)
			}
			position = cursor.Position{LineIndex: end.LineIndex, CodePointIndex: codePointIndex}
		}

	case BoundaryWord, BoundarySubWord:
		backOffset := 0
		if offset < 0 {
			backOffset = -1
		}
		classification := e.classifyAt(position.OffsetCodePoint(backOffset))

		switch classification {
		case DelineatorWhitespace, DelineatorUnderscore:
			classification = e.find(Delineator(^uint8(classification)), &position, offset)
		}

		switch classification {
		case DelineatorSymbol:
			e.find(Delineator(^uint8(classification)), &position, offset)
		case DelineatorLowercase:
			if boundary == BoundarySubWord {
				nonLowercase := e.find(Delineator(^uint8(DelineatorLowercase)), &position, offset)
				if offset == -1 && nonLowercase == DelineatorUppercase {
					position = position.OffsetCodePoint(-1)
				}
			} else {
				e.find(Delineator(^uint8(DelineatorWord)), &position, offset)
			}
		case DelineatorUppercase:
			if boundary == BoundarySubWord {
				startPosition := position
				nonUpper := e.find(Delineator(^uint8(DelineatorUppercase)), &position, offset)
				if offset == 1 && nonUpper == DelineatorLowercase {
					position = position.OffsetCodePoint(-1)
					if position.CodePointIndex == startPosition.CodePointIndex {
						e.find(Delineator(^uint8(DelineatorLowercase)), &position, offset)
					}
				}
			} else {
				e.find(Delineator(^uint8(DelineatorWord)), &position, offset)
			}
		default:
			e.find(Delineator(^uint8(classification)), &position, offset)
		}
	}

	if selecting {
		e.selection = cursor.Selection{Start: e.selection.Start, End: position}
	} else {
		e.selection = cursor.Collapsed(position)
	}
	e.flag(flagSelectionDirty)
}

// CursorLeft moves (or extends, if selecting) the cursor one boundary
// to the left.
func (e *Input) CursorLeft(boundary CursorBoundary, selecting bool) {
	e.cursorHorizontal(-1, boundary, selecting)
}

// CursorRight moves (or extends, if selecting) the cursor one boundary
// to the right.
func (e *Input) CursorRight(boundary CursorBoundary, selecting bool) {
	e.cursorHorizontal(1, boundary, selecting)
}

// CursorUp moves the cursor to the line above, preserving its
// horizontal screen position across repeated vertical moves (via
// idealCursorX) the way most text editors do.
func (e *Input) CursorUp(selecting bool) {
	if e.idealCursorX == -1 {
		e.idealCursorX = e.cursorVisualPos.X
	}
	lineIndex := e.selection.End.LineIndex

	var position cursor.Position
	if lineIndex == 0 {
		position = cursor.Zero()
	} else {
		position = cursor.FromLineX(e.selection.End.OffsetLine(-1), e.idealCursorX, &e.shape)
	}

	if selecting {
		e.selection = cursor.Selection{Start: e.selection.Start, End: position}
	} else {
		e.selection = cursor.Collapsed(position)
	}
	e.flag(flagSelectionDirty)
}

// CursorDown moves the cursor to the line below, preserving its
// horizontal screen position the same way CursorUp does.
func (e *Input) CursorDown(selecting bool) {
	if e.idealCursorX == -1 {
		e.idealCursorX = e.cursorVisualPos.X
	}
	nextLineIndex := e.selection.End.OffsetLine(1)

	var position cursor.Position
	lineCount := len(e.shape.OrderedLines())
	if lineCount != 0 && len(e.buffer) > 1 && nextLineIndex >= lineCount {
		position = cursor.Position{LineIndex: lineCount - 1, CodePointIndex: len(e.buffer) - 1}
	} else {
		position = cursor.FromLineX(nextLineIndex, e.idealCursorX, &e.shape)
	}

	if selecting {
		e.selection = cursor.Selection{Start: e.selection.Start, End: position}
	} else {
		e.selection = cursor.Collapsed(position)
	}
	e.flag(flagSelectionDirty)
}

// MoveCursorTo moves (or extends, if selecting) the cursor to whichever
// codepoint sits closest to translation, a point in layout space — the
// operation behind a pointer click or drag.
func (e *Input) MoveCursorTo(translation f32.Point, selecting bool) {
	e.idealCursorX = -1
	position := cursor.FromTranslation(translation, &e.shape)

	if selecting {
		e.selection = cursor.Selection{Start: e.selection.Start, End: position}
	} else {
		e.selection = cursor.Collapsed(position)
	}
	e.flag(flagSelectionDirty)
}

func (e *Input) computeVisualPositionFromCursor() {
	e.cursorVisualPos = e.selection.End.VisualPosition(&e.shape)
}

// Update recomputes any state left dirty by prior setters or edits:
// reshaping the buffer if its text or layout parameters changed, then
// re-resolving the selection's line positions, cursor visual position
// and selection highlight rectangles if the selection changed. It
// reports whether anything was recomputed.
func (e *Input) Update() bool {
	updated := false
	if e.unflag(flagShapeDirty) {
		updated = true
		e.run.CodepointCount = len(e.buffer)
		e.shape.Shape(e.buffer, []text.Run{e.run}, e.sizing, e.maxWidth, e.maxHeight, e.align, e.wrap, e.origin, e.overflow, e.paragraphSpacing)
	}
	if e.unflag(flagSelectionDirty) {
		updated = true
		e.selection.ResolveLinePositions(&e.shape)
		e.computeVisualPositionFromCursor()
		e.selectionRects = e.selection.SelectionRects(&e.shape)
	}
	return updated
}

// SelectionRects returns one rectangle per glyph (or partial glyph at
// either end) the current selection overlaps, as of the last Update.
func (e *Input) SelectionRects() []f32.Rectangle { return e.selectionRects }

// Measure lays the buffer out at maxWidth/maxHeight into a side-channel
// shape that never touches the editable shape or cursor state, and
// returns its bounds (see text.FullyShapedText.Bounds) — for callers (auto-sizing containers)
// that need to know how big the text would be at a hypothetical size
// without committing to it. Reconstructed from measure()'s declared
// signature in raw_text_input.hpp; its body was not present in
// original_source, so this mirrors Update's shaping call with the
// supplied dimensions instead of the Input's own.
func (e *Input) Measure(maxWidth, maxHeight float32) f32.Rectangle {
	if e.measuringShape != nil && e.lastMeasureMaxWidth == maxWidth && e.lastMeasureMaxHeight == maxHeight && !e.unflag(flagMeasureDirty) {
		return e.measuringShape.Bounds()
	}
	if e.measuringShape == nil {
		e.measuringShape = &text.FullyShapedText{}
	}
	run := e.run
	run.CodepointCount = len(e.buffer)
	e.measuringShape.Shape(e.buffer, []text.Run{run}, e.sizing, maxWidth, maxHeight, e.align, e.wrap, e.origin, e.overflow, e.paragraphSpacing)
	e.lastMeasureMaxWidth = maxWidth
	e.lastMeasureMaxHeight = maxHeight
	return e.measuringShape.Bounds()
}
