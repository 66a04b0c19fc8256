// SPDX-License-Identifier: Unlicense OR MIT

package editor

import (
	"testing"

	"textcore.dev/cursor"
	"textcore.dev/font/gofont"
)

func newTestInput() *Input {
	e := New()
	e.SetFont(gofont.Regular())
	e.SetMaxWidth(1000)
	e.SetMaxHeight(1000)
	return e
}

// TestJournalWalkthroughS6 is scenario S6: a sequence of inserts,
// undos and redos must track text and cursor position exactly, and a
// fresh edit after undoing must truncate the redo tail.
func TestJournalWalkthroughS6(t *testing.T) {
	e := newTestInput()
	e.SetText("oneTwo")
	e.SetSelection(cursor.Collapsed(cursor.AtCodePoint(3)))

	e.InsertRune(' ')
	if got, want := e.Text(), "one Two"; got != want {
		t.Fatalf("after inserting space: text = %q, want %q", got, want)
	}
	e.InsertRune('2')
	if got, want := e.Text(), "one 2Two"; got != want {
		t.Fatalf("after inserting '2': text = %q, want %q", got, want)
	}
	e.InsertRune(' ')
	if got, want := e.Text(), "one 2 Two"; got != want {
		t.Fatalf("after inserting second space: text = %q, want %q", got, want)
	}
	if got := e.Selection().Start.CodePointIndex; got != 6 {
		t.Fatalf("cursor after inserts = %d, want 6", got)
	}

	type step struct {
		text   string
		cursor int
	}
	undoSteps := []step{
		{"one 2Two", 5},
		{"one Two", 4},
		{"oneTwo", 3},
	}
	for _, want := range undoSteps {
		e.Undo()
		if got := e.Text(); got != want.text {
			t.Fatalf("after undo: text = %q, want %q", got, want.text)
		}
		if got := e.Selection().Start.CodePointIndex; got != want.cursor {
			t.Fatalf("after undo to %q: cursor = %d, want %d", want.text, got, want.cursor)
		}
	}

	e.Redo()
	if got, want := e.Text(), "one Two"; got != want {
		t.Fatalf("after redo: text = %q, want %q", got, want)
	}
	if got := e.Selection().Start.CodePointIndex; got != 4 {
		t.Fatalf("after redo: cursor = %d, want 4", got)
	}

	e.InsertRune('X')
	if got, want := e.Text(), "one XTwo"; got != want {
		t.Fatalf("after inserting 'X' post-undo: text = %q, want %q", got, want)
	}

	before := e.Text()
	e.Redo()
	if got := e.Text(); got != before {
		t.Fatalf("redo after a fresh edit changed text to %q, want no-op (%q)", got, before)
	}

	e.Undo()
	if got, want := e.Text(), "one Two"; got != want {
		t.Fatalf("undo still works after the truncating edit: text = %q, want %q", got, want)
	}
}

// TestUpdateIdempotent is quantified invariant 5: calling Update twice in
// a row with no command between changes nothing the second time.
func TestUpdateIdempotent(t *testing.T) {
	e := newTestInput()
	e.SetText("hello there")

	if !e.Update() {
		t.Fatalf("first Update() reported no change after SetText")
	}
	if e.Update() {
		t.Fatalf("second consecutive Update() reported a change with nothing dirty")
	}

	boundsBefore := e.Bounds()
	cursorBefore := e.CursorVisualPosition()
	rectsBefore := e.SelectionRects()
	e.Update()
	if got := e.Bounds(); got != boundsBefore {
		t.Errorf("Bounds changed across a no-op Update: %v -> %v", boundsBefore, got)
	}
	if got := e.CursorVisualPosition(); got != cursorBefore {
		t.Errorf("CursorVisualPosition changed across a no-op Update: %v -> %v", cursorBefore, got)
	}
	if len(e.SelectionRects()) != len(rectsBefore) {
		t.Errorf("SelectionRects length changed across a no-op Update: %d -> %d", len(rectsBefore), len(e.SelectionRects()))
	}
}

// TestJournalRoundTrip is quantified invariant 6: N undos followed by N
// redos must restore the exact same text.
func TestJournalRoundTrip(t *testing.T) {
	e := newTestInput()
	e.SetText("")
	words := []string{"a", "b", "c", "d"}
	for _, w := range words {
		e.SetSelection(cursor.Collapsed(cursor.AtCodePoint(e.Length())))
		e.Insert(w)
	}
	final := e.Text()

	n := 4
	for i := 0; i < n; i++ {
		e.Undo()
	}
	for i := 0; i < n; i++ {
		e.Redo()
	}
	if got := e.Text(); got != final {
		t.Fatalf("after %d undos and %d redos: text = %q, want %q", n, n, got, final)
	}
}

// TestInsertErase exercises basic buffer editing and the sentinel's
// exclusion from Length/Text.
func TestInsertErase(t *testing.T) {
	e := newTestInput()
	e.SetText("hello")
	if got, want := e.Length(), 5; got != want {
		t.Fatalf("Length() = %d, want %d", got, want)
	}
	e.SetSelection(cursor.Selection{Start: cursor.AtCodePoint(1), End: cursor.AtCodePoint(4)})
	e.Erase()
	if got, want := e.Text(), "ho"; got != want {
		t.Fatalf("after erasing [1,4): text = %q, want %q", got, want)
	}
}

// TestBackspace exercises deleting in both directions around a collapsed
// caret.
func TestBackspace(t *testing.T) {
	e := newTestInput()
	e.SetText("abc")
	e.SetSelection(cursor.Collapsed(cursor.AtCodePoint(2)))
	e.Backspace(-1)
	if got, want := e.Text(), "ac"; got != want {
		t.Fatalf("backward backspace: text = %q, want %q", got, want)
	}
	if got := e.Selection().Start.CodePointIndex; got != 1 {
		t.Fatalf("backward backspace: cursor = %d, want 1", got)
	}

	e.SetSelection(cursor.Collapsed(cursor.AtCodePoint(0)))
	e.Backspace(1)
	if got, want := e.Text(), "c"; got != want {
		t.Fatalf("forward backspace: text = %q, want %q", got, want)
	}
}

// TestClassifyRuneBoundaries covers the Delineator classification that
// drives word/sub-word navigation.
func TestClassifyRuneBoundaries(t *testing.T) {
	cases := []struct {
		r    rune
		want Delineator
	}{
		{' ', DelineatorWhitespace},
		{'_', DelineatorUnderscore},
		{'.', DelineatorSymbol},
		{'A', DelineatorUppercase},
		{'a', DelineatorLowercase},
	}
	for _, c := range cases {
		if got := classifyRune(c.r); got != c.want {
			t.Errorf("classifyRune(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

// TestSelectWord checks that placing the cursor inside a word and
// calling SelectWord selects exactly that word.
func TestSelectWord(t *testing.T) {
	e := newTestInput()
	e.SetText("one two three")
	e.SetSelection(cursor.Collapsed(cursor.AtCodePoint(5))) // inside "two"
	e.SelectWord()

	first := e.Selection().First().CodePointIndex
	last := e.Selection().Last().CodePointIndex
	if got, want := e.Text()[first:last], "two"; got != want {
		t.Fatalf("SelectWord selected %q, want %q", got, want)
	}
}

// TestSetFontAlwaysDirties documents that SetFont cannot cheaply detect
// a no-op change (Face is not comparable) and always reshapes.
func TestSetFontAlwaysDirties(t *testing.T) {
	e := newTestInput()
	e.SetText("hi")
	e.Update()

	e.SetFont(gofont.Regular())
	if !e.Update() {
		t.Errorf("Update() after re-setting the same font reported no change, want a reshape")
	}
}
