// SPDX-License-Identifier: Unlicense OR MIT

package font_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"textcore.dev/font"
)

func TestDecodeValidFont(t *testing.T) {
	face, err := font.Decode(goregular.TTF)
	if err != nil {
		t.Fatalf("Decode(goregular.TTF) failed: %v", err)
	}
	metrics := face.LineMetrics()
	if metrics.Ascent >= 0 {
		t.Errorf("Ascent = %v, want negative (y-up font units)", metrics.Ascent)
	}
	if metrics.Descent <= 0 {
		t.Errorf("Descent = %v, want positive", metrics.Descent)
	}
}

func TestDecodeInvalidFont(t *testing.T) {
	_, err := font.Decode([]byte("not a font"))
	if err == nil {
		t.Fatal("Decode of garbage bytes succeeded, want an error")
	}
}

func TestHasGlyph(t *testing.T) {
	face, err := font.Decode(goregular.TTF)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !face.HasGlyph([]rune("A")) {
		t.Error(`HasGlyph("A") = false, want true for a Latin text face`)
	}
	if face.HasGlyph([]rune{0xFFFE}) {
		t.Error("HasGlyph(noncharacter U+FFFE) = true, want false")
	}
}

func TestWithOptionsPreservesValidity(t *testing.T) {
	face, err := font.Decode(goregular.TTF)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	merged := face.WithOptions(nil, map[font.Tag]uint32{})
	if !merged.HasGlyph([]rune("A")) {
		t.Error("WithOptions with empty overrides lost the ability to shape 'A'")
	}
}
