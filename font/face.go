// SPDX-License-Identifier: Unlicense OR MIT

// Package font provides the Font Handle: an opaque, reference-shareable
// wrapper over a decoded font face exposing metrics, variable-axis and
// OpenType-feature queries, glyph outlines, and the shaping entrypoint.
package font

import (
	"errors"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"textcore.dev/font/opentype"
)

// ErrFormatInvalid is returned by Decode when the supplied bytes cannot be
// parsed as a font.
var ErrFormatInvalid = errors.New("font: invalid format")

// Tag is a packed four-byte OpenType tag, e.g. for an axis or a feature.
type Tag = gotext.Tag

// GlyphID is a font-local glyph identifier.
type GlyphID = gotext.GID

// LineMetrics holds ascent/descent normalized to one em. Ascent is
// negative.
type LineMetrics struct {
	Ascent  float32
	Descent float32
}

// Axis describes one variable-font axis.
type Axis struct {
	Tag       Tag
	Min, Def, Max float32
}

// Feature describes one OpenType feature and the value the face currently
// applies for it.
type Feature struct {
	Tag   Tag
	Value uint32
}

// FeatureAuto is the sentinel returned by Face.FeatureValue when the
// caller has not overridden a feature.
const FeatureAuto uint32 = 0xFFFFFFFF

// PathSink receives a glyph outline. Segments arrive in font (y-up)
// space; callers that need y-down layout space negate Y once, at the
// point they consume the sink (see SPEC_FULL.md §9, "keep the negation in
// exactly one place").
type PathSink interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(c1x, c1y, c2x, c2y, x, y float32)
	Close()
}

// Face is the Font Handle of SPEC_FULL.md §4.A: an opaque, cheaply
// shared handle over a decoded font, with variable-axis coordinates and
// OpenType feature overrides layered on top of an underlying face.
//
// A Face is a plain value; copying it is cheap and safe, matching the
// spec's "font handles are reference-counted and freely shared" rule —
// the underlying *gotext.Face is never mutated by two Faces that share
// it, only read.
type Face struct {
	raw       *gotext.Face
	variations map[Tag]float32
	features   map[Tag]uint32
}

// Decode parses a font file image. It reports ErrFormatInvalid (wrapped)
// on failure, matching the FontFormatInvalid taxonomy of SPEC_FULL §7.
func Decode(src []byte) (Face, error) {
	of, err := opentype.Parse(src)
	if err != nil {
		return Face{}, fmt.Errorf("%w: %v", ErrFormatInvalid, err)
	}
	raw := of.Face()
	return Face{raw: &raw}, nil
}

// valid reports whether f wraps a real decoded face.
func (f Face) valid() bool { return f.raw != nil }

// LineMetrics returns the face's intrinsic ascent/descent, normalized to
// one em (multiply by point size for layout units). Ascent is negative.
func (f Face) LineMetrics() LineMetrics {
	if !f.valid() {
		return LineMetrics{}
	}
	upem := float32(f.raw.Upem())
	if upem == 0 {
		return LineMetrics{}
	}
	extents, ok := f.raw.FontHExtents()
	if !ok {
		// Fall back to a conventional 0.8/0.2 split of the em box; every
		// production font exposes hhea/OS2 metrics, so this only matters
		// for deliberately minimal test fixtures.
		return LineMetrics{Ascent: -0.8, Descent: 0.2}
	}
	return LineMetrics{
		Ascent:  -float32(extents.Ascender) / upem,
		Descent: -float32(extents.Descender) / upem,
	}
}

// AxisCount returns the number of variable-font axes this face exposes.
//
// go-text/typesetting does not expose a public fvar-axis enumeration in
// the version this module targets; faces without an inventory report
// zero axes rather than fabricating one (see DESIGN.md Open Question 4).
func (f Face) AxisCount() int { return 0 }

// Axis returns the i'th variable axis. Panics if i is out of range;
// callers must check AxisCount first, matching array-index contracts
// elsewhere in this module.
func (f Face) Axis(i int) Axis { panic("font: axis index out of range") }

// AxisValue returns the coordinate currently applied for tag, or the
// axis's default if unset.
func (f Face) AxisValue(tag Tag) float32 {
	if v, ok := f.variations[tag]; ok {
		return v
	}
	for i := 0; i < f.AxisCount(); i++ {
		if a := f.Axis(i); a.Tag == tag {
			return a.Def
		}
	}
	return 0
}

// Features reports the set of OpenType feature tags this face declares
// support for. Like AxisCount, this is best-effort: go-text/typesetting's
// decoded Face does not surface a feature-tag inventory in this module's
// target version, so Features always returns nil. Overrides set through
// WithOptions are stored and reported back by FeatureValue; the shaper
// does not pass them on, so they do not change shaped output.
func (f Face) Features() []Tag { return nil }

// FeatureValue returns the override value for tag, or FeatureAuto.
func (f Face) FeatureValue(tag Tag) uint32 {
	if v, ok := f.features[tag]; ok {
		return v
	}
	return FeatureAuto
}

// WithOptions returns a new Face that merges coords and features over
// f's current settings. The returned Face shares f's underlying decoded
// face (a cheap "sub-font", per spec).
func (f Face) WithOptions(coords map[Tag]float32, features map[Tag]uint32) Face {
	if !f.valid() {
		return f
	}
	merged := Face{raw: f.raw}
	merged.variations = mergeFloats(f.variations, coords)
	merged.features = mergeUints(f.features, features)
	if len(merged.variations) > 0 {
		vars := make([]gotext.Variation, 0, len(merged.variations))
		for tag, v := range merged.variations {
			vars = append(vars, gotext.Variation{Tag: tag, Value: v})
		}
		sub := gotext.NewFace(f.raw.Font)
		sub.SetVariations(vars)
		merged.raw = sub
	}
	return merged
}

func mergeFloats(base, over map[Tag]float32) map[Tag]float32 {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[Tag]float32, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func mergeUints(base, over map[Tag]uint32) map[Tag]uint32 {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[Tag]uint32, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// HasGlyph reports whether at least the first codepoint of text maps to
// a non-zero glyph. Used by the shaper for fallback selection.
func (f Face) HasGlyph(text []rune) bool {
	if !f.valid() || len(text) == 0 {
		return false
	}
	gid, ok := f.raw.NominalGlyph(text[0])
	return ok && gid != 0
}

// Path writes the outline of glyph at one em, origin at baseline, into
// sink. It is a no-op (not an error) for glyphs with no outline data
// (space, bitmap-only glyphs, invalid ids).
func (f Face) Path(glyph GlyphID, sink PathSink) {
	if !f.valid() {
		return
	}
	upem := float32(f.raw.Upem())
	if upem == 0 {
		upem = 1000
	}
	data := f.raw.GlyphData(glyph)
	outline, ok := data.(gotext.GlyphOutline)
	if !ok {
		return
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			sink.MoveTo(seg.Args[0].X/upem, seg.Args[0].Y/upem)
		case ot.SegmentOpLineTo:
			sink.LineTo(seg.Args[0].X/upem, seg.Args[0].Y/upem)
		case ot.SegmentOpQuadTo:
			sink.QuadTo(
				seg.Args[0].X/upem, seg.Args[0].Y/upem,
				seg.Args[1].X/upem, seg.Args[1].Y/upem,
			)
		case ot.SegmentOpCubeTo:
			sink.CubeTo(
				seg.Args[0].X/upem, seg.Args[0].Y/upem,
				seg.Args[1].X/upem, seg.Args[1].Y/upem,
				seg.Args[2].X/upem, seg.Args[2].Y/upem,
			)
		}
	}
	sink.Close()
}

// Advance returns the glyph's horizontal advance in font units divided
// by upem (i.e. in one-em units, like LineMetrics); multiply by point
// size for layout units.
func (f Face) Advance(glyph GlyphID) float32 {
	if !f.valid() {
		return 0
	}
	upem := float32(f.raw.Upem())
	if upem == 0 {
		return 0
	}
	return float32(f.raw.HorizontalAdvance(glyph)) / upem
}

// Raw exposes the underlying go-text/typesetting face for the shaper
// package, which needs it to drive shaping.HarfbuzzShaper directly. Not
// part of the spec's Font Handle capability set; an internal seam
// between this package and textcore.dev/text.
func (f Face) Raw() (*gotext.Face, bool) {
	return f.raw, f.valid()
}
