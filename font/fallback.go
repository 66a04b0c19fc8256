// SPDX-License-Identifier: Unlicense OR MIT

package font

// FallbackFunc selects a substitute Face when a run's primary font fails
// to produce a glyph for missing, the first codepoint of the span that
// had no glyph. The shaper calls it at most once per sub-run, always with
// fallbackIndex 0. parent is the font the caller originally requested,
// in case the fallback wants to match its style.
//
// Returning false as the second result means "no fallback available";
// the shaper keeps the tofu (zero-width missing glyphs) in that case.
type FallbackFunc func(missing rune, fallbackIndex int, parent Face) (Face, bool)

// Fallback is the process-wide fallback hook described by SPEC_FULL.md
// §4.A/§5: a single mutable variable, not synchronized, set once at
// startup before any shaping happens. There is deliberately no mutex
// here, matching the spec's "setting it is not synchronized" contract.
var Fallback FallbackFunc
