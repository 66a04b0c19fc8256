// SPDX-License-Identifier: Unlicense OR MIT

// Package gofont decodes the Go fonts (https://blog.golang.org/go-fonts)
// into font.Face values, for use as test and example fixtures elsewhere
// in this module.
package gofont

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"textcore.dev/font"
)

var (
	regularOnce sync.Once
	regular     font.Face
	italicOnce  sync.Once
	italic      font.Face
	boldOnce    sync.Once
	bold        font.Face
	boldItOnce  sync.Once
	boldItalic  font.Face
	monoOnce    sync.Once
	mono        font.Face
)

func decode(ttf []byte) font.Face {
	f, err := font.Decode(ttf)
	if err != nil {
		panic(fmt.Sprintf("gofont: failed to decode embedded font: %v", err))
	}
	return f
}

// Regular returns the upright Go Regular face.
func Regular() font.Face {
	regularOnce.Do(func() { regular = decode(goregular.TTF) })
	return regular
}

// Italic returns the Go Italic face.
func Italic() font.Face {
	italicOnce.Do(func() { italic = decode(goitalic.TTF) })
	return italic
}

// Bold returns the Go Bold face.
func Bold() font.Face {
	boldOnce.Do(func() { bold = decode(gobold.TTF) })
	return bold
}

// BoldItalic returns the Go Bold Italic face.
func BoldItalic() font.Face {
	boldItOnce.Do(func() { boldItalic = decode(gobolditalic.TTF) })
	return boldItalic
}

// Mono returns the Go Mono face.
func Mono() font.Face {
	monoOnce.Do(func() { mono = decode(gomono.TTF) })
	return mono
}
