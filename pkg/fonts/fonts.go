// Package fonts provides the font faces used to rasterize reports.
//
// The Go font family ships inside golang.org/x/image, so the faces are
// available without any files on the host.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Parsed fonts (computed once on first access).
var (
	regular, bold *truetype.Font
	parseErr      error
	parseOnce     sync.Once
)

func load() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = truetype.Parse(gobold.TTF)
	})
	return parseErr
}

// Regular returns a Go Regular face of the given pixel size.
func Regular(sizePx float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return newFace(regular, sizePx), nil
}

// Bold returns a Go Bold face of the given pixel size.
func Bold(sizePx float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return newFace(bold, sizePx), nil
}

// newFace builds a face at 72 DPI so that Size is expressed in pixels.
func newFace(f *truetype.Font, sizePx float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
