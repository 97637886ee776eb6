package table

import "image/color"

// Report palette.
var (
	HeaderFill   = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
	HeaderBorder = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
	CellBorder   = color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
	StripeFill   = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	PlainFill    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	TextColor    = color.RGBA{0x00, 0x00, 0x00, 0xff}
	OutlineColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// OutlineWidth is the stroke width, in pixels, of the halo drawn behind
// body text.
const OutlineWidth = 1.0

// Cell is one styled, positioned cell. Coordinates are canvas pixels with
// the origin at the top-left corner.
type Cell struct {
	Row int // 0 is the header, body rows start at 1
	Col int

	X, Y, W, H float64

	Lines []string
	Align Align
	Bold  bool

	Fill    color.RGBA
	Border  color.RGBA
	Text    color.RGBA
	Outline color.RGBA
	// OutlineWidth is zero for cells drawn without a halo.
	OutlineWidth float64
}

// Grid is the complete drawing description of a table. It is built once by
// [Render] and only read afterwards.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell // header cells first, then body cells row by row
}

// Bounds returns the right and bottom edges of the table area. They can be
// smaller than the canvas when the columns are narrower than [MinCanvasPx].
func (g Grid) Bounds() (right, bottom float64) {
	for _, c := range g.Cells {
		right = max(right, c.X+c.W)
		bottom = max(bottom, c.Y+c.H)
	}
	return right, bottom
}

// Render positions and styles every cell of a laid-out table.
//
// The header row is tinted, bold and center aligned. Body rows alternate
// between a plain and a striped fill (stripe on even 1-based rows), use the
// owning column's alignment and draw text over a white halo. Heights are
// taken from geom as fractions of the canvas height.
func Render(cells [][][]string, geom Geometry, cols []ColumnSpec) Grid {
	w, h := float64(geom.Width), float64(geom.Height)
	xs := make([]float64, len(cols)+1)
	for j := range cols {
		xs[j+1] = xs[j] + geom.Fractions[j]*w
	}

	g := Grid{
		Width:  geom.Width,
		Height: geom.Height,
		Cells:  make([]Cell, 0, (len(cells)+1)*len(cols)),
	}

	hh := geom.HeaderFraction() * h
	for j, c := range cols {
		g.Cells = append(g.Cells, Cell{
			Row:    0,
			Col:    j,
			X:      xs[j],
			Y:      0,
			W:      xs[j+1] - xs[j],
			H:      hh,
			Lines:  []string{c.Title},
			Align:  AlignCenter,
			Bold:   true,
			Fill:   HeaderFill,
			Border: HeaderBorder,
			Text:   TextColor,
		})
	}

	y := hh
	for i, row := range cells {
		rh := geom.RowFraction(i) * h
		fill := PlainFill
		if (i+1)%2 == 0 {
			fill = StripeFill
		}
		for j, c := range cols {
			var lines []string
			if j < len(row) {
				lines = row[j]
			}
			g.Cells = append(g.Cells, Cell{
				Row:          i + 1,
				Col:          j,
				X:            xs[j],
				Y:            y,
				W:            xs[j+1] - xs[j],
				H:            rh,
				Lines:        lines,
				Align:        c.Align.Normalize(),
				Fill:         fill,
				Border:       CellBorder,
				Text:         TextColor,
				Outline:      OutlineColor,
				OutlineWidth: OutlineWidth,
			})
		}
		y += rh
	}
	return g
}
