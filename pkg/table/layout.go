package table

import (
	"errors"
	"math"
)

// Layout constants. Together they fix the look of a rendered report.
const (
	// DefaultCharWidthPx approximates the average glyph advance, in pixels,
	// of the body font. It converts a column width into a wrap budget.
	DefaultCharWidthPx = 7.5

	// charSlack is subtracted from every wrap budget to leave room for the
	// cell's inner padding.
	charSlack = 2

	BaseRowPx   = 60   // height of a single-line body row
	ExtraLinePx = 16   // added height per wrapped line beyond the first
	HeaderPx    = 60   // header row height, independent of its text
	MinCanvasPx = 1000 // lower bound for the canvas width
	DPI         = 200  // pixels per inch used to derive physical size
)

// ErrEmptyTable is returned by [ComputeLayout] for a table with no rows.
// Callers treat it as "nothing to report", not as a failure.
var ErrEmptyTable = errors.New("table has no rows")

// Geometry holds every pixel measurement needed to place a table.
type Geometry struct {
	CharBudgets  []int     // wrap budget per column
	Fractions    []float64 // column width / canvas width
	LineCounts   []int     // wrapped line count per row (>= 1)
	RowHeights   []int     // pixel height per row
	HeaderHeight int       // pixel height of the header row
	Width        int       // canvas width in pixels
	Height       int       // canvas height in pixels
}

// Inches returns the physical canvas size at [DPI].
func (g Geometry) Inches() (w, h float64) {
	return float64(g.Width) / DPI, float64(g.Height) / DPI
}

// HeaderFraction returns the header height as a fraction of canvas height.
func (g Geometry) HeaderFraction() float64 {
	return fraction(g.HeaderHeight, g.Height)
}

// RowFraction returns the height of row i as a fraction of canvas height.
func (g Geometry) RowFraction(i int) float64 {
	return fraction(g.RowHeights[i], g.Height)
}

func fraction(px, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(px) / float64(total)
}

// LayoutOption configures [ComputeLayout].
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	charWidth float64
}

// WithCharWidth overrides [DefaultCharWidthPx]. Use it when rendering with a
// font whose average advance differs from the default face. Non-positive
// values are ignored.
func WithCharWidth(px float64) LayoutOption {
	return func(c *layoutConfig) {
		if px > 0 {
			c.charWidth = px
		}
	}
}

// CharsForWidth converts a pixel width into a wrap budget:
// max(0, floor(px / charWidth) - 2).
func CharsForWidth(px int, charWidth float64) int {
	if charWidth <= 0 {
		charWidth = DefaultCharWidthPx
	}
	return max(0, int(math.Floor(float64(px)/charWidth))-charSlack)
}

// RowHeight returns the pixel height of a row holding lines wrapped lines.
func RowHeight(lines int) int {
	return BaseRowPx + (max(1, lines)-1)*ExtraLinePx
}

// CanvasWidth returns max([MinCanvasPx], sum of column widths).
func CanvasWidth(cols []ColumnSpec) int {
	var sum int
	for _, c := range cols {
		sum += c.WidthPx
	}
	return max(MinCanvasPx, sum)
}

// ComputeLayout wraps cell text and measures the table.
//
// The returned cells are indexed [row][column] and hold the lines drawn in
// that cell. Only column 0 is wrapped; other columns hold their value as a
// single line. Missing row keys read as empty strings.
//
// A table without rows yields [ErrEmptyTable] and no geometry. Invalid
// columns yield an INVALID_INPUT error.
func ComputeLayout(t Table, opts ...LayoutOption) ([][][]string, Geometry, error) {
	if err := t.Validate(); err != nil {
		return nil, Geometry{}, err
	}
	if t.Empty() {
		return nil, Geometry{}, ErrEmptyTable
	}

	cfg := layoutConfig{charWidth: DefaultCharWidthPx}
	for _, opt := range opts {
		opt(&cfg)
	}

	nCols := len(t.Columns)
	geom := Geometry{
		CharBudgets:  make([]int, nCols),
		Fractions:    make([]float64, nCols),
		LineCounts:   make([]int, len(t.Rows)),
		RowHeights:   make([]int, len(t.Rows)),
		HeaderHeight: HeaderPx,
		Width:        CanvasWidth(t.Columns),
	}
	for j, c := range t.Columns {
		geom.CharBudgets[j] = CharsForWidth(c.WidthPx, cfg.charWidth)
		geom.Fractions[j] = float64(c.WidthPx) / float64(geom.Width)
	}

	cells := make([][][]string, len(t.Rows))
	geom.Height = geom.HeaderHeight
	for i, row := range t.Rows {
		cells[i] = make([][]string, nCols)
		lines := 1
		for j, c := range t.Columns {
			v := Lookup(row, c.DataKey)
			if j == 0 {
				cells[i][j] = Wrap(v, geom.CharBudgets[j])
			} else {
				cells[i][j] = []string{v}
			}
			lines = max(lines, len(cells[i][j]))
		}
		geom.LineCounts[i] = lines
		geom.RowHeights[i] = RowHeight(lines)
		geom.Height += geom.RowHeights[i]
	}
	return cells, geom, nil
}
