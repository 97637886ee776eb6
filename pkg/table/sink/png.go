package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/fonts"
	"github.com/matzehuels/tablecast/pkg/table"
)

const (
	// DefaultPadding is 0.2 inch at table.DPI.
	DefaultPadding = 0.2 * table.DPI

	// DefaultFontSize gives an average advance close to
	// table.DefaultCharWidthPx with the Go Regular face.
	DefaultFontSize = 13.0

	DefaultCellPadding = 10.0

	// linePitch matches the per-line row growth so wrapped text fills the
	// extra height exactly.
	linePitch = table.ExtraLinePx

	borderWidth = 1.0
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	padding     float64
	fontSize    float64
	cellPadding float64

	regular font.Face
	bold    font.Face
}

// WithPadding sets the margin around the content (default 40px).
func WithPadding(px float64) PNGOption {
	return func(r *pngRenderer) { r.padding = max(0, px) }
}

// WithFontSize sets the font size in pixels (default 13).
func WithFontSize(px float64) PNGOption {
	return func(r *pngRenderer) {
		if px > 0 {
			r.fontSize = px
		}
	}
}

// WithCellPadding sets the inner padding of left and right aligned text.
func WithCellPadding(px float64) PNGOption {
	return func(r *pngRenderer) { r.cellPadding = max(0, px) }
}

// EncodePNG draws g and returns the encoded PNG bytes.
func EncodePNG(g table.Grid, opts ...PNGOption) ([]byte, error) {
	if len(g.Cells) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid has no cells")
	}

	r := pngRenderer{
		padding:     DefaultPadding,
		fontSize:    DefaultFontSize,
		cellPadding: DefaultCellPadding,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var err error
	if r.regular, err = fonts.Regular(r.fontSize); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load regular font")
	}
	defer r.regular.Close()
	if r.bold, err = fonts.Bold(r.fontSize); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load bold font")
	}
	defer r.bold.Close()

	return r.encode(g)
}

func (r *pngRenderer) encode(g table.Grid) ([]byte, error) {
	minX, minY, maxX, maxY := r.contentBounds(g)
	w := int(math.Ceil(maxX-minX+2*r.padding))
	h := int(math.Ceil(maxY-minY+2*r.padding))

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Translate(r.padding-minX, r.padding-minY)

	for _, c := range g.Cells {
		dc.DrawRectangle(c.X, c.Y, c.W, c.H)
		dc.SetColor(c.Fill)
		dc.Fill()
	}

	// Body borders first so the darker header borders stay on top.
	dc.SetLineWidth(borderWidth)
	for _, c := range g.Cells {
		if c.Row > 0 {
			strokeCell(dc, c)
		}
	}
	for _, c := range g.Cells {
		if c.Row == 0 {
			strokeCell(dc, c)
		}
	}

	for _, c := range g.Cells {
		r.drawText(dc, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func strokeCell(dc *gg.Context, c table.Cell) {
	dc.DrawRectangle(c.X, c.Y, c.W, c.H)
	dc.SetColor(c.Border)
	dc.Stroke()
}

func (r *pngRenderer) face(c table.Cell) font.Face {
	if c.Bold {
		return r.bold
	}
	return r.regular
}

// lineAnchor returns the anchor x and the horizontal anchor fraction for a
// line of text in c.
func (r *pngRenderer) lineAnchor(c table.Cell) (x, ax float64) {
	switch c.Align {
	case table.AlignCenter:
		return c.X + c.W/2, 0.5
	case table.AlignRight:
		return c.X + c.W - r.cellPadding, 1
	default:
		return c.X + r.cellPadding, 0
	}
}

// lineCenters returns the vertical center of each line, with the block of
// lines centered in the cell.
func lineCenters(c table.Cell) []float64 {
	n := len(c.Lines)
	top := c.Y + (c.H-float64(n*linePitch))/2
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = top + (float64(i)+0.5)*linePitch
	}
	return ys
}

func (r *pngRenderer) drawText(dc *gg.Context, c table.Cell) {
	if len(c.Lines) == 0 {
		return
	}
	dc.SetFontFace(r.face(c))
	x, ax := r.lineAnchor(c)

	for i, y := range lineCenters(c) {
		line := c.Lines[i]
		if line == "" {
			continue
		}
		if c.OutlineWidth > 0 {
			dc.SetColor(c.Outline)
			ow := c.OutlineWidth
			for _, dx := range []float64{-ow, 0, ow} {
				for _, dy := range []float64{-ow, 0, ow} {
					if dx != 0 || dy != 0 {
						dc.DrawStringAnchored(line, x+dx, y+dy, ax, 0.5)
					}
				}
			}
		}
		dc.SetColor(c.Text)
		dc.DrawStringAnchored(line, x, y, ax, 0.5)
	}
}

// contentBounds returns the box covering the table and all drawn text,
// including text that overflows its cell.
func (r *pngRenderer) contentBounds(g table.Grid) (minX, minY, maxX, maxY float64) {
	maxX, maxY = g.Bounds()
	for _, c := range g.Cells {
		if len(c.Lines) == 0 {
			continue
		}
		face := r.face(c)
		x, ax := r.lineAnchor(c)
		for i, y := range lineCenters(c) {
			lw := float64(font.MeasureString(face, c.Lines[i])) / 64
			left := x - ax*lw - c.OutlineWidth
			minX = min(minX, left)
			maxX = max(maxX, left+lw+2*c.OutlineWidth)
			minY = min(minY, y-linePitch/2)
			maxY = max(maxY, y+linePitch/2)
		}
	}
	return minX, minY, maxX, maxY
}
