// Package table lays out and styles small tabular reports for rasterization.
//
// # Overview
//
// A [Table] pairs an ordered list of [Row] values with an ordered list of
// [ColumnSpec] definitions. Rendering is a one-way pipeline:
//
//  1. [ComputeLayout]: wrap the first column, derive line counts, row
//     heights and canvas size ([Geometry])
//  2. [Render]: turn wrapped cells and geometry into an immutable [Grid] of
//     styled cell descriptors
//  3. sink.EncodePNG: rasterize the grid (in the [sink] subpackage)
//
// Every step is a pure function of its inputs. Nothing is cached between
// calls, so concurrent renders of different tables never interfere.
//
// # Layout constants
//
// The pixel constants ([BaseRowPx], [ExtraLinePx], [HeaderPx], [MinCanvasPx],
// [DefaultCharWidthPx], [DPI]) define the visual contract of a report.
// Changing any of them changes the output image.
//
// # Usage
//
//	t := table.Table{
//	    Columns: []table.ColumnSpec{
//	        {Title: "Nombre", DataKey: "name", WidthPx: 1000, Align: table.AlignLeft},
//	        {Title: "Estado", DataKey: "status", WidthPx: 350, Align: table.AlignCenter},
//	    },
//	    Rows: rows,
//	}
//	cells, geom, err := table.ComputeLayout(t)
//	grid := table.Render(cells, geom, t.Columns)
//	png, err := sink.EncodePNG(grid)
//
// [sink]: github.com/matzehuels/tablecast/pkg/table/sink
package table
