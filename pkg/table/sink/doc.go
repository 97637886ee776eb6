// Package sink rasterizes table grids.
//
// # Overview
//
// A "sink" transforms a styled [table.Grid] into a final output format. The
// only format is PNG, drawn with fogleman/gg using the Go font family.
//
// Basic usage:
//
//	png, err := sink.EncodePNG(grid)
//
// The image is cropped to the table plus any text that overflows its cells
// (long unbreakable words), then surrounded by a fixed padding of 0.2 inch
// at [table.DPI]. The background outside the table is white.
//
// # PNG Options
//
//   - [WithPadding]: Margin around the content in pixels
//   - [WithFontSize]: Body and header font size in pixels
//   - [WithCellPadding]: Inner horizontal padding of left/right aligned text
package sink
