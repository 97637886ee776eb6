// Package pkg provides the libraries behind tablecast, which turns a small
// query result into a styled PNG table and posts it to a chat channel.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [table] - Core layout and rendering (wrap, layout, cell grid, PNG sink)
//  2. [ingest] - Adapting raw rows to table rows and normalizing dates
//  3. [integrations] - External API clients (Metabase, Discord)
//  4. [pipeline] - Orchestration (fetch → render → deliver)
//
// Supporting packages: [config] (environment and report definitions),
// [errors] (coded errors), [httputil] (retry with backoff), [fonts]
// (embedded Go fonts), [observability] (stage and HTTP hooks) and
// [buildinfo] (version stamping).
//
// # Architecture
//
//	Metabase card query
//	         ↓
//	    [integrations/metabase] (authenticated fetch with retry)
//	         ↓
//	    [ingest] (pad rows, format dates)
//	         ↓
//	    [table] (wrap → layout → grid)
//	         ↓
//	    [table/sink] (PNG)
//	         ↓
//	    [integrations/discord] (multipart webhook post)
//
// # Quick Start
//
// Render rows without any network access:
//
//	import (
//	    "github.com/matzehuels/tablecast/pkg/table"
//	    "github.com/matzehuels/tablecast/pkg/table/sink"
//	)
//
//	t := table.Table{
//	    Columns: []table.ColumnSpec{
//	        {Title: "Nombre", DataKey: "name", WidthPx: 1000, Align: table.AlignLeft},
//	        {Title: "Fecha", DataKey: "date", WidthPx: 450, Align: table.AlignRight},
//	    },
//	    Rows: []table.Row{{"name": "Ana", "date": "01/03/2024 10:30"}},
//	}
//	cells, geom, err := table.ComputeLayout(t)
//	if err != nil {
//	    return err
//	}
//	png, err := sink.EncodePNG(table.Render(cells, geom, t.Columns))
package pkg
