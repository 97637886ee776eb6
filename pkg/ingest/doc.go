// Package ingest adapts raw upstream records into table rows.
//
// Upstream queries return positional records whose length does not always
// match the report's columns. [Adapt] maps them onto column data keys:
//
//   - Short records are padded with empty strings
//   - Surplus fields are ignored
//   - Date columns are normalized with [FormatDate]
//
// Row order is preserved. A malformed timestamp is a data-quality bug, so it
// fails the whole adaptation with a PARSE_ERROR instead of being skipped.
package ingest
