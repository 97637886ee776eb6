// Package metabase runs a saved Metabase card query and returns its rows.
//
// The card endpoint (POST /api/card/:id/query) answers with a dataset whose
// rows are positional arrays:
//
//	{"data": {"rows": [["Ana", "Pendiente", "2024-03-01T10:30:00"]]}}
//
// [Client.Fetch] converts every value to its display string. Rows are
// returned exactly as ordered by the query.
package metabase
