package ingest

import (
	"fmt"
	"slices"

	"github.com/matzehuels/tablecast/pkg/table"
)

// Pad returns record extended with empty strings to n fields. Records that
// are already long enough are returned unchanged.
func Pad(record []string, n int) []string {
	if len(record) >= n {
		return record
	}
	padded := make([]string, n)
	copy(padded, record)
	return padded
}

// Adapt maps positional records onto keys and normalizes the values of
// dateKeys with [FormatDate]. The result has exactly one row per record and
// every row holds every key.
func Adapt(records [][]string, keys []string, dateKeys ...string) ([]table.Row, error) {
	rows := make([]table.Row, 0, len(records))
	for i, rec := range records {
		rec = Pad(rec, len(keys))
		row := make(table.Row, len(keys))
		for j, k := range keys {
			row[k] = rec[j]
		}
		for _, k := range dateKeys {
			if !slices.Contains(keys, k) {
				continue
			}
			v, err := FormatDate(row[k])
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i, k, err)
			}
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
