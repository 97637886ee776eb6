package ingest

import (
	"strings"
	"time"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// DisplayLayout is the DD/MM/YYYY HH:MM pattern used in reports.
const DisplayLayout = "02/01/2006 15:04"

// isoLayouts are the ISO-8601 forms accepted by FormatDate: extended and
// basic notation, T or space separator, hour-only through second precision
// and Z, ±hh, ±hhmm or ±hh:mm offsets. Fractional seconds are accepted
// after any seconds field.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04Z07",
	"2006-01-02T15:04",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15Z07",
	"2006-01-02T15",
	"2006-01-02",

	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405Z07",
	"20060102T150405",
	"20060102T1504Z0700",
	"20060102T1504",
	"20060102T15",
	"20060102",
}

// ParseDate parses an ISO-8601 timestamp, tolerating surrounding whitespace
// and quote characters. Timestamps without an offset are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = cleanDate(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeParse, "unrecognized timestamp %q", s)
}

// FormatDate reformats an ISO-8601 timestamp as [DisplayLayout], keeping
// the timestamp's own offset. Blank input yields "".
func FormatDate(s string) (string, error) {
	if cleanDate(s) == "" {
		return "", nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayLayout), nil
}

func cleanDate(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
