package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/table"
)

// Report describes the rendered table and the message that carries it.
type Report struct {
	Columns  []table.ColumnSpec `toml:"columns"`
	Caption  string             `toml:"caption"`
	Link     string             `toml:"link"`
	Filename string             `toml:"filename"`
	DateKeys []string           `toml:"date_keys"`
}

// DefaultReport returns the pending-verifications report.
func DefaultReport() Report {
	return Report{
		Columns: []table.ColumnSpec{
			{Title: "Nombre", DataKey: "name", WidthPx: 1000, Align: table.AlignLeft},
			{Title: "Estado", DataKey: "status", WidthPx: 350, Align: table.AlignCenter},
			{Title: "Fecha", DataKey: "date", WidthPx: 450, Align: table.AlignRight},
		},
		Caption:  "Total de verificaciones pendientes",
		Link:     "https://verification.open.uchile.cl/interface",
		Filename: "tabla_alumnos_por_verificar.png",
		DateKeys: []string{"date"},
	}
}

// LoadReport reads a TOML report file. Keys absent from the file keep their
// [DefaultReport] values; a columns table replaces the default columns.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read report file")
	}
	return ParseReport(data)
}

// ParseReport decodes TOML report data over [DefaultReport] and validates it.
func ParseReport(data []byte) (Report, error) {
	var file Report
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse report file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Report{}, errors.New(errors.ErrCodeInvalidConfig, "unknown report key %q", undecoded[0].String())
	}

	r := DefaultReport()
	if md.IsDefined("columns") {
		r.Columns = file.Columns
	}
	if md.IsDefined("caption") {
		r.Caption = file.Caption
	}
	if md.IsDefined("link") {
		r.Link = file.Link
	}
	if md.IsDefined("filename") {
		r.Filename = file.Filename
	}
	if md.IsDefined("date_keys") {
		r.DateKeys = file.DateKeys
	}

	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Validate checks columns, filename and that every date key names a column.
func (r Report) Validate() error {
	if err := table.ValidateColumns(r.Columns); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "report columns")
	}
	if err := errors.ValidateFilename(r.Filename); err != nil {
		return err
	}
	keys := r.Keys()
	for _, k := range r.DateKeys {
		if !slices.Contains(keys, k) {
			return errors.New(errors.ErrCodeInvalidConfig, "date key %q is not a column", k)
		}
	}
	return nil
}

// Keys returns the column data keys in display order.
func (r Report) Keys() []string { return table.Keys(r.Columns) }

// Message formats the caption posted with the image for n rows.
func (r Report) Message(n int) string {
	msg := fmt.Sprintf("%s: %d", r.Caption, n)
	if r.Link != "" {
		msg += "\n" + r.Link
	}
	return msg
}
