package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/table"
)

func TestDefaultReport(t *testing.T) {
	r := DefaultReport()
	if err := r.Validate(); err != nil {
		t.Fatalf("DefaultReport().Validate() error: %v", err)
	}
	if got, want := r.Keys(), []string{"name", "status", "date"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestReportMessage(t *testing.T) {
	r := DefaultReport()
	want := "Total de verificaciones pendientes: 7\nhttps://verification.open.uchile.cl/interface"
	if got := r.Message(7); got != want {
		t.Errorf("Message(7) = %q, want %q", got, want)
	}

	r.Link = ""
	if got := r.Message(1); got != "Total de verificaciones pendientes: 1" {
		t.Errorf("Message without link = %q", got)
	}
}

func TestParseReport(t *testing.T) {
	data := []byte(`
caption = "Pending"
filename = "pending.png"
date_keys = []

[[columns]]
title = "Who"
data_key = "who"
width = 600

[[columns]]
title = "When"
data_key = "when"
width = 300
align = "right"
`)
	r, err := ParseReport(data)
	if err != nil {
		t.Fatalf("ParseReport() error: %v", err)
	}

	wantCols := []table.ColumnSpec{
		{Title: "Who", DataKey: "who", WidthPx: 600},
		{Title: "When", DataKey: "when", WidthPx: 300, Align: table.AlignRight},
	}
	if !reflect.DeepEqual(r.Columns, wantCols) {
		t.Errorf("Columns = %+v, want %+v", r.Columns, wantCols)
	}
	if r.Caption != "Pending" || r.Filename != "pending.png" {
		t.Errorf("Caption/Filename = %q/%q", r.Caption, r.Filename)
	}
	if r.Link != DefaultReport().Link {
		t.Errorf("Link = %q, want default", r.Link)
	}
	if len(r.DateKeys) != 0 {
		t.Errorf("DateKeys = %v, want none", r.DateKeys)
	}
}

func TestParseReportKeepsDefaults(t *testing.T) {
	r, err := ParseReport([]byte(`caption = "Solo"`))
	if err != nil {
		t.Fatalf("ParseReport() error: %v", err)
	}
	want := DefaultReport()
	want.Caption = "Solo"
	if !reflect.DeepEqual(r, want) {
		t.Errorf("ParseReport() = %+v, want %+v", r, want)
	}
}

func TestParseReportErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `caption = `},
		{"unknown key", `colour = "red"`},
		{"zero width", "[[columns]]\ntitle = \"A\"\ndata_key = \"a\"\nwidth = 0"},
		{"no columns", `columns = []`},
		{"bad filename", `filename = "report.jpg"`},
		{"unknown date key", `date_keys = ["created"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReport([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("ParseReport() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")
	if err := os.WriteFile(path, []byte(`link = "https://example.com"`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport() error: %v", err)
	}
	if r.Link != "https://example.com" {
		t.Errorf("Link = %q", r.Link)
	}

	if _, err := LoadReport(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LoadReport(missing) error = %v, want INVALID_CONFIG", err)
	}
}
