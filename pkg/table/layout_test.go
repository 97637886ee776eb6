package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tcerrors "github.com/matzehuels/tablecast/pkg/errors"
)

func verificationColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Nombre", DataKey: "name", WidthPx: 1000, Align: AlignLeft},
		{Title: "Estado", DataKey: "status", WidthPx: 350, Align: AlignCenter},
		{Title: "Fecha", DataKey: "date", WidthPx: 450, Align: AlignRight},
	}
}

func TestCharsForWidth(t *testing.T) {
	tests := []struct {
		px        int
		charWidth float64
		want      int
	}{
		{1000, DefaultCharWidthPx, 131},
		{350, DefaultCharWidthPx, 44},
		{450, DefaultCharWidthPx, 58},
		{15, DefaultCharWidthPx, 0},
		{1, DefaultCharWidthPx, 0},
		{0, DefaultCharWidthPx, 0},
		{1000, 10, 98},
		{1000, 0, 131},
	}

	for _, tt := range tests {
		if got := CharsForWidth(tt.px, tt.charWidth); got != tt.want {
			t.Errorf("CharsForWidth(%d, %v) = %d, want %d", tt.px, tt.charWidth, got, tt.want)
		}
	}
}

func TestCanvasWidth(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		want   int
	}{
		{"below floor", []int{200, 300}, 1000},
		{"at floor", []int{500, 500}, 1000},
		{"above floor", []int{1000, 350, 450}, 1800},
		{"single", []int{1}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := make([]ColumnSpec, len(tt.widths))
			for i, w := range tt.widths {
				cols[i] = ColumnSpec{DataKey: "k", WidthPx: w}
			}
			if got := CanvasWidth(cols); got != tt.want {
				t.Errorf("CanvasWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeLayoutVerificationExample(t *testing.T) {
	tbl := Table{
		Columns: verificationColumns(),
		Rows:    []Row{{"name": "Ana", "status": "Pendiente", "date": "01/03/2024 10:30"}},
	}

	cells, geom, err := ComputeLayout(tbl)
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	if geom.CharBudgets[0] != 131 {
		t.Errorf("name budget = %d, want 131", geom.CharBudgets[0])
	}
	if !reflect.DeepEqual(cells[0][0], []string{"Ana"}) {
		t.Errorf("name cell = %q, want [Ana]", cells[0][0])
	}
	if geom.LineCounts[0] != 1 {
		t.Errorf("line count = %d, want 1", geom.LineCounts[0])
	}
	if geom.RowHeights[0] != 60 {
		t.Errorf("row height = %d, want 60", geom.RowHeights[0])
	}
	if geom.Width != 1800 {
		t.Errorf("canvas width = %d, want 1800", geom.Width)
	}
	if geom.Height != 120 {
		t.Errorf("canvas height = %d, want 120", geom.Height)
	}
	if geom.HeaderHeight != HeaderPx {
		t.Errorf("header height = %d, want %d", geom.HeaderHeight, HeaderPx)
	}

	wantFracs := []float64{1000.0 / 1800, 350.0 / 1800, 450.0 / 1800}
	if !reflect.DeepEqual(geom.Fractions, wantFracs) {
		t.Errorf("fractions = %v, want %v", geom.Fractions, wantFracs)
	}

	w, h := geom.Inches()
	if w != 9 || h != 0.6 {
		t.Errorf("Inches() = %v x %v, want 9 x 0.6", w, h)
	}
}

func TestComputeLayoutWrapsOnlyFirstColumn(t *testing.T) {
	cols := []ColumnSpec{
		{Title: "Nombre", DataKey: "name", WidthPx: 90, Align: AlignLeft}, // budget 10
		{Title: "Nota", DataKey: "note", WidthPx: 90, Align: AlignLeft},
	}
	long := "alpha beta gamma delta"
	tbl := Table{Columns: cols, Rows: []Row{{"name": long, "note": long}}}

	cells, geom, err := ComputeLayout(tbl)
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if got := cells[0][0]; !reflect.DeepEqual(got, []string{"alpha beta", "gamma", "delta"}) {
		t.Errorf("wrapped cell = %q", got)
	}
	if got := cells[0][1]; !reflect.DeepEqual(got, []string{long}) {
		t.Errorf("unwrapped cell = %q, want value as-is", got)
	}
	if geom.LineCounts[0] != 3 {
		t.Errorf("line count = %d, want 3", geom.LineCounts[0])
	}
	if geom.RowHeights[0] != BaseRowPx+2*ExtraLinePx {
		t.Errorf("row height = %d, want %d", geom.RowHeights[0], BaseRowPx+2*ExtraLinePx)
	}
	if geom.Height != HeaderPx+BaseRowPx+2*ExtraLinePx {
		t.Errorf("canvas height = %d", geom.Height)
	}
}

func TestComputeLayoutRowHeightMonotonic(t *testing.T) {
	cols := []ColumnSpec{{Title: "Nombre", DataKey: "name", WidthPx: 60}} // budget 6
	var rows []Row
	for n := 1; n <= 6; n++ {
		rows = append(rows, Row{"name": strings.TrimSpace(strings.Repeat("word ", n))})
	}

	_, geom, err := ComputeLayout(Table{Columns: cols, Rows: rows})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	for a := range rows {
		for b := range rows {
			la, lb := geom.LineCounts[a], geom.LineCounts[b]
			ha, hb := geom.RowHeights[a], geom.RowHeights[b]
			switch {
			case la < lb && ha >= hb:
				t.Errorf("rows %d,%d: lines %d<%d but heights %d>=%d", a, b, la, lb, ha, hb)
			case la == lb && ha != hb:
				t.Errorf("rows %d,%d: equal lines %d but heights %d!=%d", a, b, la, ha, hb)
			}
		}
	}
}

func TestComputeLayoutDegenerate(t *testing.T) {
	t.Run("all empty row", func(t *testing.T) {
		tbl := Table{Columns: verificationColumns(), Rows: []Row{{}}}
		cells, geom, err := ComputeLayout(tbl)
		if err != nil {
			t.Fatalf("ComputeLayout() error: %v", err)
		}
		if geom.RowHeights[0] != BaseRowPx {
			t.Errorf("row height = %d, want %d", geom.RowHeights[0], BaseRowPx)
		}
		if cells[0][0] != nil {
			t.Errorf("empty name cell = %q, want nil", cells[0][0])
		}
		if !reflect.DeepEqual(cells[0][1], []string{""}) {
			t.Errorf("missing key cell = %q, want empty string", cells[0][1])
		}
	})

	t.Run("zero budget", func(t *testing.T) {
		cols := []ColumnSpec{
			{Title: "Nombre", DataKey: "name", WidthPx: 10},
			{Title: "Estado", DataKey: "status", WidthPx: 100},
		}
		tbl := Table{Columns: cols, Rows: []Row{{"name": "Ana"}, {"name": "Beatriz Soto"}}}
		cells, geom, err := ComputeLayout(tbl)
		if err != nil {
			t.Fatalf("ComputeLayout() error: %v", err)
		}
		for i := range tbl.Rows {
			if cells[i][0] != nil {
				t.Errorf("row %d: name cell = %q, want blank", i, cells[i][0])
			}
			if geom.RowHeights[i] != BaseRowPx {
				t.Errorf("row %d: height = %d, want %d", i, geom.RowHeights[i], BaseRowPx)
			}
		}
	})
}

func TestComputeLayoutEmptyTable(t *testing.T) {
	cells, geom, err := ComputeLayout(Table{Columns: verificationColumns()})
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("ComputeLayout() error = %v, want ErrEmptyTable", err)
	}
	if cells != nil || !reflect.DeepEqual(geom, Geometry{}) {
		t.Error("empty table should produce no geometry")
	}
}

func TestComputeLayoutInvalidColumns(t *testing.T) {
	tests := []struct {
		name string
		cols []ColumnSpec
	}{
		{"no columns", nil},
		{"zero width", []ColumnSpec{{Title: "A", DataKey: "a", WidthPx: 0}}},
		{"negative width", []ColumnSpec{{Title: "A", DataKey: "a", WidthPx: -5}}},
		{"missing key", []ColumnSpec{{Title: "A", WidthPx: 100}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeLayout(Table{Columns: tt.cols, Rows: []Row{{"a": "x"}}})
			if !tcerrors.Is(err, tcerrors.ErrCodeInvalidInput) {
				t.Errorf("ComputeLayout() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestComputeLayoutCharWidthOption(t *testing.T) {
	cols := []ColumnSpec{{Title: "Nombre", DataKey: "name", WidthPx: 150}}
	tbl := Table{Columns: cols, Rows: []Row{{"name": "Valentina Paz Órdenes"}}}

	_, def, _ := ComputeLayout(tbl)
	_, wide, _ := ComputeLayout(tbl, WithCharWidth(15))
	_, ignored, _ := ComputeLayout(tbl, WithCharWidth(-1))

	if def.CharBudgets[0] != 18 {
		t.Errorf("default budget = %d, want 18", def.CharBudgets[0])
	}
	if wide.CharBudgets[0] != 8 {
		t.Errorf("wide glyph budget = %d, want 8", wide.CharBudgets[0])
	}
	if ignored.CharBudgets[0] != def.CharBudgets[0] {
		t.Errorf("non-positive char width should be ignored")
	}
	if wide.LineCounts[0] <= def.LineCounts[0] {
		t.Errorf("wider glyphs should wrap into more lines: %d vs %d", wide.LineCounts[0], def.LineCounts[0])
	}
}

func TestLookup(t *testing.T) {
	r := Row{"name": "Ana", "empty": ""}
	if got := Lookup(r, "name"); got != "Ana" {
		t.Errorf("Lookup(name) = %q", got)
	}
	if got := Lookup(r, "empty"); got != "" {
		t.Errorf("Lookup(empty) = %q", got)
	}
	if got := Lookup(r, "missing"); got != "" {
		t.Errorf("Lookup(missing) = %q", got)
	}
	if got := Lookup(nil, "name"); got != "" {
		t.Errorf("Lookup(nil row) = %q", got)
	}
}
