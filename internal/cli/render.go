package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/ingest"
	"github.com/matzehuels/tablecast/pkg/integrations/metabase"
	"github.com/matzehuels/tablecast/pkg/pipeline"
	"github.com/matzehuels/tablecast/pkg/table"
	"github.com/matzehuels/tablecast/pkg/table/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	configPath string  // TOML report file, empty for the default report
	output     string  // PNG path, defaults to the report filename
	charWidth  float64 // average glyph width override
	padding    float64 // crop padding in pixels, negative keeps the default
	preview    bool    // print the rows as a terminal table
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{padding: -1}

	cmd := &cobra.Command{
		Use:   "render [rows.json]",
		Short: "Render a local rows file to PNG",
		Long: `Render rows from a JSON file to a PNG table without contacting any service.

The file may hold a Metabase query response ({"data":{"rows":[...]}}),
an array of positional rows ([["Ana","Pendiente","2024-03-01"]]) or an
array of objects keyed by column data key ([{"name":"Ana"}]).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "report definition (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: report filename)")
	cmd.Flags().Float64Var(&opts.charWidth, "char-width", 0, "average glyph width in pixels used for wrapping")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "padding around the table in pixels")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print the rows as a table")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, out io.Writer, path string, opts renderOpts) error {
	report, err := loadReport(opts.configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	rows, err := parseRows(data, report)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		printWarning(out, "%s has no rows, nothing to render", path)
		return nil
	}
	if opts.preview {
		fmt.Fprintln(out, previewTable(report.Columns, rows))
	}

	prog := newProgress(c.Logger)
	var pngOpts []sink.PNGOption
	if opts.padding >= 0 {
		pngOpts = append(pngOpts, sink.WithPadding(opts.padding))
	}
	img, err := pipeline.Render(ctx, rows, pipeline.Options{Report: report, CharWidth: opts.charWidth}, pngOpts...)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	prog.done(fmt.Sprintf("Rendered %d rows", len(rows)))

	output := opts.output
	if output == "" {
		output = report.Filename
	}
	if err := os.WriteFile(output, img, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess(out, "Rendered %d rows", len(rows))
	printFile(out, output)
	return nil
}

// parseRows decodes one of the accepted rows file shapes into table rows
// with date columns normalized.
func parseRows(data []byte, report config.Report) ([]table.Row, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var resp struct {
			Data struct {
				Rows json.RawMessage `json:"rows"`
			} `json:"data"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "decode rows file")
		}
		data = resp.Data.Rows
		if len(data) == 0 {
			return nil, nil
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "rows must be a JSON array")
	}

	keys := report.Keys()
	records := make([][]string, len(items))
	for i, item := range items {
		record, err := decodeRecord(item, keys)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "row %d", i)
		}
		records[i] = record
	}
	return ingest.Adapt(records, keys, report.DateKeys...)
}

// decodeRecord reads a positional array or a keyed object as a positional
// record ordered by keys.
func decodeRecord(raw json.RawMessage, keys []string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case []any:
		record := make([]string, len(x))
		for i, field := range x {
			record[i] = metabase.Stringify(field)
		}
		return record, nil
	case map[string]any:
		record := make([]string, len(keys))
		for i, k := range keys {
			record[i] = metabase.Stringify(x[k])
		}
		return record, nil
	default:
		return nil, fmt.Errorf("expected array or object, got %T", v)
	}
}
