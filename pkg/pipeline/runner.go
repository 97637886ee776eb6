package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/ingest"
	"github.com/matzehuels/tablecast/pkg/integrations/discord"
	"github.com/matzehuels/tablecast/pkg/observability"
	"github.com/matzehuels/tablecast/pkg/table"
	"github.com/matzehuels/tablecast/pkg/table/sink"
)

// Runner executes report runs against a source and a notifier.
//
// The Runner keeps no state between runs, so the scheduler can call
// Execute repeatedly on the same value.
type Runner struct {
	Source   Source
	Notifier Notifier
	Logger   *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
// The notifier may be nil for runs that are always dry.
func NewRunner(src Source, n Notifier, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Notifier: n, Logger: logger}
}

// Execute runs fetch → render → deliver.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "runner has no source")
	}
	if !opts.DryRun && r.Notifier == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "runner has no notifier")
	}
	logger := r.logger()
	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	rows, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Rows = rows
	result.Stats.RowCount = len(rows)
	result.Stats.FetchTime = time.Since(fetchStart)

	logger.Info("fetched rows",
		"source", r.Source.Name(),
		"rows", len(rows),
		"duration", result.Stats.FetchTime)

	if len(rows) == 0 {
		result.Skipped = true
		logger.Info("no rows, skipping report")
		return result, nil
	}

	// Stage 2: Render
	renderStart := time.Now()
	img, err := Render(ctx, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Image = img
	result.Message = opts.Report.Message(len(rows))
	result.Stats.ImageBytes = len(img)
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered table",
		"bytes", len(img),
		"duration", result.Stats.RenderTime)

	if opts.DryRun {
		return result, nil
	}

	// Stage 3: Deliver
	deliverStart := time.Now()
	msg := discord.Message{
		Content:  result.Message,
		Filename: opts.Report.Filename,
		Image:    img,
	}
	if err := r.Deliver(ctx, msg); err != nil {
		return nil, fmt.Errorf("deliver: %w", err)
	}
	result.Delivered = true
	result.Stats.DeliverTime = time.Since(deliverStart)

	logger.Info("delivered report",
		"target", r.Notifier.Name(),
		"rows", len(rows),
		"duration", result.Stats.DeliverTime)

	return result, nil
}

// Fetch reads raw rows from the source and adapts them to the report's
// columns, normalizing date columns.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]table.Row, error) {
	hooks := observability.Pipeline()
	name := r.Source.Name()
	hooks.OnFetchStart(ctx, name)
	start := time.Now()

	rows, err := r.fetch(ctx, opts)
	hooks.OnFetchComplete(ctx, name, len(rows), time.Since(start), err)
	return rows, err
}

func (r *Runner) fetch(ctx context.Context, opts Options) ([]table.Row, error) {
	raw, err := r.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.Adapt(raw, opts.Report.Keys(), opts.Report.DateKeys...)
}

// Deliver sends msg through the notifier.
func (r *Runner) Deliver(ctx context.Context, msg discord.Message) error {
	hooks := observability.Pipeline()
	name := r.Notifier.Name()
	hooks.OnDeliverStart(ctx, name)
	start := time.Now()

	err := r.Notifier.Send(ctx, msg)
	hooks.OnDeliverComplete(ctx, name, time.Since(start), err)
	return err
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Render lays out rows with the report's columns and encodes the PNG.
// It needs no network and backs both the run and the offline render
// command. Rendering an empty row set is an INVALID_INPUT error.
func Render(ctx context.Context, rows []table.Row, opts Options, pngOpts ...sink.PNGOption) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, len(rows))
	start := time.Now()

	img, err := render(rows, opts, pngOpts)
	hooks.OnRenderComplete(ctx, len(img), time.Since(start), err)
	return img, err
}

func render(rows []table.Row, opts Options, pngOpts []sink.PNGOption) ([]byte, error) {
	t := table.Table{Columns: opts.Report.Columns, Rows: rows}
	cells, geom, err := table.ComputeLayout(t, opts.layoutOptions()...)
	if err != nil {
		if err == table.ErrEmptyTable {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "nothing to render")
		}
		return nil, err
	}
	grid := table.Render(cells, geom, t.Columns)
	return sink.EncodePNG(grid, pngOpts...)
}
