// Package pipeline runs one report: fetch rows, render the table, deliver it.
//
// The pipeline has three stages:
//
//  1. Fetch: read raw rows from a [Source] and adapt them to table rows
//  2. Render: lay out the table, build the cell grid and encode a PNG
//  3. Deliver: post the image with its caption through a [Notifier]
//
// A fetch that yields no rows ends the run early with [Result.Skipped] set;
// nothing is rendered or delivered. Dry runs stop after rendering.
//
// # Usage
//
//	runner := pipeline.NewRunner(metabaseClient, webhook, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Report: config.DefaultReport()})
//	if err != nil {
//	    return err
//	}
//	if result.Skipped {
//	    logger.Info("nothing to report")
//	}
package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/integrations/discord"
	"github.com/matzehuels/tablecast/pkg/table"
)

// =============================================================================
// Collaborators
// =============================================================================

// Source yields raw positional rows.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([][]string, error)
}

// Notifier delivers a rendered report.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg discord.Message) error
}

// =============================================================================
// Options and Result
// =============================================================================

// Options configures one run.
type Options struct {
	Report config.Report

	// DryRun renders the image but does not deliver it.
	DryRun bool

	// CharWidth overrides the average glyph width used for wrapping.
	// Zero keeps [table.DefaultCharWidthPx].
	CharWidth float64
}

// Validate checks the report definition.
func (o Options) Validate() error {
	return o.Report.Validate()
}

func (o Options) layoutOptions() []table.LayoutOption {
	if o.CharWidth > 0 {
		return []table.LayoutOption{table.WithCharWidth(o.CharWidth)}
	}
	return nil
}

// Result contains the outputs of a run.
type Result struct {
	// Rows are the adapted rows in source order.
	Rows []table.Row

	// Image is the encoded PNG. Nil when the run was skipped.
	Image []byte

	// Message is the caption that was (or would have been) posted.
	Message string

	// Skipped is true when the source returned no rows.
	Skipped bool

	// Delivered is true when the notifier accepted the message.
	Delivered bool

	Stats Stats
}

// Stats contains run timings and sizes.
type Stats struct {
	RowCount    int
	ImageBytes  int
	FetchTime   time.Duration
	RenderTime  time.Duration
	DeliverTime time.Duration
}
