package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/integrations/discord"
	"github.com/matzehuels/tablecast/pkg/integrations/metabase"
	"github.com/matzehuels/tablecast/pkg/observability"
	"github.com/matzehuels/tablecast/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	configPath string        // TOML report file, empty for the default report
	dryRun     bool          // render only, write the PNG instead of posting it
	output     string        // dry-run output path, defaults to the report filename
	every      time.Duration // repeat interval, zero runs once
	charWidth  float64       // average glyph width override
	preview    bool          // print the rows as a terminal table
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch rows, render the table and post it",
		Long: `Fetch rows from the Metabase card query, render them as a PNG table and
post the image to the Discord webhook. Nothing is posted when the query
returns no rows.

With --every the report repeats on that interval until interrupted. A failed
run is logged and the next tick runs again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.every < 0 {
				return fmt.Errorf("--every must not be negative")
			}
			return c.runReport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "report definition (TOML)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render without posting and write the PNG to --output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PNG path for --dry-run (default: report filename)")
	cmd.Flags().DurationVar(&opts.every, "every", 0, "repeat on this interval, e.g. 24h")
	cmd.Flags().Float64Var(&opts.charWidth, "char-width", 0, "average glyph width in pixels used for wrapping")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print the fetched rows as a table")

	return cmd
}

// runReport wires the configured collaborators into a runner and executes it
// once or on a schedule.
func (c *CLI) runReport(ctx context.Context, out io.Writer, opts runOpts) error {
	report, err := loadReport(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.FromEnv(c.Lookup)
	if err != nil {
		return err
	}

	observability.SetHTTPHooks(httpLogHooks{logger: c.Logger})
	defer observability.Reset()

	var notifier pipeline.Notifier
	if !opts.dryRun {
		notifier = discord.NewWebhook(cfg.DiscordWebhookURL)
	}
	source := metabase.NewClient(cfg.MetabaseURL, cfg.MetabaseAPIKey, cfg.MetabaseAuth)
	runner := pipeline.NewRunner(source, notifier, c.Logger)

	pipeOpts := pipeline.Options{
		Report:    report,
		DryRun:    opts.dryRun,
		CharWidth: opts.charWidth,
	}
	once := func(ctx context.Context) error {
		result, err := runner.Execute(ctx, pipeOpts)
		if err != nil {
			return err
		}
		return c.reportResult(out, report, result, opts)
	}

	if opts.every == 0 {
		return once(ctx)
	}
	c.Logger.Info("scheduling report", "every", opts.every)
	return schedule(ctx, opts.every, c.Logger, once)
}

// reportResult prints the human summary of one run.
func (c *CLI) reportResult(out io.Writer, report config.Report, result *pipeline.Result, opts runOpts) error {
	if result.Skipped {
		printWarning(out, "No rows returned, nothing to post")
		return nil
	}
	if opts.preview {
		fmt.Fprintln(out, previewTable(report.Columns, result.Rows))
	}

	if opts.dryRun {
		path := opts.output
		if path == "" {
			path = report.Filename
		}
		if err := os.WriteFile(path, result.Image, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess(out, "Rendered %d rows", result.Stats.RowCount)
		printFile(out, path)
	} else {
		printSuccess(out, "Posted %d rows", result.Stats.RowCount)
	}

	printStats(out,
		fmt.Sprintf("%d bytes", result.Stats.ImageBytes),
		fmt.Sprintf("fetch %s", result.Stats.FetchTime.Round(time.Millisecond)),
		fmt.Sprintf("render %s", result.Stats.RenderTime.Round(time.Millisecond)),
	)
	return nil
}

// schedule calls fn immediately and then on every tick until ctx is done,
// returning ctx.Err(). Errors from individual runs are logged and do not
// stop the schedule.
func schedule(ctx context.Context, every time.Duration, logger *log.Logger, fn func(context.Context) error) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := fn(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("report run failed", "code", errors.GetCode(err), "err", errors.UserMessage(err))
		}

		select {
		case <-ctx.Done():
			logger.Info("schedule stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
