package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablecast/pkg/buildinfo"
	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "tablecast"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitMissingEnv  = 2
	ExitInterrupted = 130
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Lookup reads environment variables. Nil means the process environment.
	Lookup config.LookupFunc
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Render tabular query results as images and post them to chat",
		Long: `tablecast fetches rows from a Metabase card query, renders them as a
styled PNG table and posts the image with a caption to a Discord webhook.

Credentials are read from METABASE_API_KEY, METABASE_AUTH_STRING,
METABASE_URL and DISCORD_WEBHOOK_URL.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// =============================================================================
// Exit Codes
// =============================================================================

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, errors.ErrCodeMissingEnv):
		return ExitMissingEnv
	default:
		return ExitFailure
	}
}

// =============================================================================
// Report Helpers
// =============================================================================

// loadReport returns the report at path, or the default report when path is
// empty.
func loadReport(path string) (config.Report, error) {
	if path == "" {
		return config.DefaultReport(), nil
	}
	return config.LoadReport(path)
}
