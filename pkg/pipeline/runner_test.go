package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/integrations/discord"
	"github.com/matzehuels/tablecast/pkg/observability"
	"github.com/matzehuels/tablecast/pkg/table"
)

type fakeSource struct {
	rows  [][]string
	err   error
	calls int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Fetch(context.Context) ([][]string, error) {
	s.calls++
	return s.rows, s.err
}

type fakeNotifier struct {
	sent []discord.Message
	err  error
}

func (n *fakeNotifier) Name() string { return "fake" }

func (n *fakeNotifier) Send(_ context.Context, msg discord.Message) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

var sampleRows = [][]string{
	{"Ana Pérez", "Pendiente", "2024-03-01T10:30:00"},
	{"Luis", "Pendiente"},
}

func TestExecute(t *testing.T) {
	src := &fakeSource{rows: sampleRows}
	n := &fakeNotifier{}
	runner := NewRunner(src, n, quietLogger())

	result, err := runner.Execute(context.Background(), Options{Report: config.DefaultReport()})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Skipped || !result.Delivered {
		t.Fatalf("Skipped=%v Delivered=%v", result.Skipped, result.Delivered)
	}
	if result.Stats.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", result.Stats.RowCount)
	}
	if got := result.Rows[0]["date"]; got != "01/03/2024 10:30" {
		t.Errorf("date = %q, want 01/03/2024 10:30", got)
	}
	if got := table.Lookup(result.Rows[1], "date"); got != "" {
		t.Errorf("padded date = %q, want empty", got)
	}

	if len(n.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(n.sent))
	}
	msg := n.sent[0]
	if !strings.HasPrefix(msg.Content, "Total de verificaciones pendientes: 2\n") {
		t.Errorf("Content = %q", msg.Content)
	}
	if msg.Filename != "tabla_alumnos_por_verificar.png" {
		t.Errorf("Filename = %q", msg.Filename)
	}
	if _, err := png.Decode(bytes.NewReader(msg.Image)); err != nil {
		t.Errorf("image is not a PNG: %v", err)
	}
}

func TestExecuteEmptySkips(t *testing.T) {
	n := &fakeNotifier{}
	runner := NewRunner(&fakeSource{}, n, quietLogger())

	result, err := runner.Execute(context.Background(), Options{Report: config.DefaultReport()})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !result.Skipped || result.Image != nil {
		t.Errorf("Skipped=%v Image=%d bytes, want skipped without image", result.Skipped, len(result.Image))
	}
	if len(n.sent) != 0 {
		t.Errorf("sent %d messages for an empty table", len(n.sent))
	}
}

func TestExecuteDryRun(t *testing.T) {
	runner := NewRunner(&fakeSource{rows: sampleRows}, nil, quietLogger())

	result, err := runner.Execute(context.Background(), Options{Report: config.DefaultReport(), DryRun: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Delivered {
		t.Error("dry run reported delivery")
	}
	if len(result.Image) == 0 {
		t.Error("dry run produced no image")
	}
}

func TestExecuteErrors(t *testing.T) {
	report := config.DefaultReport()

	tests := []struct {
		name     string
		source   *fakeSource
		notifier Notifier
		opts     Options
		code     errors.Code
		prefix   string
	}{
		{
			name:     "fetch failure",
			source:   &fakeSource{err: errors.New(errors.ErrCodeNetwork, "down")},
			notifier: &fakeNotifier{},
			opts:     Options{Report: report},
			code:     errors.ErrCodeNetwork,
			prefix:   "fetch: ",
		},
		{
			name:     "bad date",
			source:   &fakeSource{rows: [][]string{{"Ana", "x", "yesterday"}}},
			notifier: &fakeNotifier{},
			opts:     Options{Report: report},
			code:     errors.ErrCodeParse,
			prefix:   "fetch: ",
		},
		{
			name:     "delivery failure",
			source:   &fakeSource{rows: sampleRows},
			notifier: &fakeNotifier{err: errors.New(errors.ErrCodeDeliveryFailed, "rejected")},
			opts:     Options{Report: report},
			code:     errors.ErrCodeDeliveryFailed,
			prefix:   "deliver: ",
		},
		{
			name:     "no notifier",
			source:   &fakeSource{rows: sampleRows},
			opts:     Options{Report: report},
			code:     errors.ErrCodeInvalidConfig,
		},
		{
			name:     "invalid report",
			source:   &fakeSource{rows: sampleRows},
			notifier: &fakeNotifier{},
			opts:     Options{Report: config.Report{Filename: "x.png"}},
			code:     errors.ErrCodeInvalidConfig,
			prefix:   "invalid options: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(tt.source, tt.notifier, quietLogger())
			_, err := runner.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want %s", err, tt.code)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("Execute() error = %q, want prefix %q", err, tt.prefix)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(context.Background(), nil, Options{Report: config.DefaultReport()})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCharWidth(t *testing.T) {
	rows := []table.Row{{"name": strings.Repeat("palabra ", 40)}}
	report := config.DefaultReport()

	narrow, err := Render(context.Background(), rows, Options{Report: report})
	if err != nil {
		t.Fatal(err)
	}
	wide, err := Render(context.Background(), rows, Options{Report: report, CharWidth: 15})
	if err != nil {
		t.Fatal(err)
	}

	height := func(b []byte) int {
		img, err := png.Decode(bytes.NewReader(b))
		if err != nil {
			t.Fatal(err)
		}
		return img.Bounds().Dy()
	}
	if height(wide) <= height(narrow) {
		t.Errorf("wider glyph estimate should wrap into more lines: %d <= %d", height(wide), height(narrow))
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnFetchComplete(_ context.Context, _ string, rows int, _ time.Duration, _ error) {
	h.events = append(h.events, "fetch")
}

func (h *recordingHooks) OnRenderComplete(context.Context, int, time.Duration, error) {
	h.events = append(h.events, "render")
}

func (h *recordingHooks) OnDeliverComplete(context.Context, string, time.Duration, error) {
	h.events = append(h.events, "deliver")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	runner := NewRunner(&fakeSource{rows: sampleRows}, &fakeNotifier{}, quietLogger())
	if _, err := runner.Execute(context.Background(), Options{Report: config.DefaultReport()}); err != nil {
		t.Fatal(err)
	}

	want := []string{"fetch", "render", "deliver"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
