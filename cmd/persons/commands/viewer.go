// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/personui"
)

type viewerParams struct {
	connection connectionFlags
	ordering   string
	logOutput  string
	noColor    bool
}

func viewerCommand() *cli.Command {
	var params viewerParams
	return &cli.Command{
		Name:    "viewer",
		Summary: "Browse and edit persons in an interactive terminal UI",
		Description: `Interactive terminal UI for the person directory: a searchable list
with add, edit, and delete.

Background errors are shown in the status bar instead of stderr, which
the viewer owns while it runs. Use --log-output to also keep every log
record in a file.`,
		Usage: "persons viewer [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the viewer against a local mock server",
				Command:     "persons viewer --base-url http://127.0.0.1:8000",
			},
			{
				Description: "Keep a debug log while browsing",
				Command:     "persons viewer --log-level debug --log-output /tmp/persons.jsonl",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("viewer", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			flagSet.StringVar(&params.ordering, "ordering", "", "resolution of overlapping edits: last-completed or latest-issued")
			flagSet.StringVar(&params.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
			flagSet.BoolVar(&params.noColor, "no-color", false, "disable colors (also honored: NO_COLOR)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runViewer(ctx, &params)
		},
	}
}

// runViewer routes background logging through a TUILogHandler so that
// warnings and errors land in the status bar instead of corrupting the
// alternate screen. An optional file logger captures all records.
func runViewer(ctx context.Context, params *viewerParams) error {
	cfg, err := params.connection.loadConfig()
	if err != nil {
		return err
	}
	if params.ordering != "" {
		cfg.Viewer.Ordering = params.ordering
	}
	ordering, err := personsync.ParseOrdering(cfg.Viewer.Ordering)
	if err != nil {
		return cli.Validation("%w", err)
	}
	level, err := cli.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	if params.noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	tuiHandler := personui.NewTUILogHandler(max(level, slog.LevelWarn))
	var fileHandler slog.Handler
	if params.logOutput != "" {
		handler, closeFile, err := openFileLogHandler(params.logOutput, level)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", params.logOutput, err)
		}
		defer closeFile()
		fileHandler = handler
	}
	logger, syncLogger := viewerLoggers(tuiHandler, fileHandler)

	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return err
	}
	records := personsync.New(client, syncLogger, personsync.WithOrdering(ordering))
	defer records.Close()
	logger.Debug("viewer starting", "base_url", cfg.API.BaseURL, "ordering", records.Ordering().String())

	model := personui.NewModel(ctx, records, logger)
	model.SetStatusFade(cfg.StatusFade())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	tuiHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return cli.Internal("terminal UI: %w", err)
	}
	return nil
}

// viewerLoggers returns the logger for the viewer and the API client,
// which reaches the status bar and the optional file, and the logger for
// the synchronizer, which reaches the file only. Every synchronizer
// failure is also returned to the model, which reports it in the status
// bar itself.
func viewerLoggers(statusHandler, fileHandler slog.Handler) (viewer, records *slog.Logger) {
	if fileHandler == nil {
		viewer = slog.New(statusHandler)
		records = slog.New(slog.DiscardHandler)
	} else {
		viewer = slog.New(fanoutHandler{statusHandler, fileHandler})
		records = slog.New(fileHandler)
	}
	return viewer.With("command", "viewer"), records.With("command", "viewer", "component", "personsync")
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given path. The returned function closes the file.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
