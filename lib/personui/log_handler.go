// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" form.
	Summary string

	// Level selects the status bar styling.
	Level slog.Level
}

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are dropped.
//
// The handler must be created before the program, since the
// synchronizer takes its logger at construction. Call SetProgram once
// the tea.Program exists; records arriving before that are dropped.
// Handlers derived via WithAttrs/WithGroup share the program pointer.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	prefix  string // Group names joined with ".", with a trailing ".".
}

// NewTUILogHandler creates a handler that delivers records at or above
// level to the bubbletea program.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and sends it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	program.Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// summarize builds "message (key=value, ...)" with handler attrs first.
func (handler *TUILogHandler) summarize(record slog.Record) string {
	parts := slices.Clone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		attr.Key = handler.prefix + attr.Key
		parts = append(parts, attr)
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}

	var builder strings.Builder
	builder.WriteString(record.Message)
	builder.WriteString(" (")
	for index, attr := range parts {
		if index > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(attr.Key)
		builder.WriteByte('=')
		builder.WriteString(attr.Value.Resolve().String())
	}
	builder.WriteByte(')')
	return builder.String()
}

// WithAttrs returns a handler with attrs appended under the current
// group prefix.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		attr.Key = handler.prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys with
// name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	derived.prefix = handler.prefix + name + "."
	return &derived
}
