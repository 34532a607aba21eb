// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestTUILogHandlerSummary(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)

	derived := handler.WithAttrs([]slog.Attr{slog.String("component", "sync")}).
		WithGroup("request").(*TUILogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelError, "removing person failed", 0)
	record.AddAttrs(slog.String("id", "2"), slog.Int("status", 500))

	got := derived.summarize(record)
	want := "removing person failed (component=sync, request.id=2, request.status=500)"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestTUILogHandlerLevel(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be below a warn handler's level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should pass a warn handler")
	}
	// Without a program the record is dropped, not an error.
	record := slog.NewRecord(time.Now(), slog.LevelError, "dropped", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Errorf("Handle without program: %v", err)
	}
}
