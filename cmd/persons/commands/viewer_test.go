// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
)

// recordingHandler keeps the messages of the records it handles.
type recordingHandler struct {
	mutex    *sync.Mutex
	messages *[]string
}

func newRecordingHandler() recordingHandler {
	return recordingHandler{mutex: &sync.Mutex{}, messages: &[]string{}}
}

func (handler recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (handler recordingHandler) Handle(_ context.Context, record slog.Record) error {
	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	*handler.messages = append(*handler.messages, record.Message)
	return nil
}

func (handler recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return handler }
func (handler recordingHandler) WithGroup(string) slog.Handler      { return handler }

func (handler recordingHandler) Messages() []string {
	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	return slices.Clone(*handler.messages)
}

func TestViewerLoggersKeepSynchronizerOutOfStatusBar(t *testing.T) {
	status, file := newRecordingHandler(), newRecordingHandler()
	viewer, records := viewerLoggers(status, file)

	records.Error("loading persons failed")
	viewer.Warn("request slow")

	if got := status.Messages(); !slices.Equal(got, []string{"request slow"}) {
		t.Errorf("status bar got %q, want only the viewer record", got)
	}
	if got := file.Messages(); !slices.Equal(got, []string{"loading persons failed", "request slow"}) {
		t.Errorf("log file got %q, want both records", got)
	}
}

func TestViewerLoggersWithoutFile(t *testing.T) {
	status := newRecordingHandler()
	viewer, records := viewerLoggers(status, nil)

	records.Error("removing person failed")
	viewer.Error("terminal resize failed")

	if got := status.Messages(); !slices.Equal(got, []string{"terminal resize failed"}) {
		t.Errorf("status bar got %q", got)
	}
}
