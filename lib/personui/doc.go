// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package personui implements the interactive terminal viewer for the
// persons collection. It is a bubbletea program over a
// [personsync.Synchronizer]: the list renders the synchronizer's
// records narrowed by the search term, and add, edit and delete run as
// tea.Cmd goroutines whose results come back as messages.
//
// State changes only in Update. The viewer never applies a change
// before the server confirms it; the list redraws from the
// synchronizer's subscribe stream once a mutation has been applied.
//
// The add/edit form is a [tui.FormModal] backed by a
// [personsync.EditSession]. The session holds the authoritative draft;
// the form reports each keystroke's field change back to it. A failed
// save leaves the form open with the draft intact and the error shown
// in the form. A failed initial load shows a persistent error with a
// reload key rather than retrying on its own.
//
// Log records at or above the configured level are routed into the
// status bar by [TUILogHandler].
package personui
