// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the persons viewer. Built on bubbletea (Elm architecture), these
// components cover the pieces a record browser needs beyond its own
// list: a modal form with single-line, multi-line and choice fields,
// overlay splicing, a scrollbar, and change highlighting.
//
// Components here know nothing about person records. The viewer in
// lib/personui maps record fields onto [FormField] values and feeds
// [FormEvent] results back into its edit session.
package tui
