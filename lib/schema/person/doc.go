// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package person defines the person record exchanged with the
// /api/persons/ REST collection.
//
// A [Record] is a flat value: every field is a value type, so assigning
// or passing a Record copies it completely. Code that hands a record to
// an editor relies on this to keep edits from reaching the owning
// collection until they are committed.
//
// Identifiers are assigned by the server. [ID] is opaque to clients: it
// round-trips whatever the server sent (the reference backend uses
// integer keys) and its zero value means "not yet created". Creation
// requests omit the identifier entirely.
//
// JSON field names are snake_case to match the backend. Gender is a one
// letter code and date of birth is an optional "YYYY-MM-DD" calendar
// date; see [Gender] and [Date].
package person
