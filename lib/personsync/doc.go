// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package personsync keeps a local person collection consistent with
// the remote /api/persons/ collection.
//
// [Synchronizer] exclusively owns the canonical collection: an ordered
// list of records, in server order, with unique non-zero identifiers.
// Every mutation is confirmed by the server before it touches local
// state; there are no optimistic updates and no automatic retries. A
// failed call leaves the collection exactly as it was, logs the failure,
// and returns the error to the caller.
//
// Calls may overlap. Each one applies its own result against the
// collection as it stands when the result arrives. Under the default
// [LastCompletedWins] ordering the last result to arrive wins, whatever
// order the calls were issued in. [LatestIssuedWins] instead tags each
// call with a sequence number and discards results that a later-issued
// call for the same record has already superseded.
//
// [Filter] derives the visible subset for a search term. It is pure and
// cheap enough to recompute on every render.
//
// [EditSession] holds the add/edit dialog state and the edit buffer. It
// copies records on entry so edits never reach the collection until a
// commit succeeds, and keeps the dialog open with the buffer intact when
// a commit fails.
package personsync
