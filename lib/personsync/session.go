// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

var (
	// ErrNoSession is returned by EditSession operations that need an
	// open dialog.
	ErrNoSession = errors.New("no edit session open")

	// ErrCommitInFlight is returned when the buffer is edited or
	// committed again while a commit is still waiting for the server.
	ErrCommitInFlight = errors.New("commit already in flight")
)

// Mode is the dialog state of an EditSession.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAdding
	ModeEditing
)

func (mode Mode) String() string {
	switch mode {
	case ModeAdding:
		return "adding"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Committer receives committed edits. Synchronizer implements it.
type Committer interface {
	Create(ctx context.Context, draft person.Record) (person.Record, error)
	Update(ctx context.Context, record person.Record) (person.Record, error)
}

// EditSession is the state of the add/edit dialog. The zero value is an
// idle session. It is not safe for concurrent use: owners that run
// commits off their event loop use Begin, Commit.Apply and Finish, and
// touch the session only from the loop.
type EditSession struct {
	mode      Mode
	editingID person.ID
	buffer    person.Record

	// generation increments whenever the dialog opens or closes, so a
	// Finish for a commit from an earlier dialog is recognized.
	generation uint64
	inFlight   bool
	err        error
}

// StartAdd opens the dialog with an empty draft.
func (session *EditSession) StartAdd() {
	session.reset()
	session.mode = ModeAdding
}

// StartEdit opens the dialog on a copy of record. Edits to the buffer
// never reach the caller's record.
func (session *EditSession) StartEdit(record person.Record) error {
	if record.ID.IsZero() {
		return fmt.Errorf("edit person: %w", ErrMissingIdentifier)
	}
	session.reset()
	session.mode = ModeEditing
	session.editingID = record.ID
	session.buffer = record
	return nil
}

// UpdateField sets one buffer field from its text form. On error the
// buffer is unchanged.
func (session *EditSession) UpdateField(field person.Field, value string) error {
	if session.mode == ModeIdle {
		return ErrNoSession
	}
	if session.inFlight {
		return ErrCommitInFlight
	}
	updated, err := session.buffer.WithField(field, value)
	if err != nil {
		return err
	}
	session.buffer = updated
	return nil
}

// Cancel closes the dialog and discards the buffer. A commit still in
// flight is not recalled; its Finish is ignored.
func (session *EditSession) Cancel() {
	session.reset()
}

// Open reports whether the dialog is shown.
func (session *EditSession) Open() bool { return session.mode != ModeIdle }

// Mode returns the dialog mode.
func (session *EditSession) Mode() Mode { return session.mode }

// EditingID returns the identifier being edited, or the zero ID when
// not in ModeEditing.
func (session *EditSession) EditingID() person.ID { return session.editingID }

// Buffer returns a copy of the edit buffer.
func (session *EditSession) Buffer() person.Record { return session.buffer }

// Submitting reports whether a commit is waiting for the server.
func (session *EditSession) Submitting() bool { return session.inFlight }

// Err returns the error of the last failed commit in this dialog.
func (session *EditSession) Err() error { return session.err }

// Commit is a snapshot of the buffer taken by Begin.
type Commit struct {
	generation uint64
	mode       Mode
	record     person.Record
}

// Mode returns ModeAdding or ModeEditing.
func (commit Commit) Mode() Mode { return commit.mode }

// Record returns the record being committed.
func (commit Commit) Record() person.Record { return commit.record }

// Apply sends the commit: Create when adding, Update when editing. It
// does not touch the session and may run on any goroutine.
func (commit Commit) Apply(ctx context.Context, committer Committer) (person.Record, error) {
	switch commit.mode {
	case ModeAdding:
		return committer.Create(ctx, commit.record)
	case ModeEditing:
		return committer.Update(ctx, commit.record)
	}
	return person.Record{}, ErrNoSession
}

// Begin snapshots the buffer for commit and marks the session as
// submitting.
func (session *EditSession) Begin() (Commit, error) {
	if session.mode == ModeIdle {
		return Commit{}, ErrNoSession
	}
	if session.inFlight {
		return Commit{}, ErrCommitInFlight
	}
	session.inFlight = true
	session.err = nil
	return Commit{
		generation: session.generation,
		mode:       session.mode,
		record:     session.buffer,
	}, nil
}

// Finish applies the outcome of commit. Success closes the dialog;
// failure keeps it open with the buffer intact and records err. It
// returns false, doing nothing, when the dialog the commit came from
// has since been cancelled or replaced.
func (session *EditSession) Finish(commit Commit, err error) bool {
	if commit.generation != session.generation || session.mode == ModeIdle {
		return false
	}
	session.inFlight = false
	if err != nil {
		session.err = err
		return true
	}
	session.reset()
	return true
}

// Commit runs Begin, Apply and Finish in sequence for callers that can
// block.
func (session *EditSession) Commit(ctx context.Context, committer Committer) (person.Record, error) {
	commit, err := session.Begin()
	if err != nil {
		return person.Record{}, err
	}
	record, err := commit.Apply(ctx, committer)
	session.Finish(commit, err)
	return record, err
}

func (session *EditSession) reset() {
	session.generation++
	session.mode = ModeIdle
	session.editingID = person.ID{}
	session.buffer = person.Record{}
	session.inFlight = false
	session.err = nil
}
