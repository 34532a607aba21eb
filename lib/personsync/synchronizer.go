// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

var (
	// ErrClosed is returned by calls made after Close, and by calls
	// whose result arrived after Close. Such results are discarded.
	ErrClosed = errors.New("synchronizer closed")

	// ErrMissingIdentifier is returned when a record needs a server
	// identifier and has none: updating a draft, or a create response
	// without an id.
	ErrMissingIdentifier = person.ErrMissingID

	// ErrInvalidCollection is returned when a server response would
	// break identifier uniqueness: a listed record without an identifier,
	// a repeated identifier, or an update answered for another record.
	ErrInvalidCollection = errors.New("invalid person collection")
)

// Remote is the server side of the collection. personapi.Client
// implements it.
type Remote interface {
	List(ctx context.Context) ([]person.Record, error)
	Create(ctx context.Context, draft person.Record) (person.Record, error)
	Update(ctx context.Context, record person.Record) (person.Record, error)
	Delete(ctx context.Context, id person.ID) error
}

// Ordering selects how overlapping calls for the same record resolve.
type Ordering int

const (
	// LastCompletedWins applies every successful result when it
	// arrives. Two overlapping updates of one record leave whichever
	// completed last.
	LastCompletedWins Ordering = iota

	// LatestIssuedWins applies a result only if no call issued after
	// it has already been applied for the same record. Two overlapping
	// updates leave whichever was issued last, regardless of
	// completion order.
	LatestIssuedWins
)

// ParseOrdering accepts "last-completed" and "latest-issued". Empty
// input selects LastCompletedWins.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "last-completed":
		return LastCompletedWins, nil
	case "latest-issued":
		return LatestIssuedWins, nil
	}
	return LastCompletedWins, fmt.Errorf("unknown ordering %q (want last-completed or latest-issued)", s)
}

func (ordering Ordering) String() string {
	if ordering == LatestIssuedWins {
		return "latest-issued"
	}
	return "last-completed"
}

// EventKind classifies a change to the collection.
type EventKind string

const (
	// EventLoaded: the collection was replaced by a Load.
	EventLoaded EventKind = "loaded"

	// EventPut: one record was added or replaced.
	EventPut EventKind = "put"

	// EventRemoved: one record was removed.
	EventRemoved EventKind = "removed"
)

// Event describes a committed change, delivered to Subscribe channels.
// Record is set for EventPut. ID is set for EventPut and EventRemoved.
type Event struct {
	Kind   EventKind
	ID     person.ID
	Record person.Record
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithOrdering sets the overlapping-call policy. The default is
// LastCompletedWins.
func WithOrdering(ordering Ordering) Option {
	return func(synchronizer *Synchronizer) {
		synchronizer.ordering = ordering
	}
}

// Synchronizer owns the canonical collection. It is safe for concurrent
// use; remote calls run without holding the lock.
type Synchronizer struct {
	remote   Remote
	logger   *slog.Logger
	ordering Ordering

	mutex       sync.Mutex
	records     []person.Record
	loaded      bool
	closed      bool
	subscribers []chan Event

	// Sequence bookkeeping for LatestIssuedWins. sequence is the last
	// number handed out. applied holds, per identifier, the sequence
	// of the call whose result currently stands (including removals,
	// which keep their entry so that older results stay discarded).
	// loadApplied is the sequence of the last applied Load.
	sequence    uint64
	applied     map[person.ID]uint64
	loadApplied uint64
}

// New returns a Synchronizer with an empty collection. Call Load to
// populate it.
func New(remote Remote, logger *slog.Logger, options ...Option) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	synchronizer := &Synchronizer{
		remote:  remote,
		logger:  logger,
		applied: make(map[person.ID]uint64),
	}
	for _, option := range options {
		option(synchronizer)
	}
	return synchronizer
}

// Ordering returns the configured overlapping-call policy.
func (synchronizer *Synchronizer) Ordering() Ordering {
	return synchronizer.ordering
}

// Records returns a copy of the collection in order.
func (synchronizer *Synchronizer) Records() []person.Record {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	return slices.Clone(synchronizer.records)
}

// Get returns the record with the given identifier.
func (synchronizer *Synchronizer) Get(id person.ID) (person.Record, bool) {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	index := synchronizer.indexOf(id)
	if index < 0 {
		return person.Record{}, false
	}
	return synchronizer.records[index], true
}

// Len returns the number of records in the collection.
func (synchronizer *Synchronizer) Len() int {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	return len(synchronizer.records)
}

// Loaded reports whether any Load has succeeded. An empty collection
// before the first load means "unknown", after it means "no records".
func (synchronizer *Synchronizer) Loaded() bool {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	return synchronizer.loaded
}

// Subscribe returns a channel that receives an Event for every applied
// change. Delivery never blocks the synchronizer: when the buffer is
// full the event is dropped, and the subscriber should re-read Records.
// The channel is closed by Close.
func (synchronizer *Synchronizer) Subscribe() <-chan Event {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	channel := make(chan Event, 64)
	if synchronizer.closed {
		close(channel)
		return channel
	}
	synchronizer.subscribers = append(synchronizer.subscribers, channel)
	return channel
}

// Close disposes of the synchronizer. Calls still in flight complete
// their remote request but do not touch the collection; they return
// ErrClosed. Subscriber channels are closed. Close is idempotent.
func (synchronizer *Synchronizer) Close() {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return
	}
	synchronizer.closed = true
	for _, subscriber := range synchronizer.subscribers {
		close(subscriber)
	}
	synchronizer.subscribers = nil
}

// Load fetches the whole remote collection and replaces the local one
// with it. On failure the local collection is unchanged.
func (synchronizer *Synchronizer) Load(ctx context.Context) error {
	sequence, err := synchronizer.issue()
	if err != nil {
		return err
	}

	records, err := synchronizer.remote.List(ctx)
	if err == nil {
		err = validateCollection(records)
	}
	if err != nil {
		synchronizer.logger.Error("loading persons failed", "error", err)
		return err
	}

	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return ErrClosed
	}
	if synchronizer.ordering == LatestIssuedWins {
		if sequence < synchronizer.loadApplied {
			synchronizer.logger.Debug("discarding superseded load", "sequence", sequence)
			return nil
		}
		records = synchronizer.mergeNewerLocked(records, sequence)
		synchronizer.loadApplied = sequence
	}
	synchronizer.records = records
	synchronizer.loaded = true
	synchronizer.dispatchLocked(Event{Kind: EventLoaded})
	synchronizer.logger.Debug("loaded persons", "count", len(records))
	return nil
}

// Create sends draft (without its identifier) to the server and appends
// the record the server returns. The returned record must carry an
// identifier; if one with the same identifier is already present (a
// concurrent Load delivered it first) it is replaced in place.
func (synchronizer *Synchronizer) Create(ctx context.Context, draft person.Record) (person.Record, error) {
	sequence, err := synchronizer.issue()
	if err != nil {
		return person.Record{}, err
	}

	draft.ID = person.ID{}
	created, err := synchronizer.remote.Create(ctx, draft)
	if err == nil && created.ID.IsZero() {
		err = fmt.Errorf("create person: server response: %w", ErrMissingIdentifier)
	}
	if err != nil {
		synchronizer.logger.Error("creating person failed", "name", draft.Name, "error", err)
		return person.Record{}, err
	}

	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return person.Record{}, ErrClosed
	}
	if !synchronizer.acceptLocked(created.ID, sequence) {
		return created, nil
	}
	if index := synchronizer.indexOf(created.ID); index >= 0 {
		synchronizer.records[index] = created
	} else {
		synchronizer.records = append(synchronizer.records, created)
	}
	synchronizer.dispatchLocked(Event{Kind: EventPut, ID: created.ID, Record: created})
	return created, nil
}

// Update sends record to the server and replaces the local entry with
// the same identifier by the server's version. If the server's response
// carries no identifier, the sent record is used; a response for a
// different identifier is an error. If no local entry
// matches (it was removed meanwhile) the collection is unchanged.
func (synchronizer *Synchronizer) Update(ctx context.Context, record person.Record) (person.Record, error) {
	if record.ID.IsZero() {
		err := fmt.Errorf("update person: %w", ErrMissingIdentifier)
		synchronizer.logger.Error("updating person failed", "name", record.Name, "error", err)
		return person.Record{}, err
	}
	sequence, err := synchronizer.issue()
	if err != nil {
		return person.Record{}, err
	}

	updated, err := synchronizer.remote.Update(ctx, record)
	if err != nil {
		synchronizer.logger.Error("updating person failed", "id", record.ID.String(), "error", err)
		return person.Record{}, err
	}
	if updated.ID.IsZero() {
		updated = record
	}
	if updated.ID != record.ID {
		err := fmt.Errorf("update person: server returned id %s for %s: %w",
			updated.ID, record.ID, ErrInvalidCollection)
		synchronizer.logger.Error("updating person failed", "id", record.ID.String(), "error", err)
		return person.Record{}, err
	}

	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return person.Record{}, ErrClosed
	}
	if !synchronizer.acceptLocked(record.ID, sequence) {
		return updated, nil
	}
	index := synchronizer.indexOf(record.ID)
	if index < 0 {
		synchronizer.logger.Debug("updated person no longer present", "id", record.ID.String())
		return updated, nil
	}
	synchronizer.records[index] = updated
	synchronizer.dispatchLocked(Event{Kind: EventPut, ID: updated.ID, Record: updated})
	return updated, nil
}

// Remove deletes the record on the server and then locally.
func (synchronizer *Synchronizer) Remove(ctx context.Context, id person.ID) error {
	if id.IsZero() {
		err := fmt.Errorf("remove person: %w", ErrMissingIdentifier)
		synchronizer.logger.Error("removing person failed", "error", err)
		return err
	}
	sequence, err := synchronizer.issue()
	if err != nil {
		return err
	}

	if err := synchronizer.remote.Delete(ctx, id); err != nil {
		synchronizer.logger.Error("removing person failed", "id", id.String(), "error", err)
		return err
	}

	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return ErrClosed
	}
	if !synchronizer.acceptLocked(id, sequence) {
		return nil
	}
	index := synchronizer.indexOf(id)
	if index < 0 {
		return nil
	}
	synchronizer.records = slices.Delete(synchronizer.records, index, index+1)
	synchronizer.dispatchLocked(Event{Kind: EventRemoved, ID: id})
	return nil
}

// issue hands out the sequence number for a new call, or ErrClosed.
func (synchronizer *Synchronizer) issue() (uint64, error) {
	synchronizer.mutex.Lock()
	defer synchronizer.mutex.Unlock()
	if synchronizer.closed {
		return 0, ErrClosed
	}
	synchronizer.sequence++
	return synchronizer.sequence, nil
}

// acceptLocked decides whether a result for id issued at sequence may
// be applied, and records it as the standing result if so. Only calls
// for the same identifier are compared; loads are reconciled separately
// by mergeNewerLocked. Under LastCompletedWins every result is accepted.
func (synchronizer *Synchronizer) acceptLocked(id person.ID, sequence uint64) bool {
	if synchronizer.ordering != LatestIssuedWins {
		return true
	}
	if sequence < synchronizer.applied[id] {
		synchronizer.logger.Debug("discarding superseded result",
			"id", id.String(),
			"sequence", sequence,
		)
		return false
	}
	synchronizer.applied[id] = sequence
	return true
}

// mergeNewerLocked adjusts a freshly listed collection so that
// mutations issued after the load keep their effect: records changed
// later keep their local version, records removed later stay removed,
// and records created later are appended.
func (synchronizer *Synchronizer) mergeNewerLocked(records []person.Record, loadSequence uint64) []person.Record {
	merged := make([]person.Record, 0, len(records))
	seen := make(map[person.ID]bool, len(records))
	for _, record := range records {
		seen[record.ID] = true
		if synchronizer.applied[record.ID] <= loadSequence {
			merged = append(merged, record)
			continue
		}
		if index := synchronizer.indexOf(record.ID); index >= 0 {
			merged = append(merged, synchronizer.records[index])
		}
	}
	for _, record := range synchronizer.records {
		if !seen[record.ID] && synchronizer.applied[record.ID] > loadSequence {
			merged = append(merged, record)
		}
	}
	return merged
}

func (synchronizer *Synchronizer) indexOf(id person.ID) int {
	return slices.IndexFunc(synchronizer.records, func(record person.Record) bool {
		return record.ID == id
	})
}

// dispatchLocked delivers an event without blocking. It runs under the
// mutex so Close cannot close a channel during a send.
func (synchronizer *Synchronizer) dispatchLocked(event Event) {
	for _, subscriber := range synchronizer.subscribers {
		select {
		case subscriber <- event:
		default:
			// Buffer full: drop. The subscriber re-reads Records.
		}
	}
}

func validateCollection(records []person.Record) error {
	seen := make(map[person.ID]int, len(records))
	for index, record := range records {
		if record.ID.IsZero() {
			return fmt.Errorf("%w: record %d (%q) has no id", ErrInvalidCollection, index, record.Name)
		}
		if first, duplicate := seen[record.ID]; duplicate {
			return fmt.Errorf("%w: id %s appears at positions %d and %d", ErrInvalidCollection, record.ID, first, index)
		}
		seen[record.ID] = index
	}
	return nil
}
