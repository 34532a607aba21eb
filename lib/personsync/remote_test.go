// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

var errServerDown = errors.New("connection refused")

// fakeRemote is an in-memory Remote. By default it behaves like a
// well-formed server: ids are assigned sequentially and every call
// succeeds. Tests override individual operations through the hook
// fields, which run in place of the default behavior.
type fakeRemote struct {
	mutex   sync.Mutex
	records []person.Record
	nextID  int64
	calls   []string

	listHook   func(ctx context.Context) ([]person.Record, error)
	createHook func(ctx context.Context, draft person.Record) (person.Record, error)
	updateHook func(ctx context.Context, record person.Record) (person.Record, error)
	deleteHook func(ctx context.Context, id person.ID) error
}

func newFakeRemote(records ...person.Record) *fakeRemote {
	remote := &fakeRemote{records: slices.Clone(records)}
	for _, record := range records {
		if n, err := strconv.ParseInt(record.ID.String(), 10, 64); err == nil && n > remote.nextID {
			remote.nextID = n
		}
	}
	return remote
}

func (remote *fakeRemote) record(call string) {
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	remote.calls = append(remote.calls, call)
}

func (remote *fakeRemote) Calls() []string {
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	return slices.Clone(remote.calls)
}

func (remote *fakeRemote) List(ctx context.Context) ([]person.Record, error) {
	remote.record("list")
	if remote.listHook != nil {
		return remote.listHook(ctx)
	}
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	return slices.Clone(remote.records), nil
}

func (remote *fakeRemote) Create(ctx context.Context, draft person.Record) (person.Record, error) {
	remote.record("create")
	if remote.createHook != nil {
		return remote.createHook(ctx, draft)
	}
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	remote.nextID++
	draft.ID = person.NumericID(remote.nextID)
	remote.records = append(remote.records, draft)
	return draft, nil
}

func (remote *fakeRemote) Update(ctx context.Context, record person.Record) (person.Record, error) {
	remote.record("update " + record.ID.String())
	if remote.updateHook != nil {
		return remote.updateHook(ctx, record)
	}
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	for index := range remote.records {
		if remote.records[index].ID == record.ID {
			remote.records[index] = record
			return record, nil
		}
	}
	return person.Record{}, errors.New("HTTP 404")
}

func (remote *fakeRemote) Delete(ctx context.Context, id person.ID) error {
	remote.record("delete " + id.String())
	if remote.deleteHook != nil {
		return remote.deleteHook(ctx, id)
	}
	remote.mutex.Lock()
	defer remote.mutex.Unlock()
	remote.records = slices.DeleteFunc(remote.records, func(record person.Record) bool {
		return record.ID == id
	})
	return nil
}

var (
	ann = person.Record{ID: person.NumericID(1), Name: "Ann", Email: "ann@x.io"}
	bob = person.Record{ID: person.NumericID(2), Name: "Bob", Email: "bob@y.io"}
	bo  = person.Record{ID: person.NumericID(3), Name: "Bo", Email: "bo@y.io"}
)
