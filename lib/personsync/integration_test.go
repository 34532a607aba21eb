// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bureau-foundation/persons/lib/personapi"
	"github.com/bureau-foundation/persons/lib/personmock"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/testutil"
)

// newBackedSynchronizer wires a Synchronizer to a mock backend over
// real HTTP.
func newBackedSynchronizer(t *testing.T, seed ...person.Record) (*personsync.Synchronizer, *personmock.Server) {
	t.Helper()
	backend := personmock.New(personmock.Config{}, seed...)
	httpServer := httptest.NewServer(backend.Handler())
	t.Cleanup(httpServer.Close)

	transport, err := personapi.NewHTTPClient(personapi.HTTPConfig{
		BaseURL: httpServer.URL,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	synchronizer := personsync.New(personapi.NewClient(transport, ""), nil)
	t.Cleanup(synchronizer.Close)
	return synchronizer, backend
}

func TestSynchronizerAgainstBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	synchronizer, backend := newBackedSynchronizer(t,
		person.Record{Name: "Ann", Email: "a@x.com"},
		person.Record{Name: "Bo", Email: "b@x.com"},
	)
	if err := synchronizer.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	name := testutil.UniqueID("Cy")
	var session personsync.EditSession
	session.StartAdd()
	if err := session.UpdateField(person.FieldName, name); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	created, err := session.Commit(ctx, synchronizer)
	if err != nil {
		t.Fatalf("Commit add: %v", err)
	}

	if err := synchronizer.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, ok := synchronizer.Get(created.ID)
	if !ok || got != created {
		t.Fatalf("after reload Get = %+v, %v; want %+v", got, ok, created)
	}

	bo := synchronizer.Records()[1]
	if err := session.StartEdit(bo); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if err := session.UpdateField(person.FieldName, "Bob"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if _, err := session.Commit(ctx, synchronizer); err != nil {
		t.Fatalf("Commit edit: %v", err)
	}
	stored := backend.Records()
	if stored[1].ID != bo.ID || stored[1].Name != "Bob" {
		t.Fatalf("backend record = %+v; the update must reach /api/persons/%s/", stored[1], bo.ID)
	}

	if err := synchronizer.Remove(ctx, bo.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := synchronizer.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := synchronizer.Get(bo.ID); ok {
		t.Fatal("removed record still present after Load")
	}
	if filtered := personsync.Filter(synchronizer.Records(), "an"); len(filtered) != 1 || filtered[0].Name != "Ann" {
		t.Fatalf("Filter(an) = %+v", filtered)
	}
}

func TestCreateFailureAgainstBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	synchronizer, backend := newBackedSynchronizer(t, person.Record{Name: "Ann"})
	if err := synchronizer.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	backend.FailNext(1, http.StatusInternalServerError)

	var session personsync.EditSession
	session.StartAdd()
	if err := session.UpdateField(person.FieldName, "Bo"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	_, err := session.Commit(ctx, synchronizer)
	var failure *personapi.NetworkFailure
	if !errors.As(err, &failure) || failure.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Commit error = %v, want HTTP 500 NetworkFailure", err)
	}
	if !session.Open() || session.Buffer().Name != "Bo" {
		t.Fatal("dialog or draft lost after failed commit")
	}
	if synchronizer.Len() != 1 {
		t.Fatalf("collection has %d records, want 1", synchronizer.Len())
	}
}
