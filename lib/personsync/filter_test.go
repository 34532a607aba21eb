// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

func names(records []person.Record) []string {
	result := make([]string, len(records))
	for i, record := range records {
		result[i] = record.Name
	}
	return result
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	t.Parallel()

	records := []person.Record{bob, ann, bo}
	got := Filter(records, "")
	if len(got) != len(records) || &got[0] != &records[0] {
		t.Fatal("Filter with empty term did not return the input slice")
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	records := []person.Record{ann, bo}
	tests := []struct {
		term string
		want []string
	}{
		{term: "ann", want: []string{"Ann"}},
		{term: "ANN", want: []string{"Ann"}},
		{term: "Y.IO", want: []string{"Bo"}},
		{term: "b", want: []string{"Bo"}},
		{term: "@", want: []string{"Ann", "Bo"}},
		{term: "zzz", want: []string{}},
		// No trimming: the space is part of the needle.
		{term: "ann ", want: []string{}},
		{term: " ", want: []string{}},
	}
	for _, test := range tests {
		got := names(Filter(records, test.term))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Filter(%q) mismatch (-want +got):\n%s", test.term, diff)
		}
	}
}

func TestFilterExactness(t *testing.T) {
	t.Parallel()

	records := []person.Record{
		ann,
		bob,
		bo,
		{ID: person.NumericID(4), Name: "Zoë", Email: "ZOE@Example.org"},
	}
	for _, term := range []string{"a", "B", "o", "x.io", "example", "ë", "nope"} {
		got := Filter(records, term)
		var want []person.Record
		for _, record := range records {
			if Matches(record, term) {
				want = append(want, record)
			}
		}
		if len(got) != len(want) {
			t.Errorf("Filter(%q) returned %d records, predicate matches %d", term, len(got), len(want))
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("Filter(%q)[%d] = %q, want %q (order not preserved)", term, i, got[i].Name, want[i].Name)
			}
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	records := []person.Record{ann, bob, bo}
	before := append([]person.Record(nil), records...)
	Filter(records, "bo")
	if diff := cmp.Diff(before, records, cmp.Comparer(func(a, b person.Record) bool { return a == b })); diff != "" {
		t.Errorf("Filter modified its input:\n%s", diff)
	}
}

func TestFilterScenarioAn(t *testing.T) {
	t.Parallel()

	records := []person.Record{
		{ID: person.NumericID(1), Name: "Ann", Email: "a@x.com"},
		{ID: person.NumericID(2), Name: "Bo", Email: "b@x.com"},
	}
	got := Filter(records, "an")
	if len(got) != 1 || got[0].ID != person.NumericID(1) {
		t.Errorf("Filter(an) = %v, want only id 1", names(got))
	}
}
