// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personsync

import (
	"strings"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

// Matches reports whether term occurs in the record's name or email,
// ignoring case. The term is used as typed: no trimming, no
// tokenization. An empty term matches every record.
func Matches(record person.Record, term string) bool {
	return term == "" || containsLower(record, strings.ToLower(term))
}

// Filter returns the records that match term, in their original order.
// An empty term returns records itself. The input is never modified.
func Filter(records []person.Record, term string) []person.Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	matched := make([]person.Record, 0)
	for _, record := range records {
		if containsLower(record, needle) {
			matched = append(matched, record)
		}
	}
	return matched
}

func containsLower(record person.Record, needle string) bool {
	return strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Email), needle)
}
