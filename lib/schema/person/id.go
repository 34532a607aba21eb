// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package person

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ID identifies a record on the server. The zero value is the absent
// identifier carried by drafts that have not been created yet.
//
// IDs are opaque and comparable with ==: two IDs are equal when their
// text is equal, whether the server sent 7 or "7".
type ID struct {
	value string
}

// ErrMissingID is returned wherever an operation needs a server
// identifier and the record has none.
var ErrMissingID = errors.New("person has no identifier")

// NumericID returns the identifier for an integer server key.
func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10)}
}

// StringID returns the identifier for a string server key. An empty
// string yields the zero ID.
func StringID(s string) ID {
	return ID{value: s}
}

// ParseID converts user input (a CLI argument, a path segment) into an
// ID. Empty input is an error.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, errors.New("person id: empty")
	}
	return StringID(s), nil
}

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool { return id.value == "" }

// String returns the identifier in the form used in request paths.
func (id ID) String() string { return id.value }

// MarshalJSON encodes identifiers in canonical decimal form as JSON
// numbers and all others as strings. The zero ID encodes as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.isInteger() {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("person id: %w", err)
		}
		*id = StringID(s)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("person id: expected number or string, got %s", data)
	}
	n, err := number.Int64()
	if err != nil {
		return fmt.Errorf("person id: %q is not an integer", number.String())
	}
	*id = NumericID(n)
	return nil
}

// isInteger reports whether the identifier is an integer written the
// way strconv would write it, so encoding it as a number loses nothing.
func (id ID) isInteger() bool {
	n, err := strconv.ParseInt(id.value, 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == id.value
}
