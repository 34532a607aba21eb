// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personapi

import (
	"net/url"
	"strings"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

// DefaultCollectionPath is where the reference backend mounts the
// person collection.
const DefaultCollectionPath = "/api/persons/"

// CollectionPath normalizes a configured collection path to a leading
// and trailing slash. Empty input yields DefaultCollectionPath.
func CollectionPath(collection string) string {
	collection = strings.Trim(collection, "/")
	if collection == "" {
		return DefaultCollectionPath
	}
	return "/" + collection + "/"
}

// RecordPath returns the path of one record under collection, with the
// identifier path-escaped and substituted:
// RecordPath("/api/persons/", NumericID(7)) is "/api/persons/7/". A zero
// ID fails with person.ErrMissingID.
func RecordPath(collection string, id person.ID) (string, error) {
	if id.IsZero() {
		return "", person.ErrMissingID
	}
	return CollectionPath(collection) + url.PathEscape(id.String()) + "/", nil
}
