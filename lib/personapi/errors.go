// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkFailure describes a request that did not succeed: either it
// never produced a response (StatusCode is 0 and Err is set), or the
// server answered with a non-2xx status (StatusCode and Body are set).
type NetworkFailure struct {
	Method string
	Path   string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Body is a short excerpt of the error response for messages.
	Body string

	// RawBody is the error response as received, up to
	// netutil.MaxErrorBodySize bytes.
	RawBody []byte

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	Err error
}

func (failure *NetworkFailure) Error() string {
	if failure.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", failure.Method, failure.Path, failure.Err)
	}
	if failure.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", failure.Method, failure.Path, failure.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", failure.Method, failure.Path, failure.StatusCode, failure.Body)
}

func (failure *NetworkFailure) Unwrap() error {
	return failure.Err
}

// Completed reports whether the server sent a response at all.
func (failure *NetworkFailure) Completed() bool {
	return failure.StatusCode != 0
}

// IsNotFound reports whether err is a NetworkFailure with status 404.
func IsNotFound(err error) bool {
	var failure *NetworkFailure
	return errors.As(err, &failure) && failure.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not
// a completed NetworkFailure.
func StatusCode(err error) int {
	var failure *NetworkFailure
	if errors.As(err, &failure) {
		return failure.StatusCode
	}
	return 0
}

// FieldErrors extracts per-field messages from a 400 response whose body
// maps field names to message lists, the shape the persons API uses for
// validation failures. A "detail" or "non_field_errors" entry is
// reported under the empty key. Returns nil when err is not such a
// response or the body does not parse.
func FieldErrors(err error) map[string]string {
	var failure *NetworkFailure
	if !errors.As(err, &failure) || failure.StatusCode != http.StatusBadRequest {
		return nil
	}
	raw := failure.RawBody
	if raw == nil {
		raw = []byte(failure.Body)
	}
	var body map[string]json.RawMessage
	if json.Unmarshal(raw, &body) != nil {
		return nil
	}
	result := make(map[string]string, len(body))
	for field, raw := range body {
		var messages []string
		if json.Unmarshal(raw, &messages) != nil {
			var message string
			if json.Unmarshal(raw, &message) != nil {
				continue
			}
			messages = []string{message}
		}
		if field == "detail" || field == "non_field_errors" {
			field = ""
		}
		result[field] = strings.Join(messages, "; ")
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
