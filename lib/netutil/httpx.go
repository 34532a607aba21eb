// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading for the persons
// API client and its mock backend.
//
// Every response body read goes through these helpers so a misbehaving
// server cannot make the client allocate without limit. They are meant
// for JSON API bodies, which are small; nothing in this module streams.
package netutil

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// MaxResponseSize is the bound on JSON API response body reads: 64 MB.
// A full person collection is orders of magnitude smaller.
const MaxResponseSize int64 = 64 << 20

// MaxErrorBodySize bounds how much of an error response is kept. It is
// far above any validation report the persons API produces.
const MaxErrorBodySize int64 = 64 << 10

// MaxErrorExcerpt is the number of bytes of a failed response kept for
// error messages.
const MaxErrorExcerpt = 512

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ReadErrorBody reads a non-2xx response body up to MaxErrorBodySize
// bytes. Read errors are ignored: a partial or empty body is still
// useful for diagnosis.
func ReadErrorBody(body io.Reader) []byte {
	data, _ := io.ReadAll(io.LimitReader(body, MaxErrorBodySize))
	return data
}

// Excerpt trims data and cuts it to MaxErrorExcerpt bytes without
// splitting a multi-byte rune. Truncated excerpts end in "...".
func Excerpt(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) <= MaxErrorExcerpt {
		return string(data)
	}
	cut := MaxErrorExcerpt
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut]) + "..."
}
