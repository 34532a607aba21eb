// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package personapi is the client for the /api/persons/ REST
// collection.
//
// Two layers:
//
//   - [HTTPClient] is the transport collaborator. It owns the base URL,
//     the static auth token, the request timeout and per-request
//     correlation IDs, and exposes Get/Post/Put/Delete returning raw
//     response bodies. Any failure to complete a request, and any
//     non-2xx response, is reported as a [*NetworkFailure].
//
//   - [Client] maps the four collection operations onto a [Transport]
//     and decodes person records. It satisfies the synchronizer's
//     remote interface.
//
// Request paths are built by [CollectionPath] and [RecordPath], which
// are pure so that path construction can be tested without a server.
package personapi
