// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package personmock is an in-memory implementation of the
// /api/persons/ REST collection. It is a drop-in backend for
// development and for tests of the client and synchronizer: same paths,
// same wire format, sequential integer identifiers, list in insertion
// order.
//
// Beyond the four collection operations the server validates request
// bodies (400 with a field error map), checks an optional static token
// (401), exposes Prometheus metrics on /metrics and a /healthz probe,
// and can inject faults: a queue of forced error statuses
// ([Server.FailNext]) and a fixed artificial latency that honors request
// cancellation.
//
// Seed data is JSONC: a JSON array of records that may carry comments
// and trailing commas. See [ParseSeed].
package personmock
