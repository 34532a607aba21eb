// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the persons
// packages.
//
// [RequireReceive], [RequireClosed] and [RequireNoReceive] wrap the
// select-with-timeout pattern so that tests exercising the
// synchronizer's event channels and the mock backend's
// fault injection do not each carry their own time.After calls. They are
// the only place in the test suite where wall-clock timeouts are used.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, such as person names that must be distinguishable in
// a shared mock backend.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
