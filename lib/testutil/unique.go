// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strconv"
	"sync/atomic"
)

var sequence atomic.Uint64

// UniqueID returns prefix followed by "-" and a process-wide counter, so
// records created by different subtests against one backend never share
// a name.
//
//	name := testutil.UniqueID("ann") // "ann-1", "ann-2", ...
func UniqueID(prefix string) string {
	return prefix + "-" + strconv.FormatUint(sequence.Add(1), 10)
}
