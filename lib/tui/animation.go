// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// HeatDecayDuration is how long a row glows after a change event.
const HeatDecayDuration = 3 * time.Second

// HeatTickInterval is the re-render interval while any rows are hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind distinguishes different types of changes for color selection.
type HeatKind int

const (
	// HeatPut indicates a row was created or updated (amber glow).
	HeatPut HeatKind = iota
	// HeatRemove indicates a row was removed (red glow).
	HeatRemove
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker maps row keys to ignition timestamps. Each change
// "ignites" a row, which then decays from full intensity to zero over
// the tracker's decay duration.
type HeatTracker struct {
	decay   time.Duration
	entries map[string]heatEntry
}

// NewHeatTracker creates an empty tracker. A non-positive decay uses
// [HeatDecayDuration].
func NewHeatTracker(decay time.Duration) *HeatTracker {
	if decay <= 0 {
		decay = HeatDecayDuration
	}
	return &HeatTracker{
		decay:   decay,
		entries: make(map[string]heatEntry),
	}
}

// Ignite records a change for a row, restarting its decay.
func (tracker *HeatTracker) Ignite(key string, kind HeatKind, now time.Time) {
	tracker.entries[key] = heatEntry{ignition: now, kind: kind}
}

// Heat returns the current intensity for a row: 1.0 at ignition,
// decaying linearly to 0.0.
func (tracker *HeatTracker) Heat(key string, now time.Time) float64 {
	entry, exists := tracker.entries[key]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= tracker.decay {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(tracker.decay)
}

// Kind returns the heat kind for a row. Only meaningful when Heat
// returns > 0.
func (tracker *HeatTracker) Kind(key string) HeatKind {
	return tracker.entries[key].kind
}

// HasHot reports whether any row still glows, dropping fully decayed
// entries as it goes. Drives the animation tick.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for key, entry := range tracker.entries {
		if now.Sub(entry.ignition) < tracker.decay {
			hot = true
			continue
		}
		delete(tracker.entries, key)
	}
	return hot
}
