// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
)

func TestTaskState(t *testing.T) {
	t.Parallel()

	tests := map[TaskState]struct {
		terminal    bool
		interrupted bool
		valid       bool
	}{
		TaskStateSubmitted:     {valid: true},
		TaskStateWorking:       {valid: true},
		TaskStateInputRequired: {interrupted: true, valid: true},
		TaskStateAuthRequired:  {interrupted: true, valid: true},
		TaskStateCompleted:     {terminal: true, valid: true},
		TaskStateCanceled:      {terminal: true, valid: true},
		TaskStateFailed:        {terminal: true, valid: true},
		TaskStateRejected:      {terminal: true, valid: true},
		TaskStateUnknown:       {valid: true},
		"":                     {},
		"paused":               {},
	}

	for state, tt := range tests {
		t.Run(string(state), func(t *testing.T) {
			t.Parallel()

			if got := state.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := state.IsInterrupted(); got != tt.interrupted {
				t.Errorf("IsInterrupted() = %v, want %v", got, tt.interrupted)
			}
			if got := state.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
