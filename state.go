// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

import "strconv"

// State classifies a Timer at a given tick.
type State uint8

const (
	// StateRunning indicates a timer whose interval has not yet elapsed.
	StateRunning State = iota // running

	// StateExpired indicates a timer whose interval has elapsed, and whose
	// one-shot expiration has not been consumed.
	StateExpired // expired

	// StateEvaluated indicates a timer whose one-shot expiration was already
	// reported by Engine.IsExpiredEvaluatedOnce.
	StateEvaluated // evaluated
)

var stateNames = [...]string{
	StateRunning:   "running",
	StateExpired:   "expired",
	StateEvaluated: "evaluated",
}

// String returns the lowercase name of this State.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "State(" + strconv.Itoa(int(s)) + ")"
}

// MarshalText produces the string value of this State.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
