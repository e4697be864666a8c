// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package swtimer

// fakeTicks is a hand-advanced Clock for tests. Add wraps exactly like
// a hardware counter.
type fakeTicks struct {
	now uint32
}

func (ft *fakeTicks) Ticks() uint32 {
	return ft.now
}

func (ft *fakeTicks) Add(d uint32) {
	ft.now += d
}

func (ft *fakeTicks) Set(t uint32) {
	ft.now = t
}
