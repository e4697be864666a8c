// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build swtimer_nocheck

package swtimer

// checksEnabled is false in swtimer_nocheck builds. Violations are not
// reported, and a nil Timer or Clock fails as an ordinary nil dereference.
const checksEnabled = false
