// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !swtimer_nocheck

package swtimer

// checksEnabled turns on precondition checks. Build with the swtimer_nocheck
// tag to compile them out.
const checksEnabled = true
