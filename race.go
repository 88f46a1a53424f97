// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package shmq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests against the shared segment,
// which trigger false positives: ordering here is carried by
// acquire/release on atomics living inside an mmap'd byte slice, memory
// the race detector cannot associate with the payload bytes it guards.
const RaceEnabled = true
