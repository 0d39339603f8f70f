// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package fixed

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the concurrent SPSC ring tests, whose element
// slots are ordered by atomix cursors the detector cannot observe.
const RaceEnabled = true
