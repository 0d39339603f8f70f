// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock is the control flow signal shared with the iox ecosystem.
// Full and empty conditions wrap it, so [IsWouldBlock] reports true for
// [ErrCapacityExceeded], [ErrEmpty] and everything derived from them.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrCapacityExceeded indicates a push or write found the container full.
//
// This is backpressure rather than a failure. The container state is
// unchanged and the caller may retry after draining.
var ErrCapacityExceeded = fmt.Errorf("fixed: capacity exceeded: %w", ErrWouldBlock)

// ErrEmpty indicates a pop or read found nothing to return.
var ErrEmpty = fmt.Errorf("fixed: empty: %w", ErrWouldBlock)

// ErrOutOfSlots indicates a pool could not satisfy an allocation, either
// because too few slots are free or, for contiguous requests, because no
// run of adjacent free slots is long enough.
var ErrOutOfSlots = fmt.Errorf("fixed: out of slots: %w", ErrCapacityExceeded)

// ErrOutOfCapacity indicates a map could not take a new key because its
// node pool is exhausted.
var ErrOutOfCapacity = fmt.Errorf("fixed: map out of capacity: %w", ErrOutOfSlots)

var (
	// ErrNotFound indicates a missing key or a reference that is not a
	// member of the list it was given to.
	ErrNotFound = errors.New("fixed: not found")

	// ErrInvalidArgument indicates a request that can never succeed,
	// such as a zero-length contiguous allocation.
	ErrInvalidArgument = errors.New("fixed: invalid argument")

	// ErrInvalidHandle indicates a handle that is out of range, stale,
	// already freed, or was issued by another pool.
	ErrInvalidHandle = errors.New("fixed: invalid handle")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
