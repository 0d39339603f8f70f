// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/fixed"
)

// =============================================================================
// Pool - Single Slot Allocation
// =============================================================================

// TestPoolBasic allocates every slot, overflows, frees and reallocates.
func TestPoolBasic(t *testing.T) {
	const capacity = 3
	p := fixed.NewPool(make([]int, capacity))

	if !p.IsEmpty() || p.IsFull() {
		t.Fatalf("new pool: IsEmpty=%v IsFull=%v", p.IsEmpty(), p.IsFull())
	}

	handles := make([]fixed.Handle, 0, capacity)
	for i := range capacity {
		h, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc(%d): %v", i, err)
		}
		*p.Get(h) = i * 10
		handles = append(handles, h)
	}
	if !p.IsFull() || p.Len() != capacity || p.Available() != 0 {
		t.Fatalf("after %d Allocs: IsFull=%v Len=%d Available=%d",
			capacity, p.IsFull(), p.Len(), p.Available())
	}

	for range capacity {
		if _, err := p.Alloc(); !errors.Is(err, fixed.ErrOutOfSlots) {
			t.Fatalf("Alloc on full: got %v, want ErrOutOfSlots", err)
		}
	}
	if !p.IsFull() {
		t.Fatal("failed Alloc changed IsFull")
	}

	// Distinct slots, each holding what was stored
	seen := map[int]bool{}
	for i, h := range handles {
		if seen[h.Index()] {
			t.Fatalf("slot %d handed out twice", h.Index())
		}
		seen[h.Index()] = true
		if got := *p.Get(h); got != i*10 {
			t.Fatalf("Get(handle %d): got %d, want %d", i, got, i*10)
		}
	}

	for i := len(handles) - 1; i >= 0; i-- {
		if err := p.Free(handles[i]); err != nil {
			t.Fatalf("Free(%d): %v", i, err)
		}
	}
	if !p.IsEmpty() {
		t.Fatalf("after Free all: Len=%d, want 0", p.Len())
	}

	for i := range capacity {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("re-Alloc(%d): %v", i, err)
		}
	}
	if !p.IsFull() {
		t.Fatal("IsFull after re-Alloc: got false, want true")
	}
}

// TestPoolLIFOReuse verifies the most recently freed slot is reused first.
func TestPoolLIFOReuse(t *testing.T) {
	p := fixed.NewPool(make([]string, 5))

	var hs []fixed.Handle
	for range 5 {
		h, _ := p.Alloc()
		hs = append(hs, h)
	}
	if hs[0].Index() != 0 {
		t.Fatalf("first Alloc: got slot %d, want 0", hs[0].Index())
	}

	for _, i := range []int{3, 1} {
		if err := p.Free(hs[i]); err != nil {
			t.Fatalf("Free(slot %d): %v", hs[i].Index(), err)
		}
	}

	for _, want := range []int{hs[1].Index(), hs[3].Index()} {
		h, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		if h.Index() != want {
			t.Fatalf("Alloc after Free: got slot %d, want %d", h.Index(), want)
		}
	}
}

// TestPoolInvalidHandles rejects stale, doubled and fabricated handles.
func TestPoolInvalidHandles(t *testing.T) {
	p := fixed.NewPool(make([]int, 3))
	other := fixed.NewPool(make([]int, 8))

	h, _ := p.Alloc()
	if err := p.Free(h); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if err := p.Free(h); !errors.Is(err, fixed.ErrInvalidHandle) {
		t.Fatalf("double Free: got %v, want ErrInvalidHandle", err)
	}

	// The slot is reused; the old handle must not free the new allocation
	h2, _ := p.Alloc()
	if h2.Index() != h.Index() {
		t.Fatalf("reuse: got slot %d, want %d", h2.Index(), h.Index())
	}
	if err := p.Free(h); !errors.Is(err, fixed.ErrInvalidHandle) {
		t.Fatalf("stale Free: got %v, want ErrInvalidHandle", err)
	}
	if p.Get(h) != nil || p.Slice(h) != nil {
		t.Fatal("stale handle still resolves to storage")
	}
	if p.Get(h2) == nil {
		t.Fatal("live handle does not resolve")
	}

	if err := p.Free(fixed.Handle{}); !errors.Is(err, fixed.ErrInvalidHandle) {
		t.Fatalf("Free(zero Handle): got %v, want ErrInvalidHandle", err)
	}

	// Out of range for p
	var far fixed.Handle
	for range 8 {
		far, _ = other.Alloc()
	}
	if err := p.Free(far); !errors.Is(err, fixed.ErrInvalidHandle) {
		t.Fatalf("Free(out-of-range handle): got %v, want ErrInvalidHandle", err)
	}

	if p.Len() != 1 {
		t.Fatalf("Len after rejected Frees: got %d, want 1", p.Len())
	}
}

// =============================================================================
// Pool - Contiguous Allocation
// =============================================================================

// TestPoolAllocContiguous allocates runs and views them as slices.
func TestPoolAllocContiguous(t *testing.T) {
	p := fixed.NewPool(make([]byte, 8))

	h, err := p.AllocContiguous(3)
	if err != nil {
		t.Fatalf("AllocContiguous(3): %v", err)
	}
	if h.Len() != 3 || p.Len() != 3 {
		t.Fatalf("AllocContiguous(3): h.Len=%d pool.Len=%d", h.Len(), p.Len())
	}

	block := p.Slice(h)
	if len(block) != 3 || cap(block) != 3 {
		t.Fatalf("Slice: len=%d cap=%d, want 3/3", len(block), cap(block))
	}
	copy(block, "abc")
	if got := string(p.Slots()[h.Index() : h.Index()+3]); got != "abc" {
		t.Fatalf("Slots view: got %q, want %q", got, "abc")
	}

	// The run's slots are no longer handed out singly
	for range 5 {
		s, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		if s.Index() >= h.Index() && s.Index() < h.Index()+3 {
			t.Fatalf("Alloc returned slot %d inside run [%d,%d)", s.Index(), h.Index(), h.Index()+3)
		}
	}
	if !p.IsFull() {
		t.Fatal("IsFull: got false, want true")
	}

	if err := p.Free(h); err != nil {
		t.Fatalf("Free(run): %v", err)
	}
	if p.Available() != 3 {
		t.Fatalf("Available after Free(run): got %d, want 3", p.Available())
	}
	if err := p.Free(h); !errors.Is(err, fixed.ErrInvalidHandle) {
		t.Fatalf("double Free(run): got %v, want ErrInvalidHandle", err)
	}
}

// TestPoolAllocContiguousErrors covers argument and capacity failures.
func TestPoolAllocContiguousErrors(t *testing.T) {
	p := fixed.NewPool(make([]int, 4))

	if _, err := p.AllocContiguous(0); !errors.Is(err, fixed.ErrInvalidArgument) {
		t.Fatalf("AllocContiguous(0): got %v, want ErrInvalidArgument", err)
	}
	if _, err := p.AllocContiguous(-2); !errors.Is(err, fixed.ErrInvalidArgument) {
		t.Fatalf("AllocContiguous(-2): got %v, want ErrInvalidArgument", err)
	}
	if _, err := p.AllocContiguous(5); !errors.Is(err, fixed.ErrOutOfSlots) {
		t.Fatalf("AllocContiguous(5) of 4: got %v, want ErrOutOfSlots", err)
	}
	if h, err := p.AllocContiguous(4); err != nil || h.Index() != 0 {
		t.Fatalf("AllocContiguous(4): got (%d, %v), want (0, nil)", h.Index(), err)
	}
}

// TestPoolFragmentation verifies a fragmented pool refuses a run even with
// enough free slots, and that the failed search leaves the free order intact.
func TestPoolFragmentation(t *testing.T) {
	p := fixed.NewPool(make([]int, 6))

	hs := make([]fixed.Handle, 6)
	for i := range hs {
		hs[i], _ = p.Alloc()
	}
	// Free slots 0, 2, 4: three free, no two adjacent
	for _, i := range []int{0, 2, 4} {
		p.Free(hs[i])
	}

	if _, err := p.AllocContiguous(2); !errors.Is(err, fixed.ErrOutOfSlots) {
		t.Fatalf("AllocContiguous(2) on fragmented pool: got %v, want ErrOutOfSlots", err)
	}
	if p.Available() != 3 {
		t.Fatalf("Available after failed search: got %d, want 3", p.Available())
	}

	// LIFO order survives the failed search: 4 was freed last
	var got []int
	for range 3 {
		h, _ := p.Alloc()
		got = append(got, h.Index())
	}
	if diff := cmp.Diff([]int{4, 2, 0}, got); diff != "" {
		t.Fatalf("Alloc order after failed search (-want +got):\n%s", diff)
	}
}

// TestPoolAllocContiguousProperty checks on random free patterns that
// AllocContiguous(k) succeeds iff k adjacent slots are free, that the run
// it returns was entirely free, and that a failure changes nothing.
func TestPoolAllocContiguousProperty(t *testing.T) {
	const capacity = 10
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := range 500 {
		p := fixed.NewPool(make([]int, capacity))
		hs := make([]fixed.Handle, capacity)
		for i := range hs {
			hs[i], _ = p.Alloc()
		}
		free := make([]bool, capacity)
		for i := range capacity {
			if rng.IntN(2) == 0 {
				free[hs[i].Index()] = true
				p.Free(hs[i])
			}
		}
		k := 1 + rng.IntN(capacity)

		before := p.Available()
		h, err := p.AllocContiguous(k)

		want := longestRun(free) >= k
		if (err == nil) != want {
			t.Fatalf("trial %d: free=%v k=%d: got err=%v, want success=%v", trial, free, k, err, want)
		}
		if err != nil {
			if !errors.Is(err, fixed.ErrOutOfSlots) {
				t.Fatalf("trial %d: got %v, want ErrOutOfSlots", trial, err)
			}
			if p.Available() != before {
				t.Fatalf("trial %d: failed search changed Available: %d -> %d", trial, before, p.Available())
			}
			continue
		}
		for i := h.Index(); i < h.Index()+k; i++ {
			if !free[i] {
				t.Fatalf("trial %d: run [%d,%d) includes allocated slot %d", trial, h.Index(), h.Index()+k, i)
			}
		}
		if p.Available() != before-k {
			t.Fatalf("trial %d: Available: got %d, want %d", trial, p.Available(), before-k)
		}

		// Every other free slot is still allocatable exactly once
		var rest []int
		for !p.IsFull() {
			s, _ := p.Alloc()
			rest = append(rest, s.Index())
		}
		slices.Sort(rest)
		var wantRest []int
		for i, f := range free {
			if f && (i < h.Index() || i >= h.Index()+k) {
				wantRest = append(wantRest, i)
			}
		}
		if diff := cmp.Diff(wantRest, rest); diff != "" {
			t.Fatalf("trial %d: remaining free slots (-want +got):\n%s", trial, diff)
		}
	}
}

func longestRun(free []bool) int {
	best, cur := 0, 0
	for _, f := range free {
		if f {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

func TestNewPoolPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewPool(nil): expected panic")
		}
	}()
	fixed.NewPool[int](nil)
}
