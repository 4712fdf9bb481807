package waitlist

import (
	"container/heap"
	"errors"
)

// Capacity is the maximum number of claims a WaitList holds.
const Capacity = 20

// ErrWaitListFull is returned by Insert when the WaitList already holds Capacity claims.
var ErrWaitListFull = errors.New("waitlist is full")

// ClaimEntry is one patron's pending claim.
type ClaimEntry struct {
	Patron   int
	Priority int
	Arrival  uint64
}

// Precedes reports whether c is served before other.
func (c ClaimEntry) Precedes(other ClaimEntry) bool {
	if c.Priority != other.Priority {
		return c.Priority < other.Priority
	}

	return c.Arrival < other.Arrival
}

// WaitList is a fixed-capacity min-heap of ClaimEntry. The zero value is an empty WaitList.
type WaitList struct {
	claims claimHeap
}

// New returns an empty WaitList.
func New() *WaitList {
	return &WaitList{}
}

// Insert adds entry and sifts it up into place.
// It returns ErrWaitListFull, without changing the WaitList, when Capacity is reached.
func (w *WaitList) Insert(entry ClaimEntry) error {
	if w.claims.n >= Capacity {
		return ErrWaitListFull
	}

	heap.Push(&w.claims, entry)

	return nil
}

// ExtractMin removes and returns the claim that is served next.
// It returns false if the WaitList is empty.
func (w *WaitList) ExtractMin() (ClaimEntry, bool) {
	if w.claims.n == 0 {
		return ClaimEntry{}, false
	}

	return heap.Pop(&w.claims).(ClaimEntry), true
}

// Drain extracts every claim in serving order and leaves the WaitList empty.
func (w *WaitList) Drain() []ClaimEntry {
	drained := make([]ClaimEntry, 0, w.claims.n)

	for {
		entry, ok := w.ExtractMin()
		if !ok {
			return drained
		}

		drained = append(drained, entry)
	}
}

// Len returns the number of claims.
func (w *WaitList) Len() int {
	return w.claims.n
}

// IsEmpty reports whether the WaitList holds no claims.
func (w *WaitList) IsEmpty() bool {
	return w.claims.n == 0
}

// Patrons returns the waiting patron ids in heap array order.
func (w *WaitList) Patrons() []int {
	patrons := make([]int, w.claims.n)
	for i := range patrons {
		patrons[i] = w.claims.entries[i].Patron
	}

	return patrons
}

// claimHeap implements heap.Interface on a fixed array, so it never grows.
type claimHeap struct {
	entries [Capacity]ClaimEntry
	n       int
}

func (h *claimHeap) Len() int { return h.n }

func (h *claimHeap) Less(i, j int) bool { return h.entries[i].Precedes(h.entries[j]) }

func (h *claimHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *claimHeap) Push(x any) {
	h.entries[h.n] = x.(ClaimEntry)
	h.n++
}

func (h *claimHeap) Pop() any {
	h.n--
	entry := h.entries[h.n]
	h.entries[h.n] = ClaimEntry{}

	return entry
}
