// Package waitlist provides a bounded priority queue of claims on a single record.
//
// A WaitList is an array-backed binary min-heap with a fixed Capacity. Claims are ordered by
// priority (lower value first) and then by arrival tick (earlier first), which makes equal-priority
// claims first-in first-out. Inserting into a full WaitList is rejected with ErrWaitListFull and
// leaves the heap untouched.
//
// Arrival ticks come from an ArrivalClock supplied by the caller, so ordering never depends on
// wall-clock time.
package waitlist
