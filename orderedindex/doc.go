// Package orderedindex provides a Red-Black tree over integer keys.
//
// The tree keeps keys sorted and answers nearest-key queries along a single search path.
// It carries no payload: callers keep their records elsewhere and use the Index for ordering only.
//
// Nodes live in an arena (a slice) and reference each other by index. Slot 0 is a sentinel that
// stands for "no node"; it is always black, so an absent child is black by definition.
// Parent indices are back-references for rebalancing only, they never imply ownership.
//
// Every rotation in which the rotated node and the node taking its place have different colors
// counts as a "flip". FlipCount reports the running total; it never decreases.
//
// An Index is not safe for concurrent use.
package orderedindex
