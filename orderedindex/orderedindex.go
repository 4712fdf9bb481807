package orderedindex

import (
	"errors"
)

var (
	// ErrRedRoot is returned by CheckInvariants when the root is red.
	ErrRedRoot = errors.New("root node is red")

	// ErrRedRedViolation is returned by CheckInvariants when a red node has a red child.
	ErrRedRedViolation = errors.New("red node has a red child")

	// ErrBlackHeightMismatch is returned by CheckInvariants when two paths have different black-heights.
	ErrBlackHeightMismatch = errors.New("black-height differs between paths")

	// ErrKeyOrderViolation is returned by CheckInvariants when in-order traversal is not strictly ascending.
	ErrKeyOrderViolation = errors.New("keys are not in ascending order")

	// ErrBrokenParentLink is returned by CheckInvariants when a child does not point back to its parent.
	ErrBrokenParentLink = errors.New("child does not reference its parent")

	// ErrSizeMismatch is returned by CheckInvariants when Len does not match the reachable node count.
	ErrSizeMismatch = errors.New("node count does not match size")
)

type color bool

const (
	red   color = false
	black color = true
)

type direction int

const (
	left  direction = 0
	right direction = 1
)

func (d direction) opposite() direction {
	return 1 - d
}

// nilNode is the arena slot of the sentinel.
const nilNode = 0

type node struct {
	key    int
	parent int
	child  [2]int
	color  color
}

// Index is a Red-Black tree of unique integer keys.
type Index struct {
	nodes []node
	free  []int
	root  int
	size  int
	flips int
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		nodes: []node{{color: black}},
		root:  nilNode,
	}
}

// Len returns the number of keys in the Index.
func (ix *Index) Len() int {
	return ix.size
}

// FlipCount returns the number of rotations so far in which the rotated node's color differed
// from the color of the node that took its position.
func (ix *Index) FlipCount() int {
	return ix.flips
}

// Contains reports whether key is in the Index.
func (ix *Index) Contains(key int) bool {
	return ix.find(key) != nilNode
}

// RootKey returns the key at the root, or false when the Index is empty.
func (ix *Index) RootKey() (int, bool) {
	if ix.root == nilNode {
		return 0, false
	}

	return ix.nodes[ix.root].key, true
}

// Keys returns all keys in ascending order.
func (ix *Index) Keys() []int {
	keys := make([]int, 0, ix.size)
	stack := make([]int, 0, 32)

	for cur := ix.root; cur != nilNode || len(stack) > 0; {
		for cur != nilNode {
			stack = append(stack, cur)
			cur = ix.nodes[cur].child[left]
		}

		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		keys = append(keys, ix.nodes[cur].key)
		cur = ix.nodes[cur].child[right]
	}

	return keys
}

// Insert adds key as a red leaf and restores the Red-Black properties.
// It returns false, leaving the tree untouched, if key is already present.
func (ix *Index) Insert(key int) bool {
	parent := nilNode
	side := left

	for cur := ix.root; cur != nilNode; {
		parent = cur

		switch {
		case key < ix.nodes[cur].key:
			side = left
		case key > ix.nodes[cur].key:
			side = right
		default:
			return false
		}

		cur = ix.nodes[cur].child[side]
	}

	n := ix.alloc(key, parent)
	if parent == nilNode {
		ix.root = n
	} else {
		ix.nodes[parent].child[side] = n
	}

	ix.size++
	ix.insertFixup(n)

	return true
}

// Delete removes key and restores the Red-Black properties.
// A node with two children takes its in-order successor's key, and the successor node is spliced out instead.
// It returns false if key is not present.
func (ix *Index) Delete(key int) bool {
	target := ix.find(key)
	if target == nilNode {
		return false
	}

	spliced := target
	if ix.nodes[target].child[left] != nilNode && ix.nodes[target].child[right] != nilNode {
		spliced = ix.minimum(ix.nodes[target].child[right])
		ix.nodes[target].key = ix.nodes[spliced].key
	}

	promoted := ix.nodes[spliced].child[left]
	if promoted == nilNode {
		promoted = ix.nodes[spliced].child[right]
	}

	// The sentinel may take the promoted slot; its parent is set so the fixup can walk upwards.
	ix.replaceChild(ix.nodes[spliced].parent, spliced, promoted)
	ix.nodes[promoted].parent = ix.nodes[spliced].parent

	if ix.nodes[spliced].color == black {
		ix.deleteFixup(promoted)
	}

	ix.nodes[nilNode] = node{color: black}
	ix.release(spliced)
	ix.size--

	return true
}

// NearestKey descends from the root towards target and returns the key with the smallest absolute
// distance seen on that path, or target itself when it is found. It returns false for an empty Index.
//
// Only one path is inspected, so a closer key off that path is not considered.
func (ix *Index) NearestKey(target int) (int, bool) {
	if ix.root == nilNode {
		return 0, false
	}

	closest := ix.nodes[ix.root].key

	for cur := ix.root; cur != nilNode; {
		key := ix.nodes[cur].key
		if key == target {
			return key, true
		}

		if distance(key, target) < distance(closest, target) {
			closest = key
		}

		if target < key {
			cur = ix.nodes[cur].child[left]
		} else {
			cur = ix.nodes[cur].child[right]
		}
	}

	return closest, true
}

// CheckInvariants verifies the Red-Black properties, the key order, and the parent links.
// It returns nil for a valid tree, otherwise the sentinel error of the first violation found.
func (ix *Index) CheckInvariants() error {
	if ix.nodes[nilNode].color != black {
		return ErrRedRoot
	}

	if ix.root == nilNode {
		if ix.size != 0 {
			return ErrSizeMismatch
		}

		return nil
	}

	if ix.nodes[ix.root].color != black {
		return ErrRedRoot
	}

	if ix.nodes[ix.root].parent != nilNode {
		return ErrBrokenParentLink
	}

	count := 0
	if _, err := ix.checkSubtree(ix.root, &count); err != nil {
		return err
	}

	if count != ix.size {
		return ErrSizeMismatch
	}

	keys := ix.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return ErrKeyOrderViolation
		}
	}

	return nil
}

func (ix *Index) checkSubtree(n int, count *int) (int, error) {
	if n == nilNode {
		return 1, nil
	}

	*count++

	heights := [2]int{}
	for _, dir := range []direction{left, right} {
		c := ix.nodes[n].child[dir]
		if c == nilNode {
			heights[dir] = 1
			continue
		}

		if ix.nodes[c].parent != n {
			return 0, ErrBrokenParentLink
		}

		if ix.nodes[n].color == red && ix.nodes[c].color == red {
			return 0, ErrRedRedViolation
		}

		h, err := ix.checkSubtree(c, count)
		if err != nil {
			return 0, err
		}

		heights[dir] = h
	}

	if heights[left] != heights[right] {
		return 0, ErrBlackHeightMismatch
	}

	if ix.nodes[n].color == black {
		return heights[left] + 1, nil
	}

	return heights[left], nil
}

func (ix *Index) insertFixup(n int) {
	for ix.nodes[ix.nodes[n].parent].color == red {
		parent := ix.nodes[n].parent
		grandparent := ix.nodes[parent].parent
		side := ix.sideOf(parent)
		uncle := ix.nodes[grandparent].child[side.opposite()]

		if ix.nodes[uncle].color == red {
			ix.nodes[parent].color = black
			ix.nodes[uncle].color = black
			ix.nodes[grandparent].color = red
			n = grandparent

			continue
		}

		// inner grandchild: straighten into an outer one first
		if n == ix.nodes[parent].child[side.opposite()] {
			n = parent
			ix.rotate(n, side)
			parent = ix.nodes[n].parent
		}

		ix.nodes[parent].color = black
		ix.nodes[grandparent].color = red
		ix.rotate(grandparent, side.opposite())
	}

	ix.nodes[ix.root].color = black
}

func (ix *Index) deleteFixup(n int) {
	for n != ix.root && ix.nodes[n].color == black {
		parent := ix.nodes[n].parent
		side := left
		if ix.nodes[parent].child[left] != n {
			side = right
		}

		sibling := ix.nodes[parent].child[side.opposite()]
		if sibling == nilNode {
			n = parent
			continue
		}

		if ix.nodes[sibling].color == red {
			ix.nodes[sibling].color = black
			ix.nodes[parent].color = red
			ix.rotate(parent, side)
			sibling = ix.nodes[parent].child[side.opposite()]
		}

		near := ix.nodes[sibling].child[side]
		far := ix.nodes[sibling].child[side.opposite()]

		if ix.nodes[near].color == black && ix.nodes[far].color == black {
			ix.nodes[sibling].color = red
			n = parent

			continue
		}

		if ix.nodes[far].color == black {
			ix.nodes[near].color = black
			ix.nodes[sibling].color = red
			ix.rotate(sibling, side.opposite())
			sibling = ix.nodes[parent].child[side.opposite()]
		}

		ix.nodes[sibling].color = ix.nodes[parent].color
		ix.nodes[parent].color = black
		ix.nodes[ix.nodes[sibling].child[side.opposite()]].color = black
		ix.rotate(parent, side)
		n = ix.root
	}

	ix.nodes[n].color = black
}

// rotate moves the child opposite to dir into n's position, so rotate(n, left) is a left rotation.
func (ix *Index) rotate(n int, dir direction) {
	pivot := ix.nodes[n].child[dir.opposite()]

	if ix.nodes[n].color != ix.nodes[pivot].color {
		ix.flips++
	}

	inner := ix.nodes[pivot].child[dir]
	ix.nodes[n].child[dir.opposite()] = inner
	if inner != nilNode {
		ix.nodes[inner].parent = n
	}

	ix.nodes[pivot].parent = ix.nodes[n].parent
	ix.replaceChild(ix.nodes[n].parent, n, pivot)

	ix.nodes[pivot].child[dir] = n
	ix.nodes[n].parent = pivot
}

func (ix *Index) replaceChild(parent, old, replacement int) {
	switch {
	case parent == nilNode:
		ix.root = replacement
	case ix.nodes[parent].child[left] == old:
		ix.nodes[parent].child[left] = replacement
	default:
		ix.nodes[parent].child[right] = replacement
	}
}

func (ix *Index) sideOf(n int) direction {
	if ix.nodes[ix.nodes[n].parent].child[left] == n {
		return left
	}

	return right
}

func (ix *Index) find(key int) int {
	cur := ix.root

	for cur != nilNode {
		switch {
		case key < ix.nodes[cur].key:
			cur = ix.nodes[cur].child[left]
		case key > ix.nodes[cur].key:
			cur = ix.nodes[cur].child[right]
		default:
			return cur
		}
	}

	return nilNode
}

func (ix *Index) minimum(n int) int {
	for ix.nodes[n].child[left] != nilNode {
		n = ix.nodes[n].child[left]
	}

	return n
}

func (ix *Index) alloc(key int, parent int) int {
	fresh := node{key: key, parent: parent, color: red}

	if len(ix.free) > 0 {
		n := ix.free[len(ix.free)-1]
		ix.free = ix.free[:len(ix.free)-1]
		ix.nodes[n] = fresh

		return n
	}

	ix.nodes = append(ix.nodes, fresh)

	return len(ix.nodes) - 1
}

func (ix *Index) release(n int) {
	ix.nodes[n] = node{}
	ix.free = append(ix.free, n)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}
