package catalog

import (
	"errors"
	"slices"
)

// ErrDuplicateRecord is returned by Add when a Record with the same id is already catalogued.
var ErrDuplicateRecord = errors.New("record already exists")

// Neighbors holds the closest catalogued ids below and above a target id.
type Neighbors struct {
	Lower     int
	HasLower  bool
	Higher    int
	HasHigher bool
}

// Found reports whether at least one neighbor exists.
func (n Neighbors) Found() bool {
	return n.HasLower || n.HasHigher
}

// Catalog maps record ids to Records. It is not safe for concurrent use.
type Catalog struct {
	records map[int]*Record
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{records: make(map[int]*Record)}
}

// Add catalogues r, or returns ErrDuplicateRecord if its id is taken.
func (c *Catalog) Add(r *Record) error {
	if _, exists := c.records[r.ID()]; exists {
		return ErrDuplicateRecord
	}

	c.records[r.ID()] = r

	return nil
}

// Get returns the Record with the given id.
func (c *Catalog) Get(id int) (*Record, bool) {
	r, ok := c.records[id]

	return r, ok
}

// Remove drops the Record with the given id and returns it.
func (c *Catalog) Remove(id int) (*Record, bool) {
	r, ok := c.records[id]
	if ok {
		delete(c.records, id)
	}

	return r, ok
}

// Contains reports whether id is catalogued.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.records[id]

	return ok
}

// Len returns the number of catalogued Records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// IDs returns all catalogued ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.records))
	for id := range c.records {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// NeighborsOf scans every id and returns the nearest lower and the nearest higher id relative to target.
// target itself is never reported as a neighbor.
func (c *Catalog) NeighborsOf(target int) Neighbors {
	var n Neighbors

	for id := range c.records {
		switch {
		case id < target && (!n.HasLower || id > n.Lower):
			n.Lower, n.HasLower = id, true
		case id > target && (!n.HasHigher || id < n.Higher):
			n.Higher, n.HasHigher = id, true
		}
	}

	return n
}

// InRange returns the Records with ids between from and to, inclusive, in ascending id order.
// It returns no Records when from is greater than to.
func (c *Catalog) InRange(from, to int) []*Record {
	records := make([]*Record, 0)
	if from > to {
		return records
	}

	for _, id := range c.IDs() {
		if id >= from && id <= to {
			records = append(records, c.records[id])
		}
	}

	return records
}
