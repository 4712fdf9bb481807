package catalog

import (
	"github.com/AntonStoeckl/library-circulation-go/waitlist"
)

// Record is one catalogued item together with its circulation state.
type Record struct {
	id        int
	title     string
	author    string
	available bool
	holder    int
	hasHolder bool
	claims    *waitlist.WaitList
}

// NewRecord creates a Record without a holder and with an empty WaitList.
func NewRecord(id int, title string, author string, available bool) *Record {
	return &Record{
		id:        id,
		title:     title,
		author:    author,
		available: available,
		claims:    waitlist.New(),
	}
}

func (r *Record) ID() int {
	return r.id
}

func (r *Record) Title() string {
	return r.title
}

func (r *Record) Author() string {
	return r.author
}

// Available reports the stored availability flag.
func (r *Record) Available() bool {
	return r.available
}

// Holder returns the patron currently holding the Record, or false if nobody does.
func (r *Record) Holder() (int, bool) {
	return r.holder, r.hasHolder
}

// Claims returns the Record's WaitList.
func (r *Record) Claims() *waitlist.WaitList {
	return r.claims
}

// AssignTo hands the Record to patron and marks it unavailable.
func (r *Record) AssignTo(patron int) {
	r.available = false
	r.holder = patron
	r.hasHolder = true
}

// Release marks the Record available and clears its holder.
func (r *Record) Release() {
	r.available = true
	r.holder = 0
	r.hasHolder = false
}
