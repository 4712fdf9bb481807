package journal

import (
	"context"
	"sync"
)

// MemoryJournal keeps entries in process memory. It is safe for concurrent use.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries Entries
}

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{entries: make(Entries, 0)}
}

// Append stores the entries in call order.
func (j *MemoryJournal) Append(ctx context.Context, entry Entry, more ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, entry)
	j.entries = append(j.entries, more...)

	return nil
}

// Query returns the entries matching filter in append order.
func (j *MemoryJournal) Query(ctx context.Context, filter Filter) (Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	matching := make(Entries, 0)
	for _, entry := range j.entries {
		if filter.Matches(entry) {
			matching = append(matching, entry)
		}
	}

	return matching, nil
}

// Len returns the number of stored entries.
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}
