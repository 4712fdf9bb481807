package circulation

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is reported when adding a record whose id is already catalogued.
	ErrDuplicateKey = errors.New("record already exists")

	// ErrNotFound is reported when an operation names a record id that is not catalogued.
	ErrNotFound = errors.New("record not found")

	// ErrWaitListFull is reported when a claim is rejected because the record's waitlist is at capacity.
	ErrWaitListFull = errors.New("waitlist is full")

	// ErrUnknownOperation is reported for an Operation type the Library does not handle.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrNilArrivalClock is returned by WithArrivalClock for a nil clock.
	ErrNilArrivalClock = errors.New("arrival clock must not be nil")

	// ErrNilNowFunc is returned by WithNow for a nil function.
	ErrNilNowFunc = errors.New("now func must not be nil")

	// ErrSequencerStopped is returned by Sequencer.Submit once the Sequencer no longer runs.
	ErrSequencerStopped = errors.New("sequencer stopped")
)

func failure(sentinel error, format string, args ...any) error {
	return errors.Join(sentinel, fmt.Errorf(format, args...))
}
