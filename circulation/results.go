package circulation

import (
	"github.com/AntonStoeckl/library-circulation-go/catalog"
)

// Outcome classifies the business result of an Operation.
type Outcome string

const (
	OutcomeAdded        Outcome = "added"
	OutcomeDuplicateKey Outcome = "duplicate_key"
	OutcomeBorrowed     Outcome = "borrowed"
	OutcomeReserved     Outcome = "reserved"
	OutcomeWaitListFull Outcome = "waitlist_full"
	OutcomeReturned     Outcome = "returned"
	OutcomeReallocated  Outcome = "returned_reallocated"
	OutcomeRemoved      Outcome = "removed"
	OutcomeExactMatch   Outcome = "exact_match"
	OutcomeNeighbors    Outcome = "neighbors"
	OutcomeFound        Outcome = "found"
	OutcomeCounted      Outcome = "counted"
	OutcomeTerminated   Outcome = "terminated"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeUnknown      Outcome = "unknown_operation"
)

// Result is the structured outcome of one Operation.
// Err returns nil on success and a sentinel-wrapping error for a rejected operation.
type Result interface {
	OperationType() string
	Outcome() Outcome
	Err() error
}

type resultBase struct {
	outcome Outcome
	err     error
}

func succeeded(outcome Outcome) resultBase {
	return resultBase{outcome: outcome}
}

func rejected(outcome Outcome, err error) resultBase {
	return resultBase{outcome: outcome, err: err}
}

func (r resultBase) Outcome() Outcome { return r.outcome }

func (r resultBase) Err() error { return r.err }

// RecordSnapshot is a read-only view of a record.
type RecordSnapshot struct {
	RecordID int
	Title    string
	Author   string

	// ReportedAvailable is the negation of the stored availability flag. Reports have always shown
	// it this way; do not flip it without confirming with the consumers of the report.
	ReportedAvailable bool

	HolderID       int
	HasHolder      bool
	WaitingPatrons []int
}

func snapshotOf(r *catalog.Record) RecordSnapshot {
	holder, hasHolder := r.Holder()

	return RecordSnapshot{
		RecordID:          r.ID(),
		Title:             r.Title(),
		Author:            r.Author(),
		ReportedAvailable: !r.Available(),
		HolderID:          holder,
		HasHolder:         hasHolder,
		WaitingPatrons:    r.Claims().Patrons(),
	}
}

type AddRecordResult struct {
	resultBase
	RecordID int
}

func (r AddRecordResult) OperationType() string { return AddRecordOperationType }

type LendResult struct {
	resultBase
	PatronID int
	RecordID int
	Priority int
}

func (r LendResult) OperationType() string { return LendOperationType }

// ReturnResult reports a return and, with OutcomeReallocated, the patron the record was allotted to.
type ReturnResult struct {
	resultBase
	PatronID   int
	RecordID   int
	AllottedTo int
}

func (r ReturnResult) OperationType() string { return ReturnOperationType }

// Allotted reports whether the record went straight to a waiting claimant.
func (r ReturnResult) Allotted() bool { return r.outcome == OutcomeReallocated }

// RemoveResult lists the patrons whose claims were cancelled, in the order they would have been served.
type RemoveResult struct {
	resultBase
	RecordID         int
	CancelledPatrons []int
}

func (r RemoveResult) OperationType() string { return RemoveOperationType }

// NearestMatchResult holds the exact record (OutcomeExactMatch) or up to two neighbors in ascending
// id order (OutcomeNeighbors).
//
// IndexNearest is the ordered index's single-path nearest key, which can differ from the neighbors
// because the index only inspects one search path.
type NearestMatchResult struct {
	resultBase
	RecordID        int
	Matches         []RecordSnapshot
	IndexNearest    int
	HasIndexNearest bool
}

func (r NearestMatchResult) OperationType() string { return NearestMatchOperationType }

type InspectResult struct {
	resultBase
	RecordID int
	Snapshot RecordSnapshot
}

func (r InspectResult) OperationType() string { return InspectOperationType }

// InspectRangeResult holds the snapshots in ascending id order. An empty range is still OutcomeFound.
type InspectRangeResult struct {
	resultBase
	From      int
	To        int
	Snapshots []RecordSnapshot
}

func (r InspectRangeResult) OperationType() string { return InspectRangeOperationType }

type FlipCountResult struct {
	resultBase
	Count int
}

func (r FlipCountResult) OperationType() string { return FlipCountQueryOperationType }

type TerminateResult struct {
	resultBase
}

func (r TerminateResult) OperationType() string { return TerminateOperationType }

type UnknownOperationResult struct {
	resultBase
	Type string
}

func (r UnknownOperationResult) OperationType() string { return r.Type }
