package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/orderedindex"
	"github.com/AntonStoeckl/library-circulation-go/waitlist"
)

// Library owns the catalog, the ordered index, and the aggregate flip counter.
type Library struct {
	catalog        *catalog.Catalog
	index          *orderedindex.Index
	aggregateFlips int

	clock waitlist.ArrivalClock
	now   func() time.Time

	journal          Journal
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewLibrary creates an empty Library.
func NewLibrary(options ...Option) (*Library, error) {
	l := &Library{
		catalog: catalog.New(),
		index:   orderedindex.New(),
		clock:   waitlist.NewSequenceClock(0),
		now:     time.Now,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Execute applies op and returns its Result. Rejected operations leave the Library unchanged
// except where noted on the operation. Execute never panics on business failures.
func (l *Library) Execute(ctx context.Context, op Operation) Result {
	start := time.Now()
	ctx, span := l.startSpan(ctx, op)

	var result Result
	var events core.DomainEvents

	switch o := op.(type) {
	case AddRecord:
		result, events = l.addRecord(o)
	case Lend:
		result, events = l.lend(o)
	case Return:
		result, events = l.returnRecord(o)
	case Remove:
		result, events = l.removeRecord(o)
	case NearestMatch:
		result = l.nearestMatch(o)
	case Inspect:
		result = l.inspect(o)
	case InspectRange:
		result = l.inspectRange(o)
	case FlipCountQuery:
		result = FlipCountResult{resultBase: succeeded(OutcomeCounted), Count: l.flipCount()}
	case Terminate:
		result = TerminateResult{resultBase: succeeded(OutcomeTerminated)}
	default:
		result = UnknownOperationResult{
			resultBase: rejected(OutcomeUnknown, failure(ErrUnknownOperation, "operation type %q", op.OperationType())),
			Type:       op.OperationType(),
		}
	}

	l.recordEvents(ctx, events)

	duration := time.Since(start)
	l.recordMetrics(result, duration)
	l.logResult(ctx, result, duration)
	l.finishSpan(span, result)

	return result
}

// flipCount is the reported flip count: the aggregate counter plus the index's own rotation count.
func (l *Library) flipCount() int {
	return l.aggregateFlips + l.index.FlipCount()
}

func (l *Library) recordEvents(ctx context.Context, events core.DomainEvents) {
	if l.journal == nil || len(events) == 0 {
		return
	}

	if err := l.journal.Record(ctx, events...); err != nil {
		l.logError(ctx, LogMsgJournalFailed, LogAttrError, err.Error())

		if l.metricsCollector != nil {
			l.metricsCollector.IncrementCounter(JournalFailuresMetric, map[string]string{})
		}
	}
}

func (l *Library) addRecord(op AddRecord) (Result, core.DomainEvents) {
	now := l.now()
	available := op.Availability == AvailabilityYes

	err := l.catalog.Add(catalog.NewRecord(op.RecordID, op.Title, op.Author, available))
	if errors.Is(err, catalog.ErrDuplicateRecord) {
		err = failure(ErrDuplicateKey, "record %d", op.RecordID)

		return AddRecordResult{resultBase: rejected(OutcomeDuplicateKey, err), RecordID: op.RecordID},
			core.DomainEvents{core.BuildAddingRecordFailed(op.RecordID, err.Error(), now)}
	}

	l.index.Insert(op.RecordID)
	l.aggregateFlips++

	return AddRecordResult{resultBase: succeeded(OutcomeAdded), RecordID: op.RecordID},
		core.DomainEvents{core.BuildRecordAddedToCatalog(op.RecordID, op.Title, op.Author, available, now)}
}

// lend re-inserts the record id into the index and bumps the aggregate counter in every branch
// that finds the record, including a rejected claim.
func (l *Library) lend(op Lend) (Result, core.DomainEvents) {
	now := l.now()
	result := LendResult{PatronID: op.PatronID, RecordID: op.RecordID, Priority: op.Priority}

	record, ok := l.catalog.Get(op.RecordID)
	if !ok {
		err := failure(ErrNotFound, "record %d", op.RecordID)
		result.resultBase = rejected(OutcomeNotFound, err)

		return result, core.DomainEvents{core.BuildLendingRecordFailed(op.RecordID, op.PatronID, err.Error(), now)}
	}

	var events core.DomainEvents

	if record.Available() {
		record.AssignTo(op.PatronID)
		result.resultBase = succeeded(OutcomeBorrowed)
		events = core.DomainEvents{core.BuildRecordLentToPatron(op.RecordID, op.PatronID, now)}
	} else {
		arrival := l.clock.Tick()
		claim := waitlist.ClaimEntry{Patron: op.PatronID, Priority: op.Priority, Arrival: arrival}

		if err := record.Claims().Insert(claim); err != nil {
			err = failure(ErrWaitListFull, "record %d, patron %d", op.RecordID, op.PatronID)
			result.resultBase = rejected(OutcomeWaitListFull, err)
			events = core.DomainEvents{core.BuildLendingRecordFailed(op.RecordID, op.PatronID, err.Error(), now)}
		} else {
			result.resultBase = succeeded(OutcomeReserved)
			events = core.DomainEvents{
				core.BuildClaimQueuedForRecord(op.RecordID, op.PatronID, op.Priority, arrival, now),
			}
		}
	}

	l.index.Insert(op.RecordID)
	l.aggregateFlips++

	return result, events
}

// returnRecord removes the record id from the index although the record stays catalogued.
// The next lend puts it back.
func (l *Library) returnRecord(op Return) (Result, core.DomainEvents) {
	now := l.now()
	result := ReturnResult{PatronID: op.PatronID, RecordID: op.RecordID}

	record, ok := l.catalog.Get(op.RecordID)
	if !ok {
		err := failure(ErrNotFound, "record %d", op.RecordID)
		result.resultBase = rejected(OutcomeNotFound, err)

		return result, core.DomainEvents{core.BuildReturningRecordFailed(op.RecordID, op.PatronID, err.Error(), now)}
	}

	record.Release()
	result.resultBase = succeeded(OutcomeReturned)
	events := core.DomainEvents{core.BuildRecordReturnedByPatron(op.RecordID, op.PatronID, now)}

	if claim, claimed := record.Claims().ExtractMin(); claimed {
		record.AssignTo(claim.Patron)
		result.resultBase = succeeded(OutcomeReallocated)
		result.AllottedTo = claim.Patron
		events = append(events, core.BuildRecordAllottedToPatron(op.RecordID, claim.Patron, claim.Priority, now))
	}

	l.index.Delete(op.RecordID)
	l.aggregateFlips++

	return result, events
}

func (l *Library) removeRecord(op Remove) (Result, core.DomainEvents) {
	now := l.now()

	record, ok := l.catalog.Remove(op.RecordID)
	if !ok {
		err := failure(ErrNotFound, "record %d", op.RecordID)

		return RemoveResult{resultBase: rejected(OutcomeNotFound, err), RecordID: op.RecordID},
			core.DomainEvents{core.BuildRemovingRecordFailed(op.RecordID, err.Error(), now)}
	}

	before := l.index.FlipCount()
	l.index.Delete(op.RecordID)
	l.aggregateFlips += l.index.FlipCount() - before

	drained := record.Claims().Drain()
	cancelled := make([]int, 0, len(drained))
	for _, claim := range drained {
		cancelled = append(cancelled, claim.Patron)
	}

	return RemoveResult{resultBase: succeeded(OutcomeRemoved), RecordID: op.RecordID, CancelledPatrons: cancelled},
		core.DomainEvents{core.BuildRecordRemovedFromCatalog(op.RecordID, cancelled, now)}
}

func (l *Library) nearestMatch(op NearestMatch) Result {
	result := NearestMatchResult{RecordID: op.RecordID}
	result.IndexNearest, result.HasIndexNearest = l.index.NearestKey(op.RecordID)

	if record, ok := l.catalog.Get(op.RecordID); ok {
		result.resultBase = succeeded(OutcomeExactMatch)
		result.Matches = []RecordSnapshot{snapshotOf(record)}

		return result
	}

	neighbors := l.catalog.NeighborsOf(op.RecordID)
	if !neighbors.Found() {
		result.resultBase = rejected(OutcomeNotFound, failure(ErrNotFound, "no record near %d", op.RecordID))

		return result
	}

	for _, id := range []struct {
		id  int
		has bool
	}{{neighbors.Lower, neighbors.HasLower}, {neighbors.Higher, neighbors.HasHigher}} {
		if !id.has {
			continue
		}

		if record, ok := l.catalog.Get(id.id); ok {
			result.Matches = append(result.Matches, snapshotOf(record))
		}
	}

	result.resultBase = succeeded(OutcomeNeighbors)

	return result
}

func (l *Library) inspect(op Inspect) Result {
	record, ok := l.catalog.Get(op.RecordID)
	if !ok {
		return InspectResult{
			resultBase: rejected(OutcomeNotFound, failure(ErrNotFound, "record %d", op.RecordID)),
			RecordID:   op.RecordID,
		}
	}

	return InspectResult{resultBase: succeeded(OutcomeFound), RecordID: op.RecordID, Snapshot: snapshotOf(record)}
}

// inspectRange reads the catalog, not the index, so returned records stay visible.
func (l *Library) inspectRange(op InspectRange) Result {
	records := l.catalog.InRange(op.From, op.To)

	snapshots := make([]RecordSnapshot, 0, len(records))
	for _, record := range records {
		snapshots = append(snapshots, snapshotOf(record))
	}

	return InspectRangeResult{resultBase: succeeded(OutcomeFound), From: op.From, To: op.To, Snapshots: snapshots}
}
