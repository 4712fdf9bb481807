package circulation

const (
	AddRecordOperationType      = "AddRecord"
	LendOperationType           = "Lend"
	ReturnOperationType         = "Return"
	RemoveOperationType         = "Remove"
	NearestMatchOperationType   = "NearestMatch"
	InspectOperationType        = "Inspect"
	InspectRangeOperationType   = "InspectRange"
	FlipCountQueryOperationType = "FlipCountQuery"
	TerminateOperationType      = "Terminate"
)

// Operation is a typed request to the Library.
type Operation interface {
	OperationType() string
}

// Availability is the initial availability of an added record.
type Availability string

const (
	AvailabilityYes Availability = "Yes"
	AvailabilityNo  Availability = "No"
)

// AddRecord catalogues a new record.
type AddRecord struct {
	RecordID     int
	Title        string
	Author       string
	Availability Availability
}

func (o AddRecord) OperationType() string { return AddRecordOperationType }

// Lend hands an available record to a patron, or queues the patron's claim if the record is on loan.
// A lower Priority value is served first.
type Lend struct {
	PatronID int
	RecordID int
	Priority int
}

func (o Lend) OperationType() string { return LendOperationType }

// Return brings a record back; the first waiting claimant, if any, receives it immediately.
type Return struct {
	PatronID int
	RecordID int
}

func (o Return) OperationType() string { return ReturnOperationType }

// Remove drops a record from the catalog and cancels all its claims.
type Remove struct {
	RecordID int
}

func (o Remove) OperationType() string { return RemoveOperationType }

// NearestMatch reports the record with the given id, or its closest catalogued neighbors.
type NearestMatch struct {
	RecordID int
}

func (o NearestMatch) OperationType() string { return NearestMatchOperationType }

// Inspect reports a snapshot of one record.
type Inspect struct {
	RecordID int
}

func (o Inspect) OperationType() string { return InspectOperationType }

// InspectRange reports snapshots of all records with ids between From and To, inclusive.
type InspectRange struct {
	From int
	To   int
}

func (o InspectRange) OperationType() string { return InspectRangeOperationType }

// FlipCountQuery reports the flip count.
type FlipCountQuery struct{}

func (o FlipCountQuery) OperationType() string { return FlipCountQueryOperationType }

// Terminate signals the end of an operation stream.
type Terminate struct{}

func (o Terminate) OperationType() string { return TerminateOperationType }
