package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Format renders one Result. Most messages start with a blank line; queries that find nothing
// and malformed input do not.
func Format(result circulation.Result) string {
	var b strings.Builder

	switch r := result.(type) {
	case circulation.AddRecordResult:
		if r.Outcome() == circulation.OutcomeDuplicateKey {
			fmt.Fprintf(&b, "\nBook already exists with ID: %d\n", r.RecordID)
		}

	case circulation.LendResult:
		switch r.Outcome() {
		case circulation.OutcomeBorrowed:
			fmt.Fprintf(&b, "\nBook %d Borrowed by Patron %d\n", r.RecordID, r.PatronID)
		case circulation.OutcomeReserved:
			fmt.Fprintf(&b, "\nBook %d Reserved by Patron %d\n", r.RecordID, r.PatronID)
		case circulation.OutcomeWaitListFull:
			fmt.Fprintf(&b, "\nReservation list for Book %d is full, Patron %d was not queued\n", r.RecordID, r.PatronID)
		default:
			b.WriteString("\nBook not found in the Library\n")
		}

	case circulation.ReturnResult:
		if r.Outcome() == circulation.OutcomeNotFound {
			b.WriteString("\nBook not found in the Library\n")
			break
		}

		fmt.Fprintf(&b, "\nBook %d Returned by Patron %d\n", r.RecordID, r.PatronID)
		if r.Allotted() {
			fmt.Fprintf(&b, "\nBook %d Allotted to Patron %d\n", r.RecordID, r.AllottedTo)
		}

	case circulation.RemoveResult:
		if r.Outcome() == circulation.OutcomeNotFound {
			b.WriteString("Book not found in the Library\n")
			break
		}

		if len(r.CancelledPatrons) == 0 {
			fmt.Fprintf(&b, "\nBook %d is no longer available.\n", r.RecordID)
			break
		}

		fmt.Fprintf(&b, "\nBook %d is no longer available. Reservations made by Patrons %s have been cancelled!\n\n",
			r.RecordID, joinInts(r.CancelledPatrons))

	case circulation.NearestMatchResult:
		if r.Outcome() == circulation.OutcomeNotFound {
			b.WriteString("Book not found in the Library\n")
			break
		}

		for _, snapshot := range r.Matches {
			writeRecord(&b, snapshot)
		}

	case circulation.InspectResult:
		if r.Outcome() == circulation.OutcomeNotFound {
			fmt.Fprintf(&b, "Book %d not found in the Library\n", r.RecordID)
			break
		}

		writeRecord(&b, r.Snapshot)

	case circulation.InspectRangeResult:
		for _, snapshot := range r.Snapshots {
			writeRecord(&b, snapshot)
		}

	case circulation.FlipCountResult:
		fmt.Fprintf(&b, "\nColour Flip Count: %d\n", r.Count)

	case circulation.TerminateResult:
		b.WriteString("\nProgram Terminated!!\n")

	default:
		fmt.Fprintf(&b, "Invalid operation: %s\n", result.OperationType())
	}

	return b.String()
}

// FormatMalformed renders a line that could not be parsed.
func FormatMalformed(line string) string {
	return "Invalid operation: " + strings.TrimSpace(line) + "\n"
}

// Availability renders the reported availability flag.
func Availability(reportedAvailable bool) string {
	if reportedAvailable {
		return string(circulation.AvailabilityYes)
	}

	return string(circulation.AvailabilityNo)
}

// Reservations renders waiting patrons as [a, b].
func Reservations(patrons []int) string {
	return "[" + joinInts(patrons) + "]"
}

func writeRecord(b *strings.Builder, s circulation.RecordSnapshot) {
	borrowedBy := "None"
	if s.HasHolder {
		borrowedBy = strconv.Itoa(s.HolderID)
	}

	fmt.Fprintf(b, "\nBookID = %d\n", s.RecordID)
	fmt.Fprintf(b, "Title = \"%s\"\n", s.Title)
	fmt.Fprintf(b, "Author = \"%s\"\n", s.Author)
	fmt.Fprintf(b, "Availability = \"%s\"\n", Availability(s.ReportedAvailable))
	fmt.Fprintf(b, "BorrowedBy = \"%s\"\n", borrowedBy)
	fmt.Fprintf(b, "Reservations = %s\n", Reservations(s.WaitingPatrons))
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}

	return strings.Join(parts, ", ")
}
