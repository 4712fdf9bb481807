package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	CommandInsertBook      = "InsertBook"
	CommandPrintBook       = "PrintBook"
	CommandPrintBooks      = "PrintBooks"
	CommandBorrowBook      = "BorrowBook"
	CommandReturnBook      = "ReturnBook"
	CommandDeleteBook      = "DeleteBook"
	CommandFindClosestBook = "FindClosestBook"
	CommandColorFlipCount  = "ColorFlipCount"
	CommandQuit            = "Quit"
)

// Parse parses one command line into an Operation.
func Parse(line string) (circulation.Operation, error) {
	l := strings.TrimSpace(line)
	if l == "" {
		return nil, ErrEmptyLine
	}

	l = strings.TrimSpace(strings.TrimSuffix(l, ";"))

	open := strings.IndexByte(l, '(')
	if open <= 0 || !strings.HasSuffix(l, ")") {
		return nil, malformed(line, "expected Name(args)")
	}

	name := strings.TrimSpace(l[:open])

	args, err := splitArguments(l[open+1 : len(l)-1])
	if err != nil {
		return nil, malformed(line, err.Error())
	}

	op, err := build(name, args)
	if err != nil {
		return nil, malformed(line, err.Error())
	}

	return op, nil
}

func build(name string, args []argument) (circulation.Operation, error) {
	switch name {
	case CommandInsertBook:
		return parseInsertBook(args)

	case CommandPrintBook:
		ids, err := integers(args, 1)
		if err != nil {
			return nil, err
		}
		return circulation.Inspect{RecordID: ids[0]}, nil

	case CommandPrintBooks:
		ids, err := integers(args, 2)
		if err != nil {
			return nil, err
		}
		return circulation.InspectRange{From: ids[0], To: ids[1]}, nil

	case CommandBorrowBook:
		vals, err := integers(args, 3)
		if err != nil {
			return nil, err
		}
		return circulation.Lend{PatronID: vals[0], RecordID: vals[1], Priority: vals[2]}, nil

	case CommandReturnBook:
		vals, err := integers(args, 2)
		if err != nil {
			return nil, err
		}
		return circulation.Return{PatronID: vals[0], RecordID: vals[1]}, nil

	case CommandDeleteBook:
		ids, err := integers(args, 1)
		if err != nil {
			return nil, err
		}
		return circulation.Remove{RecordID: ids[0]}, nil

	case CommandFindClosestBook:
		ids, err := integers(args, 1)
		if err != nil {
			return nil, err
		}
		return circulation.NearestMatch{RecordID: ids[0]}, nil

	case CommandColorFlipCount:
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", name)
		}
		return circulation.FlipCountQuery{}, nil

	case CommandQuit:
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no arguments", name)
		}
		return circulation.Terminate{}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func parseInsertBook(args []argument) (circulation.Operation, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("%s expects 4 arguments, got %d", CommandInsertBook, len(args))
	}

	id, err := args[0].integer()
	if err != nil {
		return nil, err
	}

	availability := circulation.Availability(args[3].text)
	if availability != circulation.AvailabilityYes && availability != circulation.AvailabilityNo {
		return nil, fmt.Errorf("availability must be %q or %q, got %q",
			circulation.AvailabilityYes, circulation.AvailabilityNo, args[3].text)
	}

	return circulation.AddRecord{
		RecordID:     id,
		Title:        args[1].text,
		Author:       args[2].text,
		Availability: availability,
	}, nil
}

func malformed(line string, reason string) error {
	return errors.Join(ErrMalformedOperation, fmt.Errorf("%q: %s", strings.TrimSpace(line), reason))
}

type argument struct {
	text   string
	quoted bool
}

func (a argument) integer() (int, error) {
	if a.quoted {
		return 0, fmt.Errorf("expected an integer, got quoted %q", a.text)
	}

	i, err := strconv.Atoi(a.text)
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", a.text)
	}

	return i, nil
}

func integers(args []argument, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}

	out := make([]int, 0, want)
	for _, a := range args {
		i, err := a.integer()
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}

	return out, nil
}

// splitArguments splits on commas outside double quotes. An empty list yields no arguments.
func splitArguments(s string) ([]argument, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var args []argument
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() error {
		text := current.String()
		if !quoted {
			text = strings.TrimSpace(text)
		}
		if text == "" && !quoted {
			return errors.New("empty argument")
		}
		args = append(args, argument{text: text, quoted: quoted})
		current.Reset()
		quoted = false
		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '"':
			if !inQuotes && strings.TrimSpace(current.String()) != "" {
				return nil, errors.New("quote inside unquoted argument")
			}
			if !inQuotes {
				current.Reset()
			}
			inQuotes = !inQuotes
			quoted = true

		case c == ',' && !inQuotes:
			if err := flush(); err != nil {
				return nil, err
			}

		case quoted && !inQuotes:
			if c != ' ' && c != '\t' {
				return nil, errors.New("text after closing quote")
			}

		default:
			current.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, errors.New("unterminated quote")
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return args, nil
}
