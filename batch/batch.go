// Package batch applies a file of command lines to a Library and writes the text report.
package batch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/parser"
	"github.com/AntonStoeckl/library-circulation-go/report"
)

const (
	outputSuffix  = "_output_file.txt"
	maxLineLength = 1024 * 1024
)

var (
	ErrReadingInputFailed  = errors.New("reading input failed")
	ErrWritingOutputFailed = errors.New("writing output failed")
)

// Executor applies one operation. *circulation.Library implements it.
type Executor interface {
	Execute(ctx context.Context, op circulation.Operation) circulation.Result
}

// Summary counts what a Run did.
type Summary struct {
	Lines      int
	Applied    int
	Rejected   int
	Malformed  int
	Terminated bool
}

// Run reads command lines from in until EOF or a Quit command and writes the report of each to out.
// Blank lines are skipped. Malformed lines are reported and skipped.
func Run(ctx context.Context, executor Executor, in io.Reader, out io.Writer) (Summary, error) {
	var summary Summary

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, errors.Join(err, flush(writer))
		}

		line := scanner.Text()
		summary.Lines++

		op, err := parser.Parse(line)
		switch {
		case errors.Is(err, parser.ErrEmptyLine):
			continue
		case err != nil:
			summary.Malformed++
			if _, werr := writer.WriteString(report.FormatMalformed(line)); werr != nil {
				return summary, errors.Join(ErrWritingOutputFailed, werr)
			}
			continue
		}

		result := executor.Execute(ctx, op)
		if result.Err() != nil {
			summary.Rejected++
		} else {
			summary.Applied++
		}

		if _, werr := writer.WriteString(report.Format(result)); werr != nil {
			return summary, errors.Join(ErrWritingOutputFailed, werr)
		}

		if result.Outcome() == circulation.OutcomeTerminated {
			summary.Terminated = true
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, errors.Join(ErrReadingInputFailed, err, flush(writer))
	}

	return summary, flush(writer)
}

// OutputFilename derives the report file name from the input file name: in.txt -> in_output_file.txt.
func OutputFilename(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputSuffix
}

func flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return errors.Join(ErrWritingOutputFailed, err)
	}

	return nil
}
