package batch_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/batch"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_Run_AppliesLinesUntilQuit(t *testing.T) {
	// arrange
	lib, err := circulation.NewLibrary()
	require.NoError(t, err)
	input := strings.Join([]string{
		`InsertBook(1, "Book1", "Author1", "Yes")`,
		``,
		`BorrowBook(101, 1, 1)`,
		`Lend(1)`,
		`PrintBook(2)`,
		`Quit()`,
		`PrintBook(1)`,
	}, "\n")
	var out strings.Builder

	// act
	summary, err := batch.Run(context.Background(), lib, strings.NewReader(input), &out)

	// assert
	require.NoError(t, err)
	assert.Equal(t, batch.Summary{Lines: 6, Applied: 3, Rejected: 1, Malformed: 1, Terminated: true}, summary)
	assert.Equal(t, ""+
		"\nBook 1 Borrowed by Patron 101\n"+
		"Invalid operation: Lend(1)\n"+
		"Book 2 not found in the Library\n"+
		"\nProgram Terminated!!\n", out.String())
}

func Test_Run_StopsOnCanceledContext(t *testing.T) {
	lib, err := circulation.NewLibrary()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := batch.Run(ctx, lib, strings.NewReader("ColorFlipCount()\n"), &strings.Builder{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Applied)
}

func Test_OutputFilename(t *testing.T) {
	assert.Equal(t, "input_output_file.txt", batch.OutputFilename("input.txt"))
	assert.Equal(t, "data/run.1_output_file.txt", batch.OutputFilename("data/run.1.txt"))
	assert.Equal(t, "input_output_file.txt", batch.OutputFilename("input"))
}
