package circulation_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_Sequencer_SerializesConcurrentSubmits(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lib := newLibrary(t)
	sequencer := circulation.NewSequencer(lib, 8)
	runErr := make(chan error, 1)
	go func() { runErr <- sequencer.Run(ctx) }()

	const records = 50

	// act
	var wg sync.WaitGroup
	for id := 1; id <= records; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			result, err := sequencer.Submit(ctx, circulation.AddRecord{
				RecordID:     id,
				Title:        "T",
				Author:       "A",
				Availability: circulation.AvailabilityYes,
			})
			assert.NoError(t, err)
			assert.Equal(t, circulation.OutcomeAdded, result.Outcome())
		}(id)
	}
	wg.Wait()

	listed, err := sequencer.Submit(ctx, circulation.InspectRange{From: 1, To: records})

	// assert
	require.NoError(t, err)
	assert.Len(t, listed.(circulation.InspectRangeResult).Snapshots, records)

	cancel()
	assert.ErrorIs(t, <-runErr, context.Canceled)
}

func Test_Sequencer_SubmitAfterStopFails(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	sequencer := circulation.NewSequencer(newLibrary(t), 0)
	done := make(chan error, 1)
	go func() { done <- sequencer.Run(ctx) }()
	cancel()
	<-done

	// act
	_, err := sequencer.Submit(context.Background(), circulation.FlipCountQuery{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrSequencerStopped)
}

func Test_Sequencer_SubmitWithCanceledContextIsNotApplied(t *testing.T) {
	// arrange
	sequencer := circulation.NewSequencer(newLibrary(t), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	result, err := sequencer.Submit(ctx, circulation.Terminate{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
