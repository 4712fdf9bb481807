package circulation

import (
	"context"
)

type sequencedRequest struct {
	ctx   context.Context
	op    Operation
	reply chan Result
}

// Sequencer serializes operations from concurrent callers onto the single goroutine that runs Run.
// Operations are applied in the order they are accepted, so results equal those of a sequential run.
type Sequencer struct {
	library  *Library
	requests chan sequencedRequest
	stopped  chan struct{}
}

// NewSequencer creates a Sequencer for library. The Library must not be used directly while Run is active.
func NewSequencer(library *Library, buffer int) *Sequencer {
	if buffer < 0 {
		buffer = 0
	}

	return &Sequencer{
		library:  library,
		requests: make(chan sequencedRequest, buffer),
		stopped:  make(chan struct{}),
	}
}

// Run applies submitted operations until ctx is done. It must be called exactly once.
func (s *Sequencer) Run(ctx context.Context) error {
	defer close(s.stopped)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req := <-s.requests:
			// Accepted operations are applied in full even if the caller gave up waiting.
			req.reply <- s.library.Execute(context.WithoutCancel(req.ctx), req.op)
		}
	}
}

// Submit hands op to the running Sequencer and waits for its Result.
//
// If ctx is done before the operation was accepted, it is not applied. If ctx is done after it was
// accepted, it is still applied, but Submit returns ctx.Err() without the Result.
func (s *Sequencer) Submit(ctx context.Context, op Operation) (Result, error) {
	req := sequencedRequest{ctx: ctx, op: op, reply: make(chan Result, 1)}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.stopped:
		return nil, ErrSequencerStopped
	case s.requests <- req:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-req.reply:
		return result, nil
	case <-s.stopped:
		select {
		case result := <-req.reply:
			return result, nil
		default:
			return nil, ErrSequencerStopped
		}
	}
}
