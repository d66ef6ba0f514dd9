// Package scanner turns a continuous stream of scanned-code observations
// into well-spaced, non-duplicated check-in calls. A single goroutine owns
// the Idle → Processing → ResultShown → Idle state machine; observers
// receive outcomes over a channel instead of sharing mutable state with the
// loop.
package scanner

import (
	"context"
	"time"
)

// State of the coordinator loop.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateResultShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateResultShown:
		return "result-shown"
	default:
		return "unknown"
	}
}

// Observation is one raw candidate credential, e.g. decoded from one camera
// frame.
type Observation struct {
	Payload    string
	ObservedAt time.Time
}

// OutcomeKind classifies a check-in outcome for display purposes.
type OutcomeKind int

const (
	// OutcomeSuccess: a new attendance record was created.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeAlreadyRecorded: informational, the desired state already holds.
	OutcomeAlreadyRecorded
	// OutcomeRejected: a business rule said no (wrong code, not open, not a
	// participant); scanning resumes after the dwell.
	OutcomeRejected
	// OutcomeTransport: the call itself failed (network, timeout). Reported
	// distinctly from business failures but through the same dwell step.
	OutcomeTransport
)

// Result is what the operator sees for one honored observation.
type Result struct {
	Kind    OutcomeKind
	Message string
	Payload string
	At      time.Time
}

// CheckInFunc performs one check-in attempt. It must return a Result for
// every call; transport errors are folded into OutcomeTransport, never
// panics or retries.
type CheckInFunc func(ctx context.Context, credential string) Result

// Source produces observations, e.g. from a camera feed. Frames must be
// closed when capture ends; Err then reports why (a camera permission
// denial is terminal for the scan session). Pause stops observation
// production while a result is pending; Resume restarts it.
type Source interface {
	Frames() <-chan Observation
	Pause()
	Resume()
	Err() error
}

const defaultDwell = 2 * time.Second

type Options struct {
	// Dwell is how long an outcome stays on screen before scanning resumes.
	Dwell time.Duration
}

// Coordinator serializes check-in attempts: per processing window exactly
// one observation is honored, every outcome passes through ResultShown, and
// an in-flight check-in is never abandoned on shutdown.
type Coordinator struct {
	src     Source
	checkIn CheckInFunc
	dwell   time.Duration
	results chan Result
}

func New(src Source, checkIn CheckInFunc, opts Options) *Coordinator {
	dwell := opts.Dwell
	if dwell <= 0 {
		dwell = defaultDwell
	}
	return &Coordinator{
		src:     src,
		checkIn: checkIn,
		dwell:   dwell,
		results: make(chan Result, 8),
	}
}

// Results delivers one Result per honored observation. The channel is
// closed when Run returns.
func (c *Coordinator) Results() <-chan Result {
	return c.results
}

// Run drives the coordinator until ctx is cancelled or the source ends.
// Cancellation abandons not-yet-submitted observations immediately, but a
// check-in already in flight runs to completion on a detached context and
// its true outcome is surfaced before Run returns. When the source ends on
// its own, Run returns src.Err().
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.results)

	state := StateIdle
	frames := c.src.Frames()

	// In-flight calls must not be torn down by coordinator cancellation;
	// an aborted submission could leave the server and operator disagreeing
	// on whether attendance was recorded.
	callCtx := context.WithoutCancel(ctx)

	var inflight chan Result
	var dwellTimer *time.Timer
	var dwellC <-chan time.Time

	stopDwell := func() {
		if dwellTimer != nil {
			dwellTimer.Stop()
			dwellTimer = nil
			dwellC = nil
		}
	}
	defer stopDwell()

	for {
		select {
		case obs, ok := <-frames:
			if !ok {
				// Source ended (camera closed or denied). Finish once nothing
				// is pending; an in-flight call still completes below.
				frames = nil
				if state == StateIdle {
					return c.src.Err()
				}
				continue
			}
			if state != StateIdle {
				// Only the first observation of a processing window is
				// honored; bursts of frames for the same instant are dropped,
				// not buffered.
				continue
			}
			state = StateProcessing
			c.src.Pause()
			inflight = make(chan Result, 1)
			go func(payload string) {
				inflight <- c.checkIn(callCtx, payload)
			}(obs.Payload)

		case res := <-inflight:
			inflight = nil
			state = StateResultShown
			c.emit(ctx, res)
			dwellTimer = time.NewTimer(c.dwell)
			dwellC = dwellTimer.C

		case <-dwellC:
			stopDwell()
			state = StateIdle
			if frames == nil {
				return c.src.Err()
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.src.Resume()

		case <-ctx.Done():
			if state == StateProcessing {
				// Never tear down with a check-in in flight: await its
				// outcome so it is surfaced, not swallowed.
				res := <-inflight
				inflight = nil
				c.emit(ctx, res)
			}
			return ctx.Err()
		}
	}
}

func (c *Coordinator) emit(ctx context.Context, res Result) {
	if res.At.IsZero() {
		res.At = time.Now()
	}
	select {
	case c.results <- res:
	case <-ctx.Done():
		// Consumer is gone; best effort only.
		select {
		case c.results <- res:
		default:
		}
	}
}
