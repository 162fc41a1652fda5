// Package toggle runs remote-backed flag transitions (like, bookmark, block)
// with an optimistic local write and a per-instance single-flight guard.
package toggle

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// operation is the handle stored in the in-flight guard.
type operation struct {
	ID        string
	Request   Request
	StartedAt time.Time
}

// Coordinator executes one Action. At most one invocation per Coordinator
// proceeds past the guard at a time; others observe AlreadyRunning.
type Coordinator[S any] struct {
	action    Action[S]
	network   model.NetworkPort
	analytics model.AnalyticsPort

	inflight atomic.Pointer[operation]
}

// New returns a Coordinator for the given action.
func New[S any](action Action[S], network model.NetworkPort, analytics model.AnalyticsPort) *Coordinator[S] {
	return &Coordinator[S]{action: action, network: network, analytics: analytics}
}

// InFlight reports whether an invocation currently holds the guard.
func (c *Coordinator[S]) InFlight() bool {
	return c.inflight.Load() != nil
}

// Execute returns the outcome sequence for req. Nothing happens until the
// sequence is iterated, and it runs at most once: ranging over it again
// yields nothing. The guard is held from entry until a terminal outcome that
// precedes the remote call, or until the remote callback fires.
func (c *Coordinator[S]) Execute(ctx context.Context, req Request) iter.Seq[Outcome[S]] {
	var started atomic.Bool
	return func(yield func(Outcome[S]) bool) {
		if !started.CompareAndSwap(false, true) {
			return
		}
		c.run(ctx, req, yield)
	}
}

func (c *Coordinator[S]) run(ctx context.Context, req Request, yield func(Outcome[S]) bool) {
	op := &operation{ID: uuid.NewString(), Request: req, StartedAt: time.Now()}
	if !c.inflight.CompareAndSwap(nil, op) {
		yield(Outcome[S]{Kind: AlreadyRunning})
		return
	}
	handedOff := false
	defer func() {
		if !handedOff {
			c.inflight.CompareAndSwap(op, nil)
		}
	}()

	logger := logging.FromContext(ctx).With("action", c.action.Name, "entityId", req.EntityID, "opId", op.ID)

	if !c.network.Available(ctx) {
		logger.Debug(ctx, "network unavailable")
		yield(Outcome[S]{Kind: NoNetwork})
		return
	}

	// Tracked whatever the result.
	if !req.Flip {
		c.track(ctx, req)
	}

	current, err := c.action.Read(ctx, req)
	if err != nil {
		logger.Warn(ctx, "local read failed", "err", err)
		yield(Outcome[S]{Kind: LocalWriteFailed, Err: err})
		return
	}
	if req.Flip {
		req.Desired = !current
		c.track(ctx, req)
	}
	if current == req.Desired && !req.Force {
		yield(Outcome[S]{Kind: Unchanged})
		return
	}

	snap, err := c.action.Write(ctx, req)
	if err != nil {
		logger.Warn(ctx, "local write failed", "err", err)
		yield(Outcome[S]{Kind: LocalWriteFailed, Err: err})
		return
	}
	if !yield(Outcome[S]{Kind: LocalStateRecorded, Snapshot: snap}) {
		return
	}

	if c.action.NeedsRemote != nil && !c.action.NeedsRemote(req, snap) {
		yield(Outcome[S]{Kind: Success})
		return
	}

	results := make(chan bool, 1)
	var once sync.Once
	done := func(succeeded bool) {
		fired := false
		once.Do(func() {
			fired = true
			c.inflight.CompareAndSwap(op, nil)
			results <- succeeded
		})
		if !fired {
			logger.Warn(ctx, "remote callback invoked more than once", "succeeded", succeeded)
		}
	}

	handedOff = true
	c.action.Remote(ctx, req, snap, done)

	select {
	case ok := <-results:
		logger.Debug(ctx, "remote call completed", "succeeded", ok, "elapsed", time.Since(op.StartedAt).Seconds())
		if ok {
			yield(Outcome[S]{Kind: Success})
		} else {
			yield(Outcome[S]{Kind: RequestFailed})
		}
	case <-ctx.Done():
		logger.Warn(ctx, "stopped waiting for remote call", "err", ctx.Err())
		yield(Outcome[S]{Kind: RequestFailed, Err: ctx.Err()})
	}
}

func (c *Coordinator[S]) track(ctx context.Context, req Request) {
	if c.action.Event != nil && c.analytics != nil {
		event, props := c.action.Event(req)
		c.analytics.Track(ctx, event, props)
	}
}
