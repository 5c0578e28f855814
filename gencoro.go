package gencoro

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
)

// Coroutine is a handle to a single coroutine instance backed by a
// dedicated worker goroutine. The handle owns the worker exclusively:
// the worker is spawned by the first Resume or Next, runs only while a
// driver call is blocked in the handoff, and is joined before any
// terminal state becomes observable.
//
// All methods are meant to be called from one driver goroutine at a
// time. Concurrent calls on the same handle are not supported; their
// ordering is undefined, but they fail fast with a *UsageError instead
// of deadlocking.
type Coroutine struct {
	id     uuid.UUID
	body   func() (any, error)
	h      *handoff
	state  atomic.Int32
	joined chan struct{}

	// final and cause are written once before the terminal state is
	// published and read only after it has been observed.
	final any
	cause error
}

// New creates a coroutine around the provided body without starting
// it.
//
// Parameters:
//   - body: The function executed on the worker goroutine. Inside it,
//     and inside anything it calls on the same goroutine, Yield
//     suspends the coroutine and YieldFrom delegates to a nested
//     source. Returning (v, nil) completes the coroutine with final
//     value v; returning an error fails it, except that an error
//     wrapping ErrCanceled counts as acknowledging cancellation.
//
// Returns:
//   - A handle exposing Resume, Next, Send, Throw and Close. The
//     worker goroutine is owned by the handle: a handle abandoned
//     while suspended leaks its goroutine, so every started coroutine
//     should be closed on all exit paths, typically with a deferred
//     Close.
func New(body func() (any, error)) *Coroutine {
	return &Coroutine{
		id:     uuid.New(),
		body:   body,
		h:      newHandoff(),
		joined: make(chan struct{}),
	}
}

// Resume starts or resumes the coroutine and blocks until it suspends
// again or terminates. On the first call the worker is spawned and v
// is discarded, since a coroutine cannot receive a value before its
// first suspension point. Afterwards v becomes the return value of the
// Yield call the worker is parked at.
//
// Resume returns the next yielded value, or a nil value and an error:
// an *Exhausted carrying the final value when the body returns,
// ErrCanceled when the body cancels itself, or the body's error
// verbatim when it fails. A panic in the body is re-panicked in the
// driver, wrapped with the worker's stack.
func (c *Coroutine) Resume(v any) (any, error) {
	if c.cas(NotStarted, Running) {
		c.trace("started")
		go c.run()
		return c.dispatch(c.h.first())
	}
	if c.cas(Suspended, Running) {
		c.trace("resumed")
		return c.dispatch(c.h.handoffToWorker(payload{kind: pValue, value: v}))
	}
	return nil, c.refuse()
}

// Next advances the coroutine without sending a value, like Resume
// with nil.
func (c *Coroutine) Next() (any, error) {
	return c.Resume(nil)
}

// Send is Resume for an already-started coroutine. Calling it before
// the first Resume or Next fails with a *UsageError and leaves the
// coroutine startable.
func (c *Coroutine) Send(v any) (any, error) {
	if c.cas(Suspended, Running) {
		c.trace("resumed")
		return c.dispatch(c.h.handoffToWorker(payload{kind: pValue, value: v}))
	}
	if c.State() == NotStarted {
		return nil, &UsageError{msg: "send before first resume"}
	}
	return nil, c.refuse()
}

// Throw injects err at the coroutine's suspension point, where it
// panics out of the pending Yield exactly as if it had originated
// there. A body that catches it may keep yielding or finish normally;
// an uncaught err travels back to the driver with its identity intact.
//
// On a coroutine that has not been started the worker is never
// spawned: the handle fails immediately and Throw returns err. On a
// terminated coroutine Throw returns err unchanged.
func (c *Coroutine) Throw(err error) (any, error) {
	if err == nil {
		return nil, &UsageError{msg: "throw of a nil error"}
	}
	if c.cas(NotStarted, Running) {
		c.cause = err
		c.setState(Failed)
		c.trace("failed")
		return nil, err
	}
	if c.cas(Suspended, Running) {
		c.trace("thrown")
		return c.dispatch(c.h.handoffToWorker(payload{kind: pError, err: err}))
	}
	if c.State() == Running {
		return nil, &UsageError{msg: "coroutine already executing"}
	}
	return nil, err
}

// Close cancels the coroutine and blocks until its worker has
// terminated. The cancellation is cooperative: ErrCanceled panics out
// of the suspension point the worker is parked at, and the body is
// expected to let it unwind (releasing resources in defers along the
// way), after which Close reports success and the coroutine is Closed.
//
// Close is idempotent and a no-op on a never-started or terminated
// coroutine. A body that answers cancellation by returning a value or
// by yielding again is reported with a *UsageError rather than
// silently ignored; any other error it escapes with is returned, and a
// panic is re-panicked in the driver.
//
// A worker that never reaches another suspension point cannot observe
// the cancellation, and Close blocks until it does.
func (c *Coroutine) Close() error {
	if c.cas(NotStarted, Closed) {
		c.trace("closed")
		return nil
	}
	if c.cas(Suspended, Running) {
		p := c.h.handoffToWorker(payload{kind: pCancel})
		switch p.kind {
		case pCancel:
			c.settle(Closed, nil, ErrCanceled)
			return nil
		case pReturn:
			err := &UsageError{msg: "coroutine returned a value during cancellation"}
			c.settle(Failed, nil, err)
			return err
		case pValue:
			// The body swallowed the cancellation and yielded again.
			// The yielded value is discarded and the coroutine stays
			// suspended.
			c.setState(Suspended)
			c.trace("suspended")
			return &UsageError{msg: "coroutine ignored cancellation"}
		case pError:
			c.settle(Failed, nil, p.err)
			if pe, ok := p.err.(*panicError); ok {
				panic(pe)
			}
			return p.err
		}
	}
	if c.State() == Running {
		return &UsageError{msg: "coroutine already executing"}
	}
	return nil
}

// State returns the coroutine's current lifecycle state.
func (c *Coroutine) State() State {
	return State(c.state.Load())
}

// ID returns the unique id of this coroutine instance.
func (c *Coroutine) ID() uuid.UUID {
	return c.id
}

func (c *Coroutine) String() string {
	return "coroutine " + short(c.id) + " [" + c.State().String() + "]"
}

func (c *Coroutine) cas(from, to State) bool {
	return c.state.CompareAndSwap(int32(from), int32(to))
}

func (c *Coroutine) setState(s State) {
	c.state.Store(int32(s))
}

// refuse reports why a call cannot take ownership of the coroutine in
// its current state.
func (c *Coroutine) refuse() error {
	if c.State() == Running {
		return &UsageError{msg: "coroutine already executing"}
	}
	return &Exhausted{Value: c.final}
}

// dispatch translates the payload the worker handed back into the
// result of the driver call that is pending on it.
func (c *Coroutine) dispatch(p payload) (any, error) {
	switch p.kind {
	case pValue:
		c.setState(Suspended)
		c.trace("suspended")
		return p.value, nil
	case pReturn:
		c.settle(Completed, p.value, nil)
		return nil, &Exhausted{Value: p.value}
	case pCancel:
		c.settle(Closed, nil, ErrCanceled)
		return nil, ErrCanceled
	case pError:
		c.settle(Failed, nil, p.err)
		if pe, ok := p.err.(*panicError); ok {
			panic(pe)
		}
		return nil, p.err
	}
	panic("gencoro: unexpected handoff payload")
}

// settle publishes a terminal state. The worker has handed over its
// terminal payload and is about to exit; waiting on the join channel
// here guarantees the goroutine is gone before the state change
// becomes observable.
func (c *Coroutine) settle(s State, final any, cause error) {
	<-c.joined
	c.final = final
	c.cause = cause
	c.setState(s)
	c.trace(s.String())
}

// run is the worker goroutine. It executes the body with the
// suspension context bound to this goroutine and hands exactly one
// terminal payload back to the driver.
func (c *Coroutine) run() {
	defer close(c.joined)
	bind(c.h)
	defer unbind()
	c.h.finish(c.outcome())
}

// outcome runs the body and folds every way it can end into a single
// terminal payload.
func (c *Coroutine) outcome() (out payload) {
	defer func() {
		if r := recover(); r != nil {
			out = c.recovered(r)
		}
	}()
	v, err := c.body()
	if err != nil {
		return c.failed(err)
	}
	return payload{kind: pReturn, value: v}
}

func (c *Coroutine) failed(err error) payload {
	switch {
	case errors.Is(err, ErrCanceled):
		return payload{kind: pCancel}
	case errors.Is(err, ErrExhausted):
		return payload{kind: pError, err: &UsageError{msg: "coroutine raised the exhaustion signal"}}
	default:
		return payload{kind: pError, err: err}
	}
}

// recovered classifies a panic that escaped the body. The cancellation
// and exhaustion signals map to their protocol payloads, an error the
// machinery itself delivered into the body travels back verbatim, and
// anything else is an organic panic that gets wrapped together with
// the worker's stack.
func (c *Coroutine) recovered(r any) payload {
	if err, ok := r.(error); ok {
		switch {
		case errors.Is(err, ErrCanceled):
			return payload{kind: pCancel}
		case errors.Is(err, ErrExhausted):
			return payload{kind: pError, err: &UsageError{msg: "coroutine raised the exhaustion signal"}}
		case err == c.h.delivered:
			return payload{kind: pError, err: err}
		}
	}
	return payload{kind: pError, err: newPanicError(r, c.id)}
}
