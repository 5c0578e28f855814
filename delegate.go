package gencoro

import "errors"

// Iterator is the minimal protocol a delegation source must speak:
// Next returns the next value, or an *Exhausted error carrying the
// source's final value once it is done. *Coroutine implements it, as
// do the FromSlice, FromSeq and Range adapters.
type Iterator interface {
	Next() (any, error)
}

// Sender is implemented by sources that can receive a value at each
// step, like a nested coroutine. Delegation falls back to Next for
// sources without it.
type Sender interface {
	Send(v any) (any, error)
}

// Thrower is implemented by sources that can have an error injected at
// their suspension point. For sources without it, a thrown error
// surfaces at the delegation point instead.
type Thrower interface {
	Throw(err error) (any, error)
}

// Closer is implemented by sources that hold resources. Delegation
// closes the source before propagating a cancellation outward.
type Closer interface {
	Close() error
}

// YieldFrom delegates the calling coroutine to src until src is
// exhausted, forwarding the full protocol one level down: each value
// src produces is yielded to the driver, and whatever comes back in is
// routed to src's corresponding operation.
//
//   - A sent value goes to src.Send when src implements Sender;
//     otherwise src is plainly advanced and the value is dropped,
//     since a simple sequence has no input channel.
//   - A thrown error goes to src.Throw when src implements Thrower,
//     where src may catch it and keep producing; otherwise it panics
//     at the delegation point, as if Yield had been called here.
//   - Cancellation propagates inward before outward: src is closed
//     first when it implements Closer, then ErrCanceled panics at the
//     delegation point, so nested resources are released innermost
//     first.
//
// YieldFrom returns src's final value once it is exhausted. A src
// failure other than exhaustion panics at the delegation point so the
// outer body can catch it. Like Yield, YieldFrom panics with a
// *UsageError when called outside any coroutine.
func YieldFrom(src Iterator) any {
	h, ok := current()
	if !ok {
		panic(&UsageError{msg: "delegation outside a coroutine", cause: ErrNotCoroutine})
	}
	v, err := src.Next()
	for {
		if err != nil {
			var ex *Exhausted
			if errors.As(err, &ex) {
				return ex.Value
			}
			h.delivered = err
			panic(err)
		}
		p := h.handoffToDriver(payload{kind: pValue, value: v})
		switch p.kind {
		case pValue:
			h.delivered = nil
			if s, ok := src.(Sender); ok && p.value != nil {
				v, err = s.Send(p.value)
			} else {
				v, err = src.Next()
			}
		case pError:
			h.delivered = p.err
			t, ok := src.(Thrower)
			if !ok {
				panic(p.err)
			}
			v, err = t.Throw(p.err)
		case pCancel:
			h.delivered = nil
			if cl, ok := src.(Closer); ok {
				if cerr := cl.Close(); cerr != nil {
					// The source failed to wind down; that failure
					// replaces the outward cancellation signal.
					h.delivered = cerr
					panic(cerr)
				}
			}
			panic(ErrCanceled)
		default:
			panic("gencoro: unexpected handoff payload")
		}
	}
}
