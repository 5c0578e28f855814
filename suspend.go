package gencoro

import (
	"sync"

	"github.com/petermattis/goid"
)

// workers maps a worker goroutine's id to the handoff of the coroutine
// it is executing. The binding is installed at worker entry and
// removed on every exit path, so any function on the worker's call
// stack can locate its coroutine without being passed a handle.
var workers sync.Map

func bind(h *handoff) {
	workers.Store(goid.Get(), h)
}

func unbind() {
	workers.Delete(goid.Get())
}

func current() (*handoff, bool) {
	v, ok := workers.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return v.(*handoff), true
}

// Yield suspends the coroutine running on the calling goroutine and
// hands a value to its driver. It may be called from the coroutine
// body or from any function the body calls, however deep; the binding
// is per goroutine, not per call frame.
//
// Parameters:
//   - values: What the driver's pending Resume, Next or Send call
//     returns. No arguments yield nil, a single argument yields that
//     value, and several arguments yield them as a []any.
//
// Returns:
//   - The value passed to the Send or Resume call that wakes the
//     coroutine again, or nil for Next.
//
// If the driver injects an error with Throw, Yield panics with that
// exact error at the suspension point. If the driver calls Close,
// Yield panics with ErrCanceled. Calling Yield on a goroutine that is
// not running any coroutine panics with a *UsageError wrapping
// ErrNotCoroutine.
func Yield(values ...any) any {
	h, ok := current()
	if !ok {
		panic(&UsageError{msg: "yield outside a coroutine", cause: ErrNotCoroutine})
	}
	p := h.handoffToDriver(payload{kind: pValue, value: collapse(values)})
	switch p.kind {
	case pValue:
		h.delivered = nil
		return p.value
	case pError:
		h.delivered = p.err
		panic(p.err)
	case pCancel:
		h.delivered = nil
		panic(ErrCanceled)
	}
	panic("gencoro: unexpected handoff payload")
}

func collapse(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
