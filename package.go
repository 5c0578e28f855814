// Package gencoro emulates suspendable coroutines by backing each
// instance with a dedicated worker goroutine, for call graphs where a
// suspension point cannot be threaded through explicitly. A coroutine
// and its driver hand execution back and forth through an exclusive
// exchange, so at most one of the two runs at any instant and values
// move between them without additional locking.
//
// A coroutine is created with New around an ordinary body function and
// driven through its handle: Resume and Next advance it to the next
// suspension point, Send passes a value into that point, Throw injects
// an error there, and Close cancels it. The body suspends by calling
// Yield, which returns whatever the driver sends in next. Because the
// suspension context is bound to the worker goroutine rather than
// passed through the call stack, any plain function invoked from the
// body can call Yield too, however deep the call chain.
//
// YieldFrom delegates a coroutine to a nested source, forwarding
// values, sent inputs, thrown errors and cancellation one level down
// and capturing the source's final value. Plain data can participate
// through the FromSlice, FromSeq and Range adapters, and a coroutine
// can be consumed from the driver side as a range-over-func sequence
// with Seq or drained with Collect.
//
// Termination is explicit: a completed, closed or failed coroutine
// answers further calls with an *Exhausted error carrying its final
// value, errors escape the body with their identity intact, and panics
// are transported to the driver wrapped with the worker's stack.
// Cancellation is cooperative. Close injects ErrCanceled at the next
// suspension point and waits for the worker to unwind, which also
// means a handle abandoned while suspended leaks its worker goroutine:
// started coroutines should be closed on every exit path.
package gencoro
