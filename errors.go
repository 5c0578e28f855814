package gencoro

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is the cancellation signal. Close delivers it to a
	// suspended coroutine by panicking it at the suspension point; a
	// coroutine body may catch it to release resources, but must then
	// re-panic it (or return an error wrapping it) to finish cleanly.
	ErrCanceled = errors.New("gencoro: coroutine canceled")

	// ErrExhausted marks normal end of iteration. Operations on a
	// coroutine that has terminated fail with an *Exhausted error
	// wrapping this sentinel.
	ErrExhausted = errors.New("gencoro: coroutine exhausted")

	// ErrNotCoroutine reports that Yield or YieldFrom was called on a
	// goroutine that is not running any coroutine body.
	ErrNotCoroutine = errors.New("gencoro: not inside a coroutine")
)

// Exhausted is returned by Resume, Next, Send and Throw once a
// coroutine has terminated. Value carries the coroutine's final return
// value when it completed normally, and is nil after Close or a
// failure. Use errors.Is with ErrExhausted or errors.As to detect it.
type Exhausted struct {
	Value any
}

func (e *Exhausted) Error() string {
	if e.Value == nil {
		return "gencoro: coroutine exhausted"
	}
	return fmt.Sprintf("gencoro: coroutine exhausted: %v", e.Value)
}

func (e *Exhausted) Unwrap() error {
	return ErrExhausted
}

// UsageError reports a misuse of the coroutine protocol: sending
// before the first resume, yielding outside a coroutine, re-entering a
// handle that is already executing, or answering cancellation with a
// value.
type UsageError struct {
	msg   string
	cause error
}

func (e *UsageError) Error() string {
	return "gencoro: " + e.msg
}

func (e *UsageError) Unwrap() error {
	return e.cause
}
