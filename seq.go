package gencoro

import (
	"errors"
	"iter"

	"golang.org/x/exp/constraints"
)

// FromSeq adapts a range-over-func sequence into a delegation source.
// The returned Iterator owns the pull goroutine behind it, so a
// delegating coroutine that is canceled mid-sequence closes it.
func FromSeq[V any](seq iter.Seq[V]) Iterator {
	next, stop := iter.Pull(seq)
	return &seqIterator[V]{next: next, stop: stop}
}

type seqIterator[V any] struct {
	next func() (V, bool)
	stop func()
}

func (it *seqIterator[V]) Next() (any, error) {
	v, ok := it.next()
	if !ok {
		return nil, &Exhausted{}
	}
	return v, nil
}

func (it *seqIterator[V]) Close() error {
	it.stop()
	return nil
}

// FromSlice adapts a slice into a delegation source.
func FromSlice[T any](items []T) Iterator {
	return &sliceIterator[T]{items: items}
}

type sliceIterator[T any] struct {
	items []T
	pos   int
}

func (it *sliceIterator[T]) Next() (any, error) {
	if it.pos >= len(it.items) {
		return nil, &Exhausted{}
	}
	v := it.items[it.pos]
	it.pos++
	return v, nil
}

// Range is a delegation source producing 0, 1, ... stop-1.
func Range[T constraints.Integer](stop T) Iterator {
	return &rangeIterator[T]{stop: stop}
}

type rangeIterator[T constraints.Integer] struct {
	cur  T
	stop T
}

func (it *rangeIterator[T]) Next() (any, error) {
	if it.cur >= it.stop {
		return nil, &Exhausted{}
	}
	v := it.cur
	it.cur++
	return v, nil
}

// Seq drives the coroutine as a range-over-func sequence of its
// yielded values. Breaking out of the range closes the coroutine, so a
// partial iteration does not leak the worker. The sequence ends
// silently on exhaustion; any other failure panics, so callers that
// need the error should drive the coroutine with Next or Collect
// instead.
func (c *Coroutine) Seq() iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			v, err := c.Next()
			if err != nil {
				if errors.Is(err, ErrExhausted) {
					return
				}
				panic(err)
			}
			if !yield(v) {
				c.Close()
				return
			}
		}
	}
}

// Collect drives the coroutine to exhaustion and returns every yielded
// value in order. The error is nil when the coroutine completed
// normally; otherwise the values produced so far are returned along
// with the failure.
func (c *Coroutine) Collect() ([]any, error) {
	var out []any
	for {
		v, err := c.Next()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				return out, nil
			}
			return out, err
		}
		out = append(out, v)
	}
}
