package gencoro

import "sync/atomic"

type payloadKind uint8

const (
	pValue payloadKind = iota
	pError
	pCancel
	pReturn
)

// payload is the tagged mailbox slot exchanged at every handoff: a
// yielded or sent value, an injected or escaped error, a cancellation,
// or the body's final return value.
type payload struct {
	kind  payloadKind
	value any
	err   error
}

// handoff is the exclusive execution transfer between the driver and
// the worker of one coroutine. The unbuffered channels double as the
// wait/signal pair: a send is mailbox-write plus wake-up and the
// matching receive is wait plus mailbox-read, so at most one of the
// two parties runs at any instant and the payload needs no locking.
type handoff struct {
	toWorker chan payload
	toDriver chan payload
	done     atomic.Bool

	// delivered is the error most recently handed into the body by the
	// machinery, either injected by Throw or relayed out of a
	// delegation. The worker records it before panicking so that the
	// terminal classification can tell a transported error from an
	// organic panic. Touched only by the worker goroutine.
	delivered error
}

func newHandoff() *handoff {
	return &handoff{
		toWorker: make(chan payload),
		toDriver: make(chan payload),
	}
}

// first blocks for the worker's first hand-back. The worker starts
// executing the body as soon as it is spawned, so the first resume has
// nothing to send.
func (h *handoff) first() payload {
	return <-h.toDriver
}

// handoffToWorker passes execution to the worker and blocks until the
// worker hands back. Driver side only, and only while the worker is
// parked at a suspension point.
func (h *handoff) handoffToWorker(p payload) payload {
	if h.done.Load() {
		panic("gencoro: handoff to a terminated worker")
	}
	h.toWorker <- p
	return <-h.toDriver
}

// handoffToDriver is the mirror image, called only by the worker.
func (h *handoff) handoffToDriver(p payload) payload {
	if h.done.Load() {
		panic("gencoro: handoff from a terminated worker")
	}
	h.toDriver <- p
	return <-h.toWorker
}

// finish hands the worker's terminal payload to the driver. The worker
// must not touch the channel again afterwards.
func (h *handoff) finish(p payload) {
	h.done.Store(true)
	h.toDriver <- p
}
