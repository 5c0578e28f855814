package gencoro

// State is the lifecycle position of a coroutine handle. Transient
// states (NotStarted, Suspended) are entered and left by driver calls;
// Completed, Closed and Failed are terminal.
type State int32

const (
	// NotStarted means the worker goroutine has not been spawned yet.
	NotStarted State = iota

	// Running means a driver call is in flight and the worker owns
	// execution.
	Running

	// Suspended means the worker is parked at a suspension point
	// waiting for the next driver call.
	Suspended

	// Completed means the body returned normally; the final value is
	// carried by the *Exhausted error of later calls.
	Completed

	// Closed means the coroutine was canceled, either by Close or by
	// the body itself raising ErrCanceled.
	Closed

	// Failed means the body escaped with an error or a panic.
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	case Closed:
		return "closed"
	case Failed:
		return "failed"
	}
	return "invalid"
}

func (s State) terminal() bool {
	return s == Completed || s == Closed || s == Failed
}
