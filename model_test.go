package gencoro

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestCheckCoroutine(t *testing.T) {
	rapid.Check(t, checkCoroutine)
}

// checkCoroutine drives an echo coroutine through random operation
// sequences and checks every result and state transition against a
// model of the lifecycle.
func checkCoroutine(t *rapid.T) {
	co := New(func() (any, error) {
		count := 0
		v := Yield(nil)
		for v != "stop" {
			count++
			v = Yield(v)
		}
		return count, nil
	})
	defer func() {
		if !co.State().terminal() {
			co.Close()
		}
	}()

	state := NotStarted
	count := 0
	var final any

	checkExhausted := func(t *rapid.T, out any, err error) {
		if out != nil {
			t.Fatalf("terminal call returned value %v", out)
		}
		var ex *Exhausted
		if !errors.As(err, &ex) {
			t.Fatalf("terminal call: got %v, expected exhaustion", err)
		}
		if ex.Value != final {
			t.Fatalf("final value: got %v, expected %v", ex.Value, final)
		}
	}

	actions := make(map[string]func(t *rapid.T))

	actions["resume"] = func(t *rapid.T) {
		x := rapid.Int().Draw(t, "value")
		out, err := co.Resume(x)
		switch state {
		case NotStarted:
			if out != nil || err != nil {
				t.Fatalf("first resume: got (%v, %v), expected (nil, nil)", out, err)
			}
			state = Suspended
		case Suspended:
			if out != x || err != nil {
				t.Fatalf("resume echo: got (%v, %v), expected (%d, nil)", out, err, x)
			}
			count++
		default:
			checkExhausted(t, out, err)
		}
	}

	actions["send"] = func(t *rapid.T) {
		x := rapid.Int().Draw(t, "value")
		out, err := co.Send(x)
		switch state {
		case NotStarted:
			var ue *UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("send before resume: got %v, expected usage error", err)
			}
		case Suspended:
			if out != x || err != nil {
				t.Fatalf("send echo: got (%v, %v), expected (%d, nil)", out, err, x)
			}
			count++
		default:
			checkExhausted(t, out, err)
		}
	}

	actions["next"] = func(t *rapid.T) {
		out, err := co.Next()
		switch state {
		case NotStarted:
			if out != nil || err != nil {
				t.Fatalf("first next: got (%v, %v), expected (nil, nil)", out, err)
			}
			state = Suspended
		case Suspended:
			if out != nil || err != nil {
				t.Fatalf("next echo: got (%v, %v), expected (nil, nil)", out, err)
			}
			count++
		default:
			checkExhausted(t, out, err)
		}
	}

	actions["stop"] = func(t *rapid.T) {
		out, err := co.Send("stop")
		switch state {
		case NotStarted:
			var ue *UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("stop before resume: got %v, expected usage error", err)
			}
		case Suspended:
			final = count
			state = Completed
			checkExhausted(t, out, err)
		default:
			checkExhausted(t, out, err)
		}
	}

	boom := errors.New("boom")
	actions["throw"] = func(t *rapid.T) {
		_, err := co.Throw(boom)
		if err != boom {
			t.Fatalf("throw: got %v, expected %v", err, boom)
		}
		if state == NotStarted || state == Suspended {
			state = Failed
			final = nil
		}
	}

	actions["close"] = func(t *rapid.T) {
		if err := co.Close(); err != nil {
			t.Fatalf("close: got %v, expected nil", err)
		}
		if state == NotStarted || state == Suspended {
			state = Closed
			final = nil
		}
	}

	actions[""] = func(t *rapid.T) {
		if got := co.State(); got != state {
			t.Fatalf("state: got %v, expected %v", got, state)
		}
	}

	t.Repeat(actions)
}
