package gencoro

import "testing"

func TestStateString(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{NotStarted, "not-started"},
		{Running, "running"},
		{Suspended, "suspended"},
		{Completed, "completed"},
		{Closed, "closed"},
		{Failed, "failed"},
		{State(99), "invalid"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{NotStarted, Running, Suspended} {
		if s.terminal() {
			t.Errorf("Expected %v to be non-terminal", s)
		}
	}
	for _, s := range []State{Completed, Closed, Failed} {
		if !s.terminal() {
			t.Errorf("Expected %v to be terminal", s)
		}
	}
}
