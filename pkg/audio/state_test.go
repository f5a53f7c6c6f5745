package audio

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		allowed  bool
	}{
		{Prepared, Playing, true},
		{Paused, Playing, true},
		{Stopped, Playing, true},
		{Playing, Playing, false},
		{Playing, Paused, true},
		{Prepared, Paused, false},
		{Stopped, Paused, false},
		{Playing, Stopped, true},
		{Paused, Stopped, true},
		{Prepared, Stopped, false},
		{Stopped, Stopped, false},
		{Playing, Prepared, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("Expected %v, got %v", tt.allowed, got)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Paused.String() != "paused" {
		t.Errorf("Expected 'paused', got %q", Paused.String())
	}
	if State(9).String() != "State(9)" {
		t.Errorf("Expected 'State(9)', got %q", State(9).String())
	}
	if StopAsAuthored.String() != "as-authored" || StopImmediate.String() != "immediate" {
		t.Error("Unexpected stop option names")
	}
}
