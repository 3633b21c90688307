package enum

import "testing"

func TestKitchenStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to KitchenStatus
		want     bool
	}{
		{KitchenStatusPending, KitchenStatusPreparing, true},
		{KitchenStatusPending, KitchenStatusReady, false},
		{KitchenStatusPending, KitchenStatusCompleted, false},
		{KitchenStatusPreparing, KitchenStatusReady, true},
		{KitchenStatusPreparing, KitchenStatusPending, true}, // undo is allowed
		{KitchenStatusPreparing, KitchenStatusCompleted, false},
		{KitchenStatusReady, KitchenStatusCompleted, true},
		{KitchenStatusReady, KitchenStatusPreparing, false},
		{KitchenStatusReady, KitchenStatusPending, false},
		{KitchenStatusCompleted, KitchenStatusPending, false},
		{KitchenStatusCompleted, KitchenStatusPreparing, false},
		{KitchenStatusCompleted, KitchenStatusReady, false},
	}
	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		if got != tt.want {
			t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestKitchenStatusIsActive(t *testing.T) {
	if !KitchenStatusPending.IsActive() || !KitchenStatusPreparing.IsActive() {
		t.Error("pending and preparing tickets should still need kitchen attention")
	}
	if KitchenStatusReady.IsActive() || KitchenStatusCompleted.IsActive() {
		t.Error("ready and completed tickets should be off the active board")
	}
}

func TestParseKitchenStatus(t *testing.T) {
	tests := []struct {
		in   string
		want KitchenStatus
		ok   bool
	}{
		{"pending", KitchenStatusPending, true},
		{"Preparing", KitchenStatusPreparing, true},
		{"READY", KitchenStatusReady, true},
		{"completed", KitchenStatusCompleted, true},
		{"cancelled", KitchenStatusPending, false},
		{"", KitchenStatusPending, false},
	}
	for _, tt := range tests {
		got, ok := ParseKitchenStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKitchenStatus(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKitchenStatusString(t *testing.T) {
	tests := []struct {
		status KitchenStatus
		want   string
	}{
		{KitchenStatusPending, "Pending"},
		{KitchenStatusPreparing, "Preparing"},
		{KitchenStatusReady, "Ready"},
		{KitchenStatusCompleted, "Completed"},
		{KitchenStatus(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("KitchenStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
