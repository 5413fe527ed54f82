package types

import "testing"

func TestRequestDirection(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Direction
	}{
		{"up", NewRequest(Inside, 1).WithDestination(5), DirUp},
		{"down", NewRequest(Outside, 7).WithDestination(0), DirDown},
		{"same floor", NewRequest(Inside, 3).WithDestination(3), DirIdle},
		{"no destination", NewRequest(Outside, 3), DirIdle},
		{"destination ground floor", NewRequest(Inside, 4).WithDestination(0), DirDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Direction(); got != tt.want {
				t.Errorf("Direction() = %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestRequestTargetAndPickup(t *testing.T) {
	call := NewRequest(Outside, 3)
	if call.Target() != 3 {
		t.Errorf("Target() of call = %d, expected 3", call.Target())
	}

	travel := NewRequest(Outside, 3).WithDestination(7)
	if travel.Target() != 7 || travel.IsPickup() {
		t.Errorf("travel = %v, expected travel to 7", travel)
	}
	stop := travel.PickupStop()
	if !stop.IsPickup() || stop.Target() != 3 || stop.Direction() != DirIdle {
		t.Errorf("PickupStop() = %v, expected pickup at 3", stop)
	}
	if travel.IsPickup() {
		t.Errorf("PickupStop() modified the original request")
	}
}

func TestRequestDefaults(t *testing.T) {
	req := NewRequest(Inside, 2)
	if req.ElevatorType != Passenger || req.Kind != Travel || req.HasDestination {
		t.Errorf("NewRequest() = %+v", req)
	}
	if svc := req.AsService(); svc.ElevatorType != Service {
		t.Errorf("AsService() type = %s", svc.ElevatorType)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{NewRequest(Inside, 1).WithDestination(5).String(), "#0 Inside(1->5)"},
		{NewRequest(Outside, 4).String(), "#0 Outside(4->?)"},
		{NewRequest(Outside, 4).WithDestination(1).PickupStop().String(), "#0 Pickup(4)"},
		{Event{Kind: EventArrived, Floor: 5}.String(), "Arrived(5)"},
		{Event{Kind: EventDoorClosed, Floor: 5}.String(), "DoorClosed()"},
		{Event{Kind: EventStateChanged, From: MovingDown, To: Emergency}.String(), "StateChanged(MovingDown, Emergency)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, expected %q", tt.got, tt.want)
		}
	}
}

func TestDirectionHelpers(t *testing.T) {
	if DirectionBetween(2, 2) != DirIdle || DirectionBetween(1, 2) != DirUp || DirectionBetween(2, 1) != DirDown {
		t.Errorf("DirectionBetween mismatch")
	}
	if DirUp.Opposite() != DirDown || DirDown.Opposite() != DirUp || DirIdle.Opposite() != DirIdle {
		t.Errorf("Opposite mismatch")
	}
	if s, ok := MovingState(DirDown); !ok || s != MovingDown {
		t.Errorf("MovingState(Down) = %s, %v", s, ok)
	}
	if _, ok := MovingState(DirIdle); ok {
		t.Errorf("MovingState(Idle) reported a moving state")
	}
}
