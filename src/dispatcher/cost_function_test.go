package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"scanvator/src/types"
)

func TestTimeToServe(t *testing.T) {
	tests := []struct {
		name    string
		pending [][2]int
		req     types.Request
		want    time.Duration
	}{
		{"idle car", nil, types.NewRequest(types.Outside, 4), 8 * time.Second},
		{"call at car", nil, types.NewRequest(types.Outside, 0).WithDestination(6), 0},
		{"stop on the way", [][2]int{{0, 2}}, types.NewRequest(types.Outside, 4), 4*time.Second + 3*time.Second + 4*time.Second},
		{"after same-floor stop", [][2]int{{0, 4}}, types.NewRequest(types.Inside, 0).WithDestination(4), 8*time.Second + 3*time.Second},
		{"behind the up scan", [][2]int{{0, 5}}, types.NewRequest(types.Outside, 3).WithDestination(1), 10*time.Second + 3*time.Second + 4*time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(0, instant{})
			for _, p := range tt.pending {
				if _, err := d.SubmitRequest(types.Inside, p[0], p[1]); err != nil {
					t.Fatal(err)
				}
			}
			before := d.Status().Plan

			got, err := d.TimeToServe(tt.req)
			if err != nil {
				t.Fatalf("TimeToServe(%s) = %v", tt.req, err)
			}
			if got != tt.want {
				t.Errorf("TimeToServe(%s) = %v, expected %v", tt.req, got, tt.want)
			}
			after := d.Status().Plan
			if len(after.Up) != len(before.Up) || len(after.Down) != len(before.Down) {
				t.Errorf("TimeToServe changed the plan from %+v to %+v", before, after)
			}
		})
	}
}

func TestTimeToServeRejects(t *testing.T) {
	d := newTestDispatcher(0, instant{})
	if _, err := d.TimeToServe(types.NewRequest(types.Inside, 3)); !errors.Is(err, types.ErrInvalidRequest) {
		t.Errorf("TimeToServe(inside without destination) = %v, expected ErrInvalidRequest", err)
	}
	d.TriggerEmergency()
	if _, err := d.TimeToServe(types.NewRequest(types.Outside, 3)); !errors.Is(err, types.ErrEmergencyActive) {
		t.Errorf("TimeToServe during emergency = %v, expected ErrEmergencyActive", err)
	}
}

func TestTimeToServeWhileTravelling(t *testing.T) {
	g := newGate()
	d := newTestDispatcher(0, g)
	if _, err := d.SubmitRequest(types.Inside, 0, 9); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Drain(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	if dur := <-g.entered; dur != 18*time.Second {
		t.Fatalf("transit sleep = %v, expected 18s for 9 floors", dur)
	}

	// The stop at 9 is already popped: the car finishes it, dwells, then comes back for the call.
	got, err := d.TimeToServe(types.NewRequest(types.Outside, 1))
	if err != nil {
		t.Fatalf("TimeToServe mid-transit = %v", err)
	}
	want := 18*time.Second + 3*time.Second + 16*time.Second
	if got > want || got < want-time.Second {
		t.Errorf("TimeToServe mid-transit = %v, expected about %v", got, want)
	}
}

func TestTimeToServeWhileDwelling(t *testing.T) {
	g := newGate()
	d := newTestDispatcher(0, g)
	if _, err := d.SubmitRequest(types.Inside, 0, 2); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Drain(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	<-g.entered // transit to 2
	g.release <- struct{}{}
	if dur := <-g.entered; dur != 3*time.Second {
		t.Fatalf("dwell sleep = %v, expected 3s", dur)
	}

	got, err := d.TimeToServe(types.NewRequest(types.Outside, 5))
	if err != nil {
		t.Fatalf("TimeToServe while dwelling = %v", err)
	}
	want := 3*time.Second + 6*time.Second
	if got > want || got < want-time.Second {
		t.Errorf("TimeToServe while dwelling = %v, expected about %v", got, want)
	}
}

func TestEstimateLeavesBaseUntouched(t *testing.T) {
	d := newTestDispatcher(0, instant{})
	planned := types.NewRequest(types.Inside, 0).WithDestination(5)
	planned.ID = 7
	up := make([]types.Request, 1, 4)
	up[0] = planned
	base := &simCar{Floor: 0, State: types.Idle, Up: up}

	stops := []types.Request{types.NewRequest(types.Outside, 2).PickupStop()}
	got, err := d.estimate(base, types.DirUp, stops)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4*time.Second {
		t.Errorf("estimate = %v, expected 4s", got)
	}
	if len(base.Up) != 1 || base.Up[0].ID != 7 || up[:2][1].ID != 0 {
		t.Errorf("base plan changed to %v", up[:2])
	}
}

func TestTimeToServeEach(t *testing.T) {
	d := newTestDispatcher(0, instant{})
	if _, err := d.SubmitRequest(types.Inside, 0, 5); err != nil {
		t.Fatal(err)
	}
	reqs := []types.Request{
		types.NewRequest(types.Outside, 2),
		types.NewRequest(types.Outside, 7),
		types.NewRequest(types.Inside, 3).WithDestination(1),
	}

	got, err := d.TimeToServeEach(reqs)
	if err != nil {
		t.Fatal(err)
	}
	for i, req := range reqs {
		single, err := d.TimeToServe(req)
		if err != nil {
			t.Fatal(err)
		}
		if got[i] != single {
			t.Errorf("TimeToServeEach[%d] = %v, TimeToServe(%s) = %v", i, got[i], req, single)
		}
	}

	if _, err := d.TimeToServeEach([]types.Request{types.NewRequest(types.Outside, 99)}); !errors.Is(err, types.ErrInvalidRequest) {
		t.Errorf("TimeToServeEach(out of range) = %v, expected ErrInvalidRequest", err)
	}
}
