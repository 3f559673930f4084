package commands

import (
	"encoding/json"
	"errors"
	"testing"

	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/geometry"
)

func TestBuild_UnknownAction(t *testing.T) {
	if _, err := Build("TELEPORT", nil); err == nil {
		t.Fatal("unknown action should fail")
	}
}

func TestKnown(t *testing.T) {
	for _, action := range []string{"ADD_ROOM", "REMOVE_ROOM", "UPDATE_ROOM", "ADD_FLOOR", "REMOVE_FLOOR"} {
		if !Known(action) {
			t.Errorf("%s should be registered", action)
		}
	}
	if Known("UNDO") {
		t.Error("UNDO is a session operation, not an edit command")
	}
}

func TestBuildAddRoom(t *testing.T) {
	payload := json.RawMessage(`{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]]}`)
	cmd, err := Build("ADD_ROOM", payload)
	if err != nil {
		t.Fatal(err)
	}

	next, err := cmd.Apply(model.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Floors[0].Rooms) != 1 {
		t.Errorf("expected 1 room, got %d", len(next.Floors[0].Rooms))
	}
}

func TestBuildAddRoom_BadPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"too few points", `{"floor":0,"boundary":[[0,0],[10,0]]}`},
		{"bad arity", `{"floor":0,"boundary":[[0,0,5],[10,0],[10,10]]}`},
		{"negative floor", `{"floor":-1,"boundary":[[0,0],[10,0],[10,10]]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build("ADD_ROOM", json.RawMessage(tc.payload)); err == nil {
				t.Error("expected build error")
			}
		})
	}
}

func TestBuildAddRoom_HoleOutsideBoundary(t *testing.T) {
	payload := json.RawMessage(`{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]],"holes":[[[50,50],[60,50],[60,60],[50,60]]]}`)
	_, err := Build("ADD_ROOM", payload)
	var gerr *model.GeometryError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GeometryError, got %v", err)
	}
}

func TestAddRoom_FloorOutOfRange(t *testing.T) {
	cmd, err := Build("ADD_ROOM", json.RawMessage(`{"floor":5,"boundary":[[0,0],[10,0],[10,10],[0,10]]}`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = cmd.Apply(model.New())
	var merr *model.ModelError
	if !errors.As(err, &merr) {
		t.Fatalf("expected ModelError, got %v", err)
	}
}

func TestRemoveRoom(t *testing.T) {
	m, err := NewAddRoom(0, mustRoom(t)).Apply(model.New())
	if err != nil {
		t.Fatal(err)
	}

	next, err := NewRemoveRoom(0, 0).Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Floors[0].Rooms) != 0 {
		t.Error("room not removed")
	}

	if _, err := NewRemoveRoom(0, 3).Apply(m); err == nil {
		t.Error("out-of-range room removal should fail")
	}
}

func TestUpdateRoom(t *testing.T) {
	m, err := NewAddRoom(0, mustRoom(t)).Apply(model.New())
	if err != nil {
		t.Fatal(err)
	}

	payload := json.RawMessage(`{"floor":0,"room":0,"boundary":[[0,0],[20,0],[20,20],[0,20]]}`)
	cmd, err := Build("UPDATE_ROOM", payload)
	if err != nil {
		t.Fatal(err)
	}
	next, err := cmd.Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	got := next.Floors[0].Rooms[0].Boundary
	if got[2].X != 20 || got[2].Y != 20 {
		t.Errorf("boundary not replaced: %v", got)
	}
}

func TestFloorCommands(t *testing.T) {
	m, err := NewAddFloor().Apply(model.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Floors) != 2 {
		t.Fatalf("expected 2 floors, got %d", len(m.Floors))
	}

	m, err = NewRemoveFloor(1).Apply(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Floors) != 1 {
		t.Fatalf("expected 1 floor, got %d", len(m.Floors))
	}

	if _, err := NewRemoveFloor(0).Apply(m); !errors.Is(err, model.ErrLastFloor) {
		t.Errorf("removing the last floor should fail with ErrLastFloor, got %v", err)
	}
}

func mustRoom(t *testing.T) model.Room {
	t.Helper()
	room, err := model.NewRoom(geometry.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return room
}
