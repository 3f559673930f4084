package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mapplanner-server/internal/editor"
	"mapplanner-server/pkg/api"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	recent := NewRecentFiles(filepath.Join(t.TempDir(), "recent.txt"))
	return New(editor.NewSession(), "0", recent)
}

func command(action, payload string) api.ClientCommand {
	cmd := api.ClientCommand{Action: action}
	if payload != "" {
		cmd.Payload = json.RawMessage(payload)
	}
	return cmd
}

func TestExecute_Init(t *testing.T) {
	s := testServer(t)

	ev := s.Execute(command("INIT", ""))
	if ev.Type != api.EventInit {
		t.Fatalf("expected INIT event, got %s", ev.Type)
	}
	if ev.Map == nil {
		t.Fatal("INIT must carry the map snapshot")
	}
	if len(ev.Map.Floors) != 1 {
		t.Errorf("fresh map should have 1 floor, got %d", len(ev.Map.Floors))
	}
	if ev.Dirty || ev.CanUndo || ev.CanRedo {
		t.Error("fresh session flags should all be false")
	}
}

func TestExecute_AddRoom(t *testing.T) {
	s := testServer(t)

	ev := s.Execute(command("ADD_ROOM", `{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]]}`))
	if ev.Type != api.EventUpdate {
		t.Fatalf("expected UPDATE, got %s (logs: %v)", ev.Type, ev.Logs)
	}
	if len(ev.Map.Floors[0].Rooms) != 1 {
		t.Errorf("snapshot should show 1 room, got %d", len(ev.Map.Floors[0].Rooms))
	}
	if !ev.Dirty || !ev.CanUndo {
		t.Error("after an edit the session should be dirty and undoable")
	}
	if len(ev.Logs) == 0 || ev.Logs[0].Type != "INFO" {
		t.Errorf("expected an INFO status log, got %v", ev.Logs)
	}
}

func TestExecute_InvalidRoomIsStatusOnly(t *testing.T) {
	s := testServer(t)

	// Hole outside the boundary: rejected, no map change
	ev := s.Execute(command("ADD_ROOM",
		`{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]],"holes":[[[50,50],[60,50],[60,60],[50,60]]]}`))
	if ev.Type != api.EventStatus {
		t.Fatalf("expected STATUS, got %s", ev.Type)
	}
	if len(ev.Logs) == 0 || ev.Logs[0].Type != "ERROR" {
		t.Errorf("expected an ERROR log, got %v", ev.Logs)
	}
	if ev.Dirty {
		t.Error("rejected edit must not dirty the session")
	}

	// The map is untouched
	init := s.Execute(command("INIT", ""))
	if len(init.Map.Floors[0].Rooms) != 0 {
		t.Error("rejected room appeared in the map")
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	s := testServer(t)
	ev := s.Execute(command("LAUNCH_MISSILES", ""))
	if ev.Type != api.EventStatus {
		t.Fatalf("expected STATUS, got %s", ev.Type)
	}
	if len(ev.Logs) == 0 || ev.Logs[0].Type != "ERROR" {
		t.Errorf("expected an ERROR log, got %v", ev.Logs)
	}
}

func TestExecute_UndoRedo(t *testing.T) {
	s := testServer(t)
	s.Execute(command("ADD_ROOM", `{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]]}`))

	ev := s.Execute(command("UNDO", ""))
	if ev.Type != api.EventUpdate {
		t.Fatalf("undo should produce UPDATE, got %s", ev.Type)
	}
	if len(ev.Map.Floors[0].Rooms) != 0 {
		t.Error("undo should remove the room from the snapshot")
	}
	if !ev.CanRedo {
		t.Error("undo should enable redo")
	}

	ev = s.Execute(command("REDO", ""))
	if len(ev.Map.Floors[0].Rooms) != 1 {
		t.Error("redo should restore the room")
	}

	// Empty history: plain status, no update
	s.Execute(command("UNDO", ""))
	ev = s.Execute(command("UNDO", ""))
	if ev.Type != api.EventStatus {
		t.Errorf("undo with empty history should be STATUS, got %s", ev.Type)
	}
}

func TestExecute_SaveOpenWithRecent(t *testing.T) {
	s := testServer(t)
	path := filepath.Join(t.TempDir(), "dungeon.gmap")

	s.Execute(command("ADD_ROOM", `{"floor":0,"boundary":[[0,0],[10,0],[10,10],[0,10]]}`))

	ev := s.Execute(command("SAVE", `{"path":"`+path+`"}`))
	if ev.Type != api.EventUpdate {
		t.Fatalf("save should produce UPDATE (dirty flag changed), got %s: %v", ev.Type, ev.Logs)
	}
	if ev.Dirty {
		t.Error("save should clear dirty")
	}
	if ev.Filename != path {
		t.Errorf("filename = %q, want %q", ev.Filename, path)
	}
	if len(ev.Recent) == 0 || ev.Recent[0] != path {
		t.Errorf("save should put the path on top of recent, got %v", ev.Recent)
	}

	ev = s.Execute(command("OPEN", `{"path":"`+path+`"}`))
	if ev.Type != api.EventUpdate {
		t.Fatalf("open should produce UPDATE, got %s: %v", ev.Type, ev.Logs)
	}
	if len(ev.Map.Floors[0].Rooms) != 1 {
		t.Error("opened map should contain the saved room")
	}
}

func TestExecute_SaveWithoutFilename(t *testing.T) {
	s := testServer(t)
	ev := s.Execute(command("SAVE", ""))
	if ev.Type != api.EventStatus {
		t.Fatalf("expected STATUS, got %s", ev.Type)
	}
	if len(ev.Logs) == 0 || ev.Logs[0].Type != "ERROR" {
		t.Errorf("expected an ERROR log, got %v", ev.Logs)
	}
}

func TestExecute_OpenBadExtension(t *testing.T) {
	s := testServer(t)
	ev := s.Execute(command("OPEN", `{"path":"/maps/map.txt"}`))
	if ev.Type != api.EventStatus {
		t.Fatalf("expected STATUS, got %s", ev.Type)
	}
	if len(ev.Logs) == 0 || ev.Logs[0].Type != "ERROR" {
		t.Errorf("expected an ERROR log, got %v", ev.Logs)
	}
}

func TestExecute_SetFloor(t *testing.T) {
	s := testServer(t)
	s.Execute(command("ADD_FLOOR", ""))

	ev := s.Execute(command("SET_FLOOR", `{"floor":1}`))
	if ev.CurrentFloor != 1 {
		t.Errorf("current floor = %d, want 1", ev.CurrentFloor)
	}

	ev = s.Execute(command("SET_FLOOR", `{"floor":9}`))
	if ev.Type != api.EventStatus {
		t.Errorf("selecting a missing floor should be STATUS, got %s", ev.Type)
	}
}

func TestExecute_OpaqueLayersInSnapshot(t *testing.T) {
	s := testServer(t)
	path := filepath.Join(t.TempDir(), "annotated.gmap")

	doc := `{"version":1,"floors":[{"rooms":[],"doors":[{"style":"arch"}],"items":[{"label":"chest"}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	ev := s.Execute(command("OPEN", `{"path":"`+path+`"}`))
	if ev.Type != api.EventUpdate {
		t.Fatalf("open failed: %v", ev.Logs)
	}
	if len(ev.Map.Floors[0].Doors) != 1 || len(ev.Map.Floors[0].Items) != 1 {
		t.Error("opaque layers missing from the snapshot")
	}
}
