package commands

import (
	"mapplanner-server/internal/editor"
	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/api"
)

func init() {
	Register("ADD_ROOM", WithPayload(buildAddRoom))
	Register("REMOVE_ROOM", WithPayload(buildRemoveRoom))
	Register("UPDATE_ROOM", WithPayload(buildUpdateRoom))
}

// --- ADD_ROOM ---

type addRoom struct {
	floor int
	room  model.Room
}

// NewAddRoom — правка «добавить комнату на этаж».
// Комната уже валидна: геометрия проверена в model.NewRoom.
func NewAddRoom(floor int, room model.Room) editor.Command {
	return addRoom{floor: floor, room: room}
}

func (c addRoom) Name() string { return "add room" }

func (c addRoom) Apply(m model.Map) (model.Map, error) {
	f, err := m.Floor(c.floor)
	if err != nil {
		return model.Map{}, err
	}
	return m.WithFloor(c.floor, f.AddRoom(c.room))
}

func buildAddRoom(p api.RoomShapePayload) (editor.Command, error) {
	room, err := model.NewRoom(p.BoundaryPolygon(), p.HolePolygons())
	if err != nil {
		return nil, err
	}
	return NewAddRoom(p.Floor, room), nil
}

// --- REMOVE_ROOM ---

type removeRoom struct {
	floor int
	room  int
}

// NewRemoveRoom — правка «убрать комнату с этажа».
func NewRemoveRoom(floor, room int) editor.Command {
	return removeRoom{floor: floor, room: room}
}

func (c removeRoom) Name() string { return "remove room" }

func (c removeRoom) Apply(m model.Map) (model.Map, error) {
	f, err := m.Floor(c.floor)
	if err != nil {
		return model.Map{}, err
	}
	next, err := f.RemoveRoom(c.room)
	if err != nil {
		return model.Map{}, err
	}
	return m.WithFloor(c.floor, next)
}

func buildRemoveRoom(p api.RoomRefPayload) (editor.Command, error) {
	return NewRemoveRoom(p.Floor, p.Room), nil
}

// --- UPDATE_ROOM ---

type updateRoom struct {
	floor int
	index int
	room  model.Room
}

// NewUpdateRoom — правка «заменить форму комнаты целиком».
// Так коммитят результат инструменты, перестраивающие контур.
func NewUpdateRoom(floor, index int, room model.Room) editor.Command {
	return updateRoom{floor: floor, index: index, room: room}
}

func (c updateRoom) Name() string { return "update room" }

func (c updateRoom) Apply(m model.Map) (model.Map, error) {
	f, err := m.Floor(c.floor)
	if err != nil {
		return model.Map{}, err
	}
	next, err := f.ReplaceRoom(c.index, c.room)
	if err != nil {
		return model.Map{}, err
	}
	return m.WithFloor(c.floor, next)
}

func buildUpdateRoom(p api.UpdateRoomPayload) (editor.Command, error) {
	room, err := model.NewRoom(p.BoundaryPolygon(), p.HolePolygons())
	if err != nil {
		return nil, err
	}
	return NewUpdateRoom(p.Floor, p.Room, room), nil
}
