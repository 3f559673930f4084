package commands

import (
	"mapplanner-server/internal/editor"
	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/api"
)

func init() {
	Register("ADD_FLOOR", WithEmptyPayload(buildAddFloor))
	Register("REMOVE_FLOOR", WithPayload(buildRemoveFloor))
}

// --- ADD_FLOOR ---

type addFloor struct{}

// NewAddFloor — правка «добавить пустой этаж в конец».
func NewAddFloor() editor.Command {
	return addFloor{}
}

func (addFloor) Name() string { return "add floor" }

func (addFloor) Apply(m model.Map) (model.Map, error) {
	return m.AddFloor(), nil
}

func buildAddFloor() (editor.Command, error) {
	return NewAddFloor(), nil
}

// --- REMOVE_FLOOR ---

type removeFloor struct {
	floor int
}

// NewRemoveFloor — правка «удалить этаж». Последний этаж карты
// удалить нельзя (model.ErrLastFloor).
func NewRemoveFloor(floor int) editor.Command {
	return removeFloor{floor: floor}
}

func (c removeFloor) Name() string { return "remove floor" }

func (c removeFloor) Apply(m model.Map) (model.Map, error) {
	return m.RemoveFloor(c.floor)
}

func buildRemoveFloor(p api.FloorRefPayload) (editor.Command, error) {
	return NewRemoveFloor(p.Floor), nil
}
