package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Floor — один уровень карты: упорядоченный список комнат плюс два
// слоя аннотаций (Doors, Items), зарезервированных под будущие
// инструменты. Слои аннотаций для ядра НЕПРОЗРАЧНЫ: они хранятся как
// сырой JSON, переживают сохранение/загрузку и undo байт-в-байт, но
// никогда не интерпретируются.
//
// Этаж идентифицируется индексом в Map.Floors.
type Floor struct {
	Rooms []Room
	Doors []json.RawMessage
	Items []json.RawMessage
}

// AddRoom возвращает НОВЫЙ этаж с добавленной комнатой.
// Исходный этаж не меняется — на этом держится snapshot-undo.
func (f Floor) AddRoom(r Room) Floor {
	next := f.clone()
	next.Rooms = append(next.Rooms, r)
	return next
}

// RemoveRoom возвращает новый этаж без комнаты с указанным индексом.
func (f Floor) RemoveRoom(index int) (Floor, error) {
	if index < 0 || index >= len(f.Rooms) {
		return Floor{}, &ModelError{Reason: fmt.Sprintf("room index %d out of range (floor has %d rooms)", index, len(f.Rooms))}
	}
	next := f.clone()
	next.Rooms = append(next.Rooms[:index], next.Rooms[index+1:]...)
	return next, nil
}

// ReplaceRoom возвращает новый этаж, в котором комната index заменена
// на переданную. Используется инструментами, перестраивающими форму
// комнаты целиком.
func (f Floor) ReplaceRoom(index int, r Room) (Floor, error) {
	if index < 0 || index >= len(f.Rooms) {
		return Floor{}, &ModelError{Reason: fmt.Sprintf("room index %d out of range (floor has %d rooms)", index, len(f.Rooms))}
	}
	next := f.clone()
	next.Rooms[index] = r
	return next, nil
}

// clone — поверхностно-глубокая копия: слайсы копируются, сами
// комнаты и сырые слои иммутабельны и разделяются.
func (f Floor) clone() Floor {
	next := Floor{}
	if len(f.Rooms) > 0 {
		next.Rooms = make([]Room, len(f.Rooms))
		copy(next.Rooms, f.Rooms)
	}
	if len(f.Doors) > 0 {
		next.Doors = make([]json.RawMessage, len(f.Doors))
		copy(next.Doors, f.Doors)
	}
	if len(f.Items) > 0 {
		next.Items = make([]json.RawMessage, len(f.Items))
		copy(next.Items, f.Items)
	}
	return next
}

// Equal — структурное равенство этажей, включая непрозрачные слои
// (те сравниваются побайтово).
func (f Floor) Equal(other Floor) bool {
	if len(f.Rooms) != len(other.Rooms) {
		return false
	}
	for i := range f.Rooms {
		if !f.Rooms[i].Equal(other.Rooms[i]) {
			return false
		}
	}
	return rawEqual(f.Doors, other.Doors) && rawEqual(f.Items, other.Items)
}

func rawEqual(a, b []json.RawMessage) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
