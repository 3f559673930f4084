package model

import "fmt"

// Map — вся карта: упорядоченный список этажей.
//
// Карта не знает ничего про файлы, dirty-флаг или undo — всё это
// живёт в editor.Session. Благодаря этому модель сериализуется
// «в чистом виде» и сравнивается структурно.
//
// Инвариант: карта всегда содержит хотя бы один этаж.
type Map struct {
	Floors []Floor
}

// New создает карту по умолчанию: один пустой этаж.
func New() Map {
	return Map{Floors: []Floor{{}}}
}

// Floor возвращает этаж по индексу.
func (m Map) Floor(index int) (Floor, error) {
	if index < 0 || index >= len(m.Floors) {
		return Floor{}, &ModelError{Reason: fmt.Sprintf("floor index %d out of range (map has %d floors)", index, len(m.Floors))}
	}
	return m.Floors[index], nil
}

// AddFloor возвращает новую карту с пустым этажом в конце.
func (m Map) AddFloor() Map {
	next := m.clone()
	next.Floors = append(next.Floors, Floor{})
	return next
}

// RemoveFloor возвращает новую карту без указанного этажа.
// Удаление последнего оставшегося этажа запрещено (ErrLastFloor).
func (m Map) RemoveFloor(index int) (Map, error) {
	if index < 0 || index >= len(m.Floors) {
		return Map{}, &ModelError{Reason: fmt.Sprintf("floor index %d out of range (map has %d floors)", index, len(m.Floors))}
	}
	if len(m.Floors) == 1 {
		return Map{}, ErrLastFloor
	}
	next := m.clone()
	next.Floors = append(next.Floors[:index], next.Floors[index+1:]...)
	return next, nil
}

// WithFloor возвращает новую карту, в которой этаж index заменен.
func (m Map) WithFloor(index int, f Floor) (Map, error) {
	if index < 0 || index >= len(m.Floors) {
		return Map{}, &ModelError{Reason: fmt.Sprintf("floor index %d out of range (map has %d floors)", index, len(m.Floors))}
	}
	next := m.clone()
	next.Floors[index] = f
	return next, nil
}

func (m Map) clone() Map {
	next := Map{Floors: make([]Floor, len(m.Floors))}
	copy(next.Floors, m.Floors)
	return next
}

// Equal — структурное равенство карт. Это равенство, о котором
// говорит закон round-trip: deserialize(serialize(m)).Equal(m).
func (m Map) Equal(other Map) bool {
	if len(m.Floors) != len(other.Floors) {
		return false
	}
	for i := range m.Floors {
		if !m.Floors[i].Equal(other.Floors[i]) {
			return false
		}
	}
	return true
}
