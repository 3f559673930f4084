package model

import (
	"fmt"

	"mapplanner-server/pkg/geometry"
)

// Room — одна комната: внешняя граница плюс ноль или больше дыр
// (колонны, провалы). У комнаты нет собственного ID — она
// идентифицируется позицией в списке комнат этажа. Порядок в списке
// влияет только на порядок отрисовки.
//
// Room строится ТОЛЬКО через NewRoom и после этого не меняется.
// Любое «изменение» комнаты — это создание новой комнаты и замена
// старой в этаже (construct-then-replace).
type Room struct {
	Boundary geometry.Polygon
	Holes    []geometry.Polygon
}

// NewRoom валидирует границу и дыры и возвращает комнату.
//
// Требования:
//   - граница: >= 3 вершин, ненулевая площадь;
//   - каждая дыра: >= 3 вершин, ненулевая площадь, целиком внутри
//     границы, не пересекается с предыдущими дырами.
//
// При любом нарушении возвращается *GeometryError, и НИКАКОЕ
// состояние не создается (комната либо валидна целиком, либо её нет).
func NewRoom(boundary geometry.Polygon, holes []geometry.Polygon) (Room, error) {
	if err := boundary.Validate(); err != nil {
		return Room{}, &GeometryError{Reason: fmt.Sprintf("boundary: %v", err)}
	}

	for i, hole := range holes {
		if err := hole.Validate(); err != nil {
			return Room{}, &GeometryError{Reason: fmt.Sprintf("hole %d: %v", i, err)}
		}
		if !boundary.ContainsPolygon(hole) {
			return Room{}, &GeometryError{Reason: fmt.Sprintf("hole %d escapes the room boundary", i)}
		}
		for j := 0; j < i; j++ {
			if hole.Overlaps(holes[j]) {
				return Room{}, &GeometryError{Reason: fmt.Sprintf("holes %d and %d overlap", j, i)}
			}
		}
	}

	room := Room{Boundary: boundary.Clone()}
	if len(holes) > 0 {
		room.Holes = make([]geometry.Polygon, len(holes))
		for i, hole := range holes {
			room.Holes[i] = hole.Clone()
		}
	}
	return room, nil
}

// Equal — структурное равенство комнат.
func (r Room) Equal(other Room) bool {
	if !r.Boundary.Equal(other.Boundary) {
		return false
	}
	if len(r.Holes) != len(other.Holes) {
		return false
	}
	for i := range r.Holes {
		if !r.Holes[i].Equal(other.Holes[i]) {
			return false
		}
	}
	return true
}
