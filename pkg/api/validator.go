package api

import (
	"errors"
	"fmt"
)

// Validator — интерфейс, который могут реализовать DTO.
// Проверяется автоматически при распаковке payload'а команды.
type Validator interface {
	Validate() error
}

func (p OpenPayload) Validate() error {
	if p.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (p RoomShapePayload) Validate() error {
	if p.Floor < 0 {
		return errors.New("floor index cannot be negative")
	}
	if err := validateRing("boundary", p.Boundary); err != nil {
		return err
	}
	for i, hole := range p.Holes {
		if err := validateRing(fmt.Sprintf("hole %d", i), hole); err != nil {
			return err
		}
	}
	return nil
}

func (p RoomRefPayload) Validate() error {
	if p.Floor < 0 {
		return errors.New("floor index cannot be negative")
	}
	if p.Room < 0 {
		return errors.New("room index cannot be negative")
	}
	return nil
}

func (p UpdateRoomPayload) Validate() error {
	if p.Floor < 0 {
		return errors.New("floor index cannot be negative")
	}
	if p.Room < 0 {
		return errors.New("room index cannot be negative")
	}
	if err := validateRing("boundary", p.Boundary); err != nil {
		return err
	}
	for i, hole := range p.Holes {
		if err := validateRing(fmt.Sprintf("hole %d", i), hole); err != nil {
			return err
		}
	}
	return nil
}

func (p FloorRefPayload) Validate() error {
	if p.Floor < 0 {
		return errors.New("floor index cannot be negative")
	}
	return nil
}

// validateRing проверяет форму координатного кольца: арность пар и
// минимум вершин. Геометрические инварианты (площадь, вложенность дыр)
// проверяет модель — здесь только формат.
func validateRing(what string, coords [][]float64) error {
	if len(coords) < 3 {
		return fmt.Errorf("%s needs at least 3 points, got %d", what, len(coords))
	}
	for i, c := range coords {
		if len(c) != 2 {
			return fmt.Errorf("%s coordinate %d has %d components, want 2", what, i, len(c))
		}
	}
	return nil
}
