package mapfile

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/geometry"
)

const (
	// Version1 — единственная поддерживаемая версия документа.
	Version1 = 1

	// ExtGmap и ExtJSON — расширения, которые распознаются как файлы карт.
	ExtGmap = ".gmap"
	ExtJSON = ".json"
)

// FormatError — документ не может быть прочитан: не JSON, неизвестная
// версия, кривая координата. Отличается от GeometryError: формат
// корректен, но геометрия невалидна — это ошибка модели, не формата.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "format: " + e.Reason
}

// Document — точное представление файла карты.
//
// Порядок полей структур фиксирует порядок ключей в JSON, поэтому
// одинаковые карты всегда дают байт-в-байт одинаковые файлы.
type Document struct {
	Version int        `json:"version"`
	Floors  []FloorDoc `json:"floors"`
}

type FloorDoc struct {
	Rooms []RoomDoc `json:"rooms"`

	// Непрозрачные слои аннотаций. Переносятся как есть.
	Doors []json.RawMessage `json:"doors,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
}

type RoomDoc struct {
	// Координаты — пары [x, y]. Слайс (а не массив [2]float64),
	// потому что encoding/json молча обрезает лишние элементы при
	// декодировании в массив, а нам нужна жесткая проверка арности.
	Boundary [][]float64   `json:"boundary"`
	Holes    [][][]float64 `json:"holes"`
}

// RecognizedExt проверяет расширение файла карты.
func RecognizedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtGmap, ExtJSON:
		return true
	}
	return false
}

// FromMap строит документ из модели. Не может провалиться: модель по
// построению валидна.
func FromMap(m model.Map) Document {
	doc := Document{
		Version: Version1,
		Floors:  make([]FloorDoc, len(m.Floors)),
	}
	for i, floor := range m.Floors {
		fd := FloorDoc{
			Rooms: make([]RoomDoc, len(floor.Rooms)),
			Doors: floor.Doors,
			Items: floor.Items,
		}
		for j, room := range floor.Rooms {
			rd := RoomDoc{
				Boundary: polygonToCoords(room.Boundary),
				Holes:    make([][][]float64, len(room.Holes)),
			}
			for k, hole := range room.Holes {
				rd.Holes[k] = polygonToCoords(hole)
			}
			fd.Rooms[j] = rd
		}
		doc.Floors[i] = fd
	}
	return doc
}

// ToMap восстанавливает модель из документа.
//
// Вся геометрия проходит через те же конструкторы, что и при
// интерактивном создании — загруженные данные НЕ обходят инварианты.
func (d Document) ToMap() (model.Map, error) {
	if d.Version != Version1 {
		return model.Map{}, &FormatError{Reason: fmt.Sprintf("unsupported version %d (expected %d)", d.Version, Version1)}
	}
	if len(d.Floors) == 0 {
		return model.Map{}, &FormatError{Reason: "a map document must contain at least one floor"}
	}

	m := model.Map{Floors: make([]model.Floor, len(d.Floors))}
	for i, fd := range d.Floors {
		doors, err := normalizeLayer(fd.Doors)
		if err != nil {
			return model.Map{}, &FormatError{Reason: fmt.Sprintf("floor %d doors: %v", i, err)}
		}
		items, err := normalizeLayer(fd.Items)
		if err != nil {
			return model.Map{}, &FormatError{Reason: fmt.Sprintf("floor %d items: %v", i, err)}
		}
		floor := model.Floor{
			Doors: doors,
			Items: items,
		}
		for j, rd := range fd.Rooms {
			boundary, err := coordsToPolygon(rd.Boundary)
			if err != nil {
				return model.Map{}, &FormatError{Reason: fmt.Sprintf("floor %d room %d boundary: %v", i, j, err)}
			}
			holes := make([]geometry.Polygon, len(rd.Holes))
			for k, hc := range rd.Holes {
				hole, err := coordsToPolygon(hc)
				if err != nil {
					return model.Map{}, &FormatError{Reason: fmt.Sprintf("floor %d room %d hole %d: %v", i, j, k, err)}
				}
				holes[k] = hole
			}
			room, err := model.NewRoom(boundary, holes)
			if err != nil {
				return model.Map{}, fmt.Errorf("floor %d room %d: %w", i, j, err)
			}
			floor.Rooms = append(floor.Rooms, room)
		}
		m.Floors[i] = floor
	}
	return m, nil
}

// normalizeLayer приводит записи непрозрачного слоя к той форме, в
// которой json.Marshal запишет их обратно (компактной, с экранированием).
// json.Unmarshal сохраняет в RawMessage байты входа как есть, включая
// пробелы, поэтому без нормализации карта из «красиво» отформатированного
// файла не была бы равна самой себе после save/load.
func normalizeLayer(layer []json.RawMessage) ([]json.RawMessage, error) {
	if len(layer) == 0 {
		return nil, nil
	}
	out := make([]json.RawMessage, len(layer))
	for i, raw := range layer {
		norm, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %v", i, err)
		}
		out[i] = norm
	}
	return out, nil
}

func polygonToCoords(p geometry.Polygon) [][]float64 {
	out := make([][]float64, len(p))
	for i, pt := range p {
		out[i] = []float64{pt.X, pt.Y}
	}
	return out
}

func coordsToPolygon(coords [][]float64) (geometry.Polygon, error) {
	p := make(geometry.Polygon, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("coordinate %d has %d components, want 2", i, len(c))
		}
		p[i] = geometry.Point{X: c[0], Y: c[1]}
	}
	return p, nil
}
