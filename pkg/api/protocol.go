package api

import (
	"encoding/json"

	"mapplanner-server/pkg/geometry"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand — корневой объект всех сообщений клиента.
type ClientCommand struct {
	// Action — название операции (ADD_ROOM, UNDO, SAVE, ...).
	Action string `json:"action"`

	// Payload — JSON с данными операции. Структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// OpenPayload — для OPEN: путь к файлу карты.
type OpenPayload struct {
	Path string `json:"path"`
}

// SavePayload — для SAVE. Пустой Path означает «в текущий файл»
// (сервер ответит ошибкой, если текущего файла нет).
type SavePayload struct {
	Path string `json:"path,omitempty"`
}

// RoomShapePayload — для ADD_ROOM: этаж и форма комнаты.
// Координаты — пары [x, y], как в файле карты.
type RoomShapePayload struct {
	Floor    int           `json:"floor"`
	Boundary [][]float64   `json:"boundary"`
	Holes    [][][]float64 `json:"holes,omitempty"`
}

// RoomRefPayload — для REMOVE_ROOM: адрес комнаты.
type RoomRefPayload struct {
	Floor int `json:"floor"`
	Room  int `json:"room"`
}

// UpdateRoomPayload — для UPDATE_ROOM: адрес комнаты и её новая форма
// целиком (граница + дыры). Частичных правок формы нет — инструменты
// редактора перестраивают комнату заново.
type UpdateRoomPayload struct {
	Floor    int           `json:"floor"`
	Room     int           `json:"room"`
	Boundary [][]float64   `json:"boundary"`
	Holes    [][][]float64 `json:"holes,omitempty"`
}

// FloorRefPayload — для REMOVE_FLOOR и SET_FLOOR.
type FloorRefPayload struct {
	Floor int `json:"floor"`
}

// BoundaryPolygon конвертирует координаты границы в полигон.
// Предполагает успешный Validate.
func (p RoomShapePayload) BoundaryPolygon() geometry.Polygon {
	return toPolygon(p.Boundary)
}

// HolePolygons конвертирует координаты дыр в полигоны.
func (p RoomShapePayload) HolePolygons() []geometry.Polygon {
	return toPolygons(p.Holes)
}

func (p UpdateRoomPayload) BoundaryPolygon() geometry.Polygon {
	return toPolygon(p.Boundary)
}

func (p UpdateRoomPayload) HolePolygons() []geometry.Polygon {
	return toPolygons(p.Holes)
}

func toPolygon(coords [][]float64) geometry.Polygon {
	out := make(geometry.Polygon, len(coords))
	for i, c := range coords {
		out[i] = geometry.Point{X: c[0], Y: c[1]}
	}
	return out
}

func toPolygons(coords [][][]float64) []geometry.Polygon {
	if len(coords) == 0 {
		return nil
	}
	out := make([]geometry.Polygon, len(coords))
	for i, c := range coords {
		out[i] = toPolygon(c)
	}
	return out
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerEvent — корневой объект всех сообщений сервера.
//
// После каждой успешной операции сервер рассылает полный снимок
// карты: карты маленькие, и полный снимок избавляет клиента от
// логики инкрементальных обновлений.
type ServerEvent struct {
	// Type — INIT (первое сообщение клиенту), UPDATE (карта или
	// редакторское состояние изменились) или STATUS (только логи,
	// карта не менялась — например, ошибка валидации).
	Type string `json:"type"`

	// Map — снимок карты в формате документа.
	Map *MapView `json:"map,omitempty"`

	// Filename — текущий файл сессии ("" — карта не сохранялась).
	Filename string `json:"filename"`

	// Dirty — есть ли несохраненные правки.
	Dirty bool `json:"dirty"`

	// CanUndo/CanRedo — для включения/выключения пунктов меню.
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`

	// CurrentFloor — активный этаж сессии.
	CurrentFloor int `json:"currentFloor"`

	// Recent — список недавних файлов (запрашивается командой RECENT,
	// прикладывается к INIT).
	Recent []string `json:"recent,omitempty"`

	// Logs — статусные сообщения, накопленные операцией.
	Logs []LogEntry `json:"logs,omitempty"`
}

// MapView — снимок карты для клиента. Повторяет формат файла,
// чтобы клиент разбирал и файл, и снимок одним кодом.
type MapView struct {
	Floors []FloorView `json:"floors"`
}

type FloorView struct {
	Rooms []RoomView        `json:"rooms"`
	Doors []json.RawMessage `json:"doors,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
}

type RoomView struct {
	Boundary [][]float64   `json:"boundary"`
	Holes    [][][]float64 `json:"holes"`
}

// LogEntry — одно статусное сообщение для статус-бара клиента.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// Типы событий сервера.
const (
	EventInit   = "INIT"
	EventUpdate = "UPDATE"
	EventStatus = "STATUS"
)
