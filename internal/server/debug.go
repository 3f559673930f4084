package server

import (
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию редактора.
type DebugHandler struct {
	Server *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{Server: s}
}

// RegisterRoutes регистрирует debug-эндпоинты.
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/session", h.handleSession)
	mux.HandleFunc("/debug/map", h.handleMap)
}

// /debug/session - сводка по сессии: файл, dirty, история, этажи
func (h *DebugHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	type FloorSummary struct {
		Rooms int `json:"rooms"`
		Doors int `json:"doors"`
		Items int `json:"items"`
	}
	type SessionSummary struct {
		Filename     string         `json:"filename"`
		Dirty        bool           `json:"dirty"`
		CanUndo      bool           `json:"canUndo"`
		CanRedo      bool           `json:"canRedo"`
		CurrentFloor int            `json:"currentFloor"`
		Floors       []FloorSummary `json:"floors"`
	}

	h.Server.mu.Lock()
	session := h.Server.session
	summary := SessionSummary{
		Filename:     session.Filename(),
		Dirty:        session.Dirty(),
		CanUndo:      session.CanUndo(),
		CanRedo:      session.CanRedo(),
		CurrentFloor: session.CurrentFloor(),
	}
	for _, f := range session.Map().Floors {
		summary.Floors = append(summary.Floors, FloorSummary{
			Rooms: len(f.Rooms),
			Doors: len(f.Doors),
			Items: len(f.Items),
		})
	}
	h.Server.mu.Unlock()

	writeJSON(w, summary)
}

// /debug/map - полный снимок карты в формате документа
func (h *DebugHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	h.Server.mu.Lock()
	view := buildMapView(h.Server.session.Map())
	h.Server.mu.Unlock()

	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (для локальной отладки)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
