package server

import (
	"encoding/json"
	"fmt"
	"time"

	"mapplanner-server/internal/editor"
	"mapplanner-server/internal/editor/commands"
	"mapplanner-server/internal/mapfile"
	"mapplanner-server/pkg/api"
	"mapplanner-server/pkg/utils"
)

// Execute выполняет одну команду клиента и возвращает событие-ответ.
//
// Сессия не потокобезопасна, поэтому ВСЕ команды всех клиентов
// сериализуются мьютексом сервера. Статусные сообщения сессии
// собираются в буфер и уезжают в ответе как логи.
func (s *Server) Execute(cmd api.ClientCommand) api.ServerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = s.logs[:0]
	s.mapChanged = false

	var opErr error
	eventType := api.EventStatus
	withRecent := false

	switch cmd.Action {
	case "INIT":
		// Первый запрос клиента: полный снимок + список недавних файлов
		eventType = api.EventInit
		withRecent = true

	case "NEW":
		s.session.New()

	case "OPEN":
		opErr = s.handleOpen(cmd.Payload)
		withRecent = opErr == nil

	case "SAVE":
		opErr = s.handleSave(cmd.Payload)
		withRecent = opErr == nil

	case "UNDO":
		s.session.Undo()

	case "REDO":
		s.session.Redo()

	case "SET_FLOOR":
		opErr = s.handleSetFloor(cmd.Payload)

	case "RECENT":
		withRecent = true

	default:
		if commands.Known(cmd.Action) {
			var c editor.Command
			c, opErr = commands.Build(cmd.Action, cmd.Payload)
			if opErr != nil {
				s.pushStatus(fmt.Sprintf("Rejected %s: %v", cmd.Action, opErr))
			} else {
				opErr = s.session.Dispatch(c)
			}
		} else {
			opErr = fmt.Errorf("unknown action %q", cmd.Action)
			s.pushStatus(opErr.Error())
		}
	}

	if s.mapChanged {
		eventType = api.EventUpdate
	}
	if cmd.Action == "INIT" {
		eventType = api.EventInit
	}

	ev := api.ServerEvent{
		Type:         eventType,
		Filename:     s.session.Filename(),
		Dirty:        s.session.Dirty(),
		CanUndo:      s.session.CanUndo(),
		CanRedo:      s.session.CanRedo(),
		CurrentFloor: s.session.CurrentFloor(),
		Logs:         s.takeLogs(opErr),
	}
	if eventType != api.EventStatus {
		ev.Map = buildMapView(s.session.Map())
	}
	if withRecent {
		ev.Recent = s.recent.List()
	}
	return ev
}

func (s *Server) handleOpen(payload json.RawMessage) error {
	var p api.OpenPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.pushStatus("Rejected OPEN: bad payload")
		return fmt.Errorf("invalid payload format: %w", err)
	}
	if err := p.Validate(); err != nil {
		s.pushStatus("Rejected OPEN: " + err.Error())
		return err
	}
	if !mapfile.RecognizedExt(p.Path) {
		err := fmt.Errorf("unrecognized map file extension: %s", p.Path)
		s.pushStatus(err.Error())
		return err
	}
	if err := s.session.Open(p.Path); err != nil {
		return err
	}
	s.recent.Touch(p.Path)
	return nil
}

func (s *Server) handleSave(payload json.RawMessage) error {
	var p api.SavePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			s.pushStatus("Rejected SAVE: bad payload")
			return fmt.Errorf("invalid payload format: %w", err)
		}
	}
	if err := s.session.Save(p.Path); err != nil {
		return err
	}
	s.recent.Touch(s.session.Filename())
	return nil
}

func (s *Server) handleSetFloor(payload json.RawMessage) error {
	var p api.FloorRefPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.pushStatus("Rejected SET_FLOOR: bad payload")
		return fmt.Errorf("invalid payload format: %w", err)
	}
	if err := p.Validate(); err != nil {
		s.pushStatus("Rejected SET_FLOOR: " + err.Error())
		return err
	}
	return s.session.SetCurrentFloor(p.Floor)
}

// pushStatus — сюда же попадают статусы сессии (через OnStatus).
func (s *Server) pushStatus(msg string) {
	s.logs = append(s.logs, msg)
}

// takeLogs конвертирует накопленные статусы в LogEntry.
// Если операция провалилась, записи помечаются как ERROR.
func (s *Server) takeLogs(opErr error) []api.LogEntry {
	if len(s.logs) == 0 {
		return nil
	}
	level := "INFO"
	if opErr != nil {
		level = "ERROR"
	}
	now := time.Now().UnixMilli()
	out := make([]api.LogEntry, len(s.logs))
	for i, msg := range s.logs {
		out[i] = api.LogEntry{
			ID:        utils.GenerateID(),
			Text:      msg,
			Type:      level,
			Timestamp: now,
		}
	}
	return out
}
