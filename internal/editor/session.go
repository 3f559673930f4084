package editor

import (
	"errors"
	"fmt"

	"mapplanner-server/internal/mapfile"
	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/logger"
)

// ErrNoFilename — Save вызван без пути, и у сессии нет текущего файла.
// Запрос пути у пользователя — обязанность оболочки: она должна
// показать диалог и повторить Save уже с явным путем.
var ErrNoFilename = errors.New("no filename associated with the map")

// snapshot — один шаг истории: карта и активный этаж на момент перед
// правкой, плюс имя правки для статус-бара.
type snapshot struct {
	world model.Map
	floor int
	label string
}

// Session владеет текущей картой и всем редакторским состоянием:
// именем файла, dirty-флагом, стеками undo/redo, активным этажом.
//
// Сессия — ЕДИНСТВЕННОЕ место, где карта заменяется по-настоящему;
// сама модель иммутабельна. Оболочка (GUI, websocket-клиент) держит
// только read-доступ и все мутации гонит через методы сессии.
//
// Сессия не потокобезопасна: она рассчитана ровно на один активный
// контекст редактирования. Сервер сериализует доступ своим мьютексом.
type Session struct {
	world    model.Map
	filename string
	floor    int

	// saved — карта в том виде, в каком она лежит на диске.
	// dirty == "текущая карта отличается от saved", поэтому откат
	// правок до сохраненного состояния сам гасит dirty-флаг.
	saved model.Map

	undo []snapshot
	redo []snapshot

	statusFn  func(string)
	changedFn func()
}

// NewSession создает сессию с пустой картой (один пустой этаж).
func NewSession() *Session {
	fresh := model.New()
	return &Session{world: fresh, saved: fresh}
}

// OnStatus регистрирует получателя статусных сообщений (статус-бар).
func (s *Session) OnStatus(fn func(string)) {
	s.statusFn = fn
}

// OnMapChanged регистрирует уведомление «карта изменилась» —
// сигнал оболочке перерисоваться и пересчитать dirty-индикатор.
func (s *Session) OnMapChanged(fn func()) {
	s.changedFn = fn
}

// --- Read-only доступ для оболочки ---

func (s *Session) Map() model.Map    { return s.world }
func (s *Session) Filename() string  { return s.filename }
func (s *Session) CanUndo() bool     { return len(s.undo) > 0 }
func (s *Session) CanRedo() bool     { return len(s.redo) > 0 }
func (s *Session) CurrentFloor() int { return s.floor }

// Dirty — есть ли несохраненные правки.
func (s *Session) Dirty() bool {
	return !s.world.Equal(s.saved)
}

// --- Операции ---

// New заменяет карту на пустую и сбрасывает всё редакторское состояние.
func (s *Session) New() {
	fresh := model.New()
	s.world = fresh
	s.saved = fresh
	s.filename = ""
	s.floor = 0
	s.undo = nil
	s.redo = nil
	s.status("New map")
	s.changed()
}

// Open загружает карту из файла.
//
// При любой ошибке (I/O, формат, геометрия) сессия остается ровно в
// том состоянии, в каком была: никакой частичной загрузки.
func (s *Session) Open(path string) error {
	m, err := mapfile.Load(path)
	if err != nil {
		s.status(fmt.Sprintf("Unable to open '%s': %v", path, err))
		return err
	}

	s.world = m
	s.saved = m
	s.filename = path
	s.floor = 0
	s.undo = nil
	s.redo = nil
	logger.Log.WithField("path", path).Info("Map opened")
	s.status(fmt.Sprintf("Opened '%s'", path))
	s.changed()
	return nil
}

// Save сохраняет карту. Пустой path означает «в текущий файл»;
// если текущего файла нет — ErrNoFilename, и оболочка должна
// спросить путь у пользователя.
//
// Успешный Save с явным путем делает этот путь текущим файлом
// сессии (Save As).
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.filename
	}
	if path == "" {
		s.status("Save failed: no filename")
		return ErrNoFilename
	}

	if err := mapfile.Save(path, s.world); err != nil {
		s.status(fmt.Sprintf("Unable to save '%s': %v", path, err))
		return err
	}

	s.filename = path
	s.saved = s.world
	logger.Log.WithField("path", path).Info("Map saved")
	s.status(fmt.Sprintf("Saved '%s'", path))
	s.changed()
	return nil
}

// Dispatch применяет правку.
//
// Порядок важен: сначала Apply (может провалиться — тогда состояние
// не тронуто), и только потом снимок текущей карты уходит в undo,
// redo очищается, новая карта становится текущей.
func (s *Session) Dispatch(cmd Command) error {
	next, err := cmd.Apply(s.world)
	if err != nil {
		s.status(fmt.Sprintf("Cannot %s: %v", cmd.Name(), err))
		return err
	}

	s.undo = append(s.undo, snapshot{world: s.world, floor: s.floor, label: cmd.Name()})
	s.redo = nil
	s.world = next
	s.clampFloor()
	s.status(capitalized(cmd.Name()))
	s.changed()
	return nil
}

// Undo откатывает последнюю правку. Возвращает false, если откатывать
// нечего (это не ошибка).
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		s.status("Nothing to undo")
		return false
	}

	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, snapshot{world: s.world, floor: s.floor, label: top.label})
	s.world = top.world
	s.floor = top.floor
	s.clampFloor()
	s.status("Undid " + top.label)
	s.changed()
	return true
}

// Redo возвращает откаченную правку.
func (s *Session) Redo() bool {
	if len(s.redo) == 0 {
		s.status("Nothing to redo")
		return false
	}

	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, snapshot{world: s.world, floor: s.floor, label: top.label})
	s.world = top.world
	s.floor = top.floor
	s.clampFloor()
	s.status("Redid " + top.label)
	s.changed()
	return true
}

// SetCurrentFloor переключает активный этаж. Навигация, не правка:
// в историю undo не попадает и dirty не трогает.
func (s *Session) SetCurrentFloor(index int) error {
	if index < 0 || index >= len(s.world.Floors) {
		err := &model.ModelError{Reason: fmt.Sprintf("floor index %d out of range (map has %d floors)", index, len(s.world.Floors))}
		s.status(err.Error())
		return err
	}
	s.floor = index
	s.status(fmt.Sprintf("Floor %d", index))
	s.changed()
	return nil
}

// clampFloor удерживает активный этаж в границах: после удаления
// последнего этажа индекс съезжает на ближайший существующий.
func (s *Session) clampFloor() {
	if s.floor >= len(s.world.Floors) {
		s.floor = len(s.world.Floors) - 1
	}
	if s.floor < 0 {
		s.floor = 0
	}
}

func (s *Session) status(msg string) {
	if s.statusFn != nil {
		s.statusFn(msg)
	}
}

func (s *Session) changed() {
	if s.changedFn != nil {
		s.changedFn()
	}
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
