package commands

import (
	"encoding/json"
	"fmt"

	"mapplanner-server/internal/editor"
)

// BuilderFunc — контракт для построения правки из сырого payload'а
// клиента. Билдер валидирует вход и возвращает готовую команду;
// применяет её к карте уже сессия.
type BuilderFunc func(payload json.RawMessage) (editor.Command, error)

var registry = map[string]BuilderFunc{}

// Register привязывает билдер к имени действия. Вызывается из init()
// файлов с командами; повторная регистрация — ошибка программиста.
func Register(action string, b BuilderFunc) {
	if _, dup := registry[action]; dup {
		panic("commands: duplicate registration for " + action)
	}
	registry[action] = b
}

// Build строит команду по действию и payload'у.
func Build(action string, payload json.RawMessage) (editor.Command, error) {
	b, ok := registry[action]
	if !ok {
		return nil, fmt.Errorf("unknown edit action %q", action)
	}
	return b(payload)
}

// Known сообщает, является ли действие редактирующей командой
// (в отличие от операций сессии вроде UNDO или SAVE).
func Known(action string) bool {
	_, ok := registry[action]
	return ok
}
