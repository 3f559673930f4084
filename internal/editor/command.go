package editor

import "mapplanner-server/internal/model"

// Command — одна пользовательская правка карты.
//
// Apply — чистая трансформация: получает текущую карту, возвращает
// следующую. Команда НЕ трогает сессию и не держит состояния между
// вызовами, поэтому проваленный Apply гарантированно ничего не меняет
// (атомарный dispatch).
//
// Отмена реализована снимками карты в сессии, а не инверсией команд:
// карты маленькие, снимок дешев, а инверсные команды пришлось бы
// писать и тестировать для каждой правки отдельно.
type Command interface {
	// Name — короткое человекочитаемое имя правки для статус-бара
	// ("add room", "remove floor").
	Name() string

	// Apply строит следующую карту из текущей.
	Apply(m model.Map) (model.Map, error)
}
