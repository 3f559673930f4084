package model

// Ошибки модели разделены на два вида: геометрические (невалидная
// форма комнаты) и структурные (нарушение инвариантов карты).
// Оба вида проверяются через errors.As / errors.Is, чтобы сессия и
// сервер могли отличить ошибку пользователя от ошибки программы.

// GeometryError — невалидная форма: мало вершин, нулевая площадь,
// дыра вылезает за границу, дыры пересекаются.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "geometry: " + e.Reason
}

// ModelError — структурное нарушение: индекс вне диапазона,
// попытка удалить последний этаж и т.п.
type ModelError struct {
	Reason string
}

func (e *ModelError) Error() string {
	return "model: " + e.Reason
}

// ErrLastFloor возвращается при попытке удалить единственный этаж.
// Карта обязана содержать хотя бы один этаж.
var ErrLastFloor = &ModelError{Reason: "a map must contain at least one floor"}
