package geometry

import (
	"fmt"
	"math"
)

// Epsilon — порог для сравнения площадей и проверок коллинеарности.
//
// Координаты карты — это клетки сетки (обычно целые или половинки),
// поэтому точность здесь не критична. Порог нужен только чтобы
// отсечь вырожденные полигоны, которые «схлопнулись» в линию.
const Epsilon = 1e-9

// MinVertices — минимальное число вершин замкнутого кольца.
const MinVertices = 3

// Point — точка (или вектор) в координатах карты.
//
// Point является value-type: дешёвое копирование, сравнение через ==.
// В файле и по сети координаты ходят парами [x, y], сам Point в JSON
// не кодируется.
type Point struct {
	X float64
	Y float64
}

// Polygon — замкнутое кольцо из >= 3 вершин.
//
// Замыкающая точка НЕ хранится: последняя вершина соединяется с первой.
// Направление обхода (по/против часовой) не нормализуется и сохраняется
// как есть при сериализации.
type Polygon []Point

// Validate проверяет, что кольцо пригодно для использования как
// граница комнаты или дыра: достаточно вершин, вершины не склеены,
// площадь ненулевая.
func (p Polygon) Validate() error {
	if len(p) < MinVertices {
		return fmt.Errorf("polygon needs at least %d points, got %d", MinVertices, len(p))
	}
	for i, pt := range p {
		next := p[(i+1)%len(p)]
		if pt == next {
			return fmt.Errorf("polygon has duplicate consecutive point (%g, %g)", pt.X, pt.Y)
		}
	}
	if math.Abs(p.Area()) <= Epsilon {
		return fmt.Errorf("polygon encloses zero area")
	}
	return nil
}

// Area возвращает ЗНАКОВУЮ площадь кольца (формула шнурования).
//
// Знак зависит от направления обхода. Для проверки вырожденности
// используйте math.Abs.
func (p Polygon) Area() float64 {
	sum := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Contains проверяет, лежит ли точка внутри кольца.
//
// Точки НА границе считаются внутренними (инклюзивный тест).
// Это важно для проверки дыр: дыра, вершина которой лежит ровно
// на границе комнаты, всё ещё считается содержащейся.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < MinVertices {
		return false
	}
	if p.onEdge(pt) {
		return true
	}
	return p.containsInterior(pt)
}

// ContainsStrict — как Contains, но точки на границе считаются внешними.
// Используется для проверки пересечения дыр между собой.
func (p Polygon) ContainsStrict(pt Point) bool {
	if len(p) < MinVertices {
		return false
	}
	if p.onEdge(pt) {
		return false
	}
	return p.containsInterior(pt)
}

// containsInterior — луч вправо от точки, подсчет пересечений рёбер.
func (p Polygon) containsInterior(pt Point) bool {
	inside := false
	for i, a := range p {
		b := p[(i+1)%len(p)]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			// X-координата пересечения ребра с горизонталью точки
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// onEdge проверяет, лежит ли точка на одном из рёбер кольца.
func (p Polygon) onEdge(pt Point) bool {
	for i, a := range p {
		b := p[(i+1)%len(p)]
		if onSegment(a, b, pt) {
			return true
		}
	}
	return false
}

// ContainsPolygon проверяет, что кольцо q целиком лежит внутри p.
//
// Тест двухступенчатый: все вершины q внутри p (инклюзивно) И ни одно
// ребро q не пересекает рёбра p «насквозь». Для невыпуклых p это не
// полноценный polygon-in-polygon (кольцо q, касающееся границы в
// нескольких точках, может пройти проверку), но для карт из
// прямоугольных комнат этого достаточно. Известное ограничение.
func (p Polygon) ContainsPolygon(q Polygon) bool {
	for _, pt := range q {
		if !p.Contains(pt) {
			return false
		}
	}
	return !edgesCross(p, q)
}

// Overlaps проверяет, что внутренности двух колец пересекаются.
//
// Касание границ пересечением НЕ считается: две дыры, разделяющие
// общую стену, допустимы. Кроме вершин проверяются середины рёбер:
// они ловят кольцо, вписанное в другое так, что все его вершины лежат
// на чужих рёбрах (ромб в квадрате) — у такого кольца нет ни вершин
// строго внутри, ни рёбер, пересекающихся насквозь. Пересечение, при
// котором и вершины, и середины рёбер обоих колец остаются ровно на
// границах, не распознаётся; на картах из прямоугольных комнат таких
// конфигураций не возникает. Известное ограничение.
func (p Polygon) Overlaps(q Polygon) bool {
	if p.anyPointInside(q) || q.anyPointInside(p) {
		return true
	}
	return edgesCross(p, q)
}

// anyPointInside — лежит ли вершина или середина ребра q строго
// внутри p.
func (p Polygon) anyPointInside(q Polygon) bool {
	for i, a := range q {
		if p.ContainsStrict(a) {
			return true
		}
		b := q[(i+1)%len(q)]
		if p.ContainsStrict(Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}) {
			return true
		}
	}
	return false
}

// Clone возвращает независимую копию кольца.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Equal — структурное равенство: те же вершины в том же порядке.
func (p Polygon) Equal(q Polygon) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// edgesCross — есть ли хотя бы одна пара рёбер, пересекающихся насквозь.
func edgesCross(p, q Polygon) bool {
	for i, a1 := range p {
		a2 := p[(i+1)%len(p)]
		for j, b1 := range q {
			b2 := q[(j+1)%len(q)]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// cross — z-компонента векторного произведения (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment — лежит ли точка pt на отрезке [a, b] (включая концы).
func onSegment(a, b, pt Point) bool {
	if math.Abs(cross(a, b, pt)) > Epsilon {
		return false
	}
	return pt.X >= math.Min(a.X, b.X)-Epsilon && pt.X <= math.Max(a.X, b.X)+Epsilon &&
		pt.Y >= math.Min(a.Y, b.Y)-Epsilon && pt.Y <= math.Max(a.Y, b.Y)+Epsilon
}

// segmentsCross — «собственное» пересечение отрезков: каждый отрезок
// разрезает другой. Касание концом или наложение коллинеарных
// отрезков пересечением не считается.
func segmentsCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(a1, a2, b1)
	d2 := cross(a1, a2, b2)
	d3 := cross(b1, b2, a1)
	d4 := cross(b1, b2, a2)
	return ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon))
}
