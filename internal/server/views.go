package server

import (
	"mapplanner-server/internal/model"
	"mapplanner-server/pkg/api"
	"mapplanner-server/pkg/geometry"
)

// buildMapView собирает полный снимок карты для клиента.
// Формат повторяет файл карты (см. pkg/api).
func buildMapView(m model.Map) *api.MapView {
	view := &api.MapView{Floors: make([]api.FloorView, len(m.Floors))}
	for i, floor := range m.Floors {
		fv := api.FloorView{
			Rooms: make([]api.RoomView, len(floor.Rooms)),
			Doors: floor.Doors,
			Items: floor.Items,
		}
		for j, room := range floor.Rooms {
			rv := api.RoomView{
				Boundary: ringCoords(room.Boundary),
				Holes:    make([][][]float64, len(room.Holes)),
			}
			for k, hole := range room.Holes {
				rv.Holes[k] = ringCoords(hole)
			}
			fv.Rooms[j] = rv
		}
		view.Floors[i] = fv
	}
	return view
}

func ringCoords(p geometry.Polygon) [][]float64 {
	out := make([][]float64, len(p))
	for i, pt := range p {
		out[i] = []float64{pt.X, pt.Y}
	}
	return out
}
