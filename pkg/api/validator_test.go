package api

import "testing"

func ring(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = []float64{float64(i), float64(i % 2)}
	}
	return out
}

func TestRoomShapePayload_Validate(t *testing.T) {
	cases := []struct {
		name    string
		payload RoomShapePayload
		wantErr bool
	}{
		{"valid", RoomShapePayload{Floor: 0, Boundary: ring(4)}, false},
		{"negative floor", RoomShapePayload{Floor: -1, Boundary: ring(4)}, true},
		{"too few points", RoomShapePayload{Floor: 0, Boundary: ring(2)}, true},
		{"bad arity", RoomShapePayload{Floor: 0, Boundary: [][]float64{{0, 0, 9}, {1, 0}, {1, 1}}}, true},
		{"bad hole", RoomShapePayload{Floor: 0, Boundary: ring(4), Holes: [][][]float64{ring(2)}}, true},
		{"valid with hole", RoomShapePayload{Floor: 0, Boundary: ring(4), Holes: [][][]float64{ring(3)}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRoomRefPayload_Validate(t *testing.T) {
	if err := (RoomRefPayload{Floor: 0, Room: 0}).Validate(); err != nil {
		t.Errorf("valid ref rejected: %v", err)
	}
	if err := (RoomRefPayload{Floor: -1, Room: 0}).Validate(); err == nil {
		t.Error("negative floor accepted")
	}
	if err := (RoomRefPayload{Floor: 0, Room: -2}).Validate(); err == nil {
		t.Error("negative room accepted")
	}
}

func TestOpenPayload_Validate(t *testing.T) {
	if err := (OpenPayload{}).Validate(); err == nil {
		t.Error("empty path accepted")
	}
	if err := (OpenPayload{Path: "/maps/a.gmap"}).Validate(); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
}

func TestPayloadPolygonConversion(t *testing.T) {
	p := RoomShapePayload{
		Boundary: [][]float64{{0, 0}, {10, 0}, {10, 10}},
		Holes:    [][][]float64{{{1, 1}, {2, 1}, {2, 2}}},
	}
	b := p.BoundaryPolygon()
	if len(b) != 3 || b[1].X != 10 || b[1].Y != 0 {
		t.Errorf("boundary conversion wrong: %v", b)
	}
	h := p.HolePolygons()
	if len(h) != 1 || len(h[0]) != 3 {
		t.Errorf("hole conversion wrong: %v", h)
	}
	if got := (RoomShapePayload{Boundary: p.Boundary}).HolePolygons(); got != nil {
		t.Errorf("no holes should convert to nil, got %v", got)
	}
}
