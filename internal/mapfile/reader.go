package mapfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mapplanner-server/internal/model"
)

// Unmarshal разбирает документ карты и восстанавливает модель.
func Unmarshal(data []byte) (model.Map, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Map{}, &FormatError{Reason: fmt.Sprintf("not a valid map document: %v", err)}
	}
	return doc.ToMap()
}

// Read читает документ карты из потока.
func Read(r io.Reader) (model.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Map{}, fmt.Errorf("failed to read map document: %w", err)
	}
	return Unmarshal(data)
}

// Load читает карту из файла.
//
// Ошибки чтения файла возвращаются как есть (I/O), ошибки содержимого —
// как *FormatError или *model.GeometryError.
func Load(path string) (model.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Map{}, err
	}
	defer f.Close()

	return Read(f)
}
