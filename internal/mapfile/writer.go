package mapfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mapplanner-server/internal/model"
)

// Marshal сериализует карту в документ.
//
// Детерминированность: encoding/json пишет поля структур в порядке
// объявления, а float64 форматирует кратчайшей однозначной записью,
// поэтому равные карты дают идентичные байты.
func Marshal(m model.Map) ([]byte, error) {
	data, err := json.Marshal(FromMap(m))
	if err != nil {
		return nil, fmt.Errorf("failed to encode map document: %w", err)
	}
	return data, nil
}

// Write пишет документ карты в поток.
func Write(w io.Writer, m model.Map) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write map document: %w", err)
	}
	// Завершающий перевод строки, чтобы файл дружил с diff/cat
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("failed to write map document: %w", err)
	}
	return nil
}

// Save атомарно сохраняет карту в файл: сначала во временный файл
// рядом, затем rename. Упавшее сохранение не портит старый файл.
func Save(path string, m model.Map) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	_, werr := f.Write(append(data, '\n'))
	cerr := f.Close()
	if werr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, werr)
	}
	if cerr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, cerr)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
