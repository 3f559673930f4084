package server

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mapplanner-server/pkg/logger"
)

// maxRecentFiles — сколько путей держим в списке недавних файлов.
const maxRecentFiles = 10

// RecentFiles — список недавно открытых карт, разделенный переводами
// строк, самые свежие сверху, без дубликатов.
//
// Список принадлежит оболочке, НЕ ядру: сессия ничего не знает о нем
// и получает от нас только готовый путь в Open/Save.
type RecentFiles struct {
	mu   sync.Mutex
	path string
}

// NewRecentFiles создает сервис списка. Пустой path выключает его
// (List возвращает nil, Touch ничего не делает).
func NewRecentFiles(path string) *RecentFiles {
	return &RecentFiles{path: path}
}

// List возвращает пути, самые свежие первыми.
func (r *RecentFiles) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *RecentFiles) load() []string {
	if r.path == "" {
		return nil
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		// Отсутствующий файл — пустой список, не ошибка
		return nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Touch поднимает путь на вершину списка (добавляя при необходимости)
// и сохраняет список. Пути нормализуются до абсолютных.
func (r *RecentFiles) Touch(path string) {
	if r.path == "" || path == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	lines := []string{path}
	for _, old := range r.load() {
		if old != path && len(lines) < maxRecentFiles {
			lines = append(lines, old)
		}
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(r.path, []byte(content), 0644); err != nil {
		// Сломанный список недавних файлов не должен мешать работе
		logger.Log.WithError(err).Warn("failed to write recent files list")
	}
}
