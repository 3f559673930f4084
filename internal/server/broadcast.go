package server

import (
	"sync"

	"mapplanner-server/pkg/api"
)

// Broadcaster рассылает события редактора всем подключенным клиентам.
// Несколько клиентов — это, например, редактор плюс read-only
// превью; правит всё равно одна сессия.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan api.ServerEvent]bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan api.ServerEvent]bool),
	}
}

// Subscribe создает канал для нового клиента.
func (b *Broadcaster) Subscribe() chan api.ServerEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan api.ServerEvent, 100)
	b.subscribers[ch] = true
	return ch
}

// Unsubscribe удаляет клиента.
func (b *Broadcaster) Unsubscribe(ch chan api.ServerEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Broadcast отправляет событие всем.
func (b *Broadcaster) Broadcast(ev api.ServerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Пропускаем медленных клиентов
		}
	}
}
