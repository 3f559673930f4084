package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling
	"sync"

	"mapplanner-server/internal/editor"
	"mapplanner-server/internal/version"
	"mapplanner-server/pkg/logger"
)

// Server — оболочка редактора: принимает команды клиентов по
// WebSocket, гоняет их через editor.Session и рассылает обновления.
// Вся логика структуры карты живет в ядре; здесь только транспорт,
// блокировка и список недавних файлов.
type Server struct {
	session *editor.Session
	recent  *RecentFiles
	hub     *Broadcaster
	port    string

	// mu сериализует доступ к сессии (она однопоточная по дизайну)
	mu         sync.Mutex
	logs       []string
	mapChanged bool
}

func New(session *editor.Session, port string, recent *RecentFiles) *Server {
	s := &Server{
		session: session,
		recent:  recent,
		hub:     NewBroadcaster(),
		port:    port,
	}
	// Статусы и уведомления сессии собираются в буферы сервера
	// и раскладываются по ответам в Execute.
	session.OnStatus(s.pushStatus)
	session.OnMapChanged(func() { s.mapChanged = true })
	return s
}

// Run запускает HTTP сервер.
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s)
	debugHandler.RegisterRoutes(mux)

	logger.Log.Infof("🗺️  Map Planner Server running on :%s", s.port)
	return http.ListenAndServe(":"+s.port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
