package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"mapplanner-server/pkg/api"
	"mapplanner-server/pkg/logger"
	"mapplanner-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // payload'ы комнат больше игровых команд
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client — посредник между WebSocket и сервером редактора.
type Client struct {
	Server *Server
	Conn   *websocket.Conn
	Send   chan api.ServerEvent
	ID     string

	updates chan api.ServerEvent
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		Server: s,
		Conn:   conn,
		Send:   make(chan api.ServerEvent, 256),
		ID:     utils.GenerateID(),
	}
}

// readPump читает команды от клиента.
func (c *Client) readPump() {
	defer func() {
		if c.updates != nil {
			c.Server.hub.Unsubscribe(c.updates)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("client_id", c.ID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// ПОДПИСКА НА ОБНОВЛЕНИЯ
	// Каждая успешная правка любого клиента прилетает всем.
	c.updates = c.Server.hub.Subscribe()
	go c.forwardUpdates()

	logger.Log.WithField("client_id", c.ID).Info("Client connected")

	// ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}

		ev := c.Server.Execute(cmd)
		if ev.Type == api.EventUpdate {
			// Изменение карты видят все клиенты
			c.Server.hub.Broadcast(ev)
		} else {
			// INIT и статусы (в т.ч. ошибки) — только автору запроса
			c.Send <- ev
		}
	}
}

// forwardUpdates перекачивает события хаба в канал отправки клиента.
// Отправка неблокирующая: если writePump уже умер и буфер полон,
// событие пропускается — иначе горутина повисла бы навсегда и
// Unsubscribe не смог бы её добить.
func (c *Client) forwardUpdates() {
	for ev := range c.updates {
		select {
		case c.Send <- ev:
		default:
		}
	}
	close(c.Send)
}

// writePump отправляет события клиенту + Ping.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(ev); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
