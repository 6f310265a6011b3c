package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveComments отдаёт новые комментарии страницы через WebSocket, по одному JSON-объекту на сообщение
func (h *Handler) LiveComments(c *gin.Context) {
	pageID := c.Param("pageId")

	store, err := h.Stores.Get()
	if err != nil {
		c.Status(statusFor(err))
		return
	}
	if _, err := store.GetComments(pageID); err != nil {
		c.Status(statusFor(err))
		return
	}

	// Подписываемся до рукопожатия, чтобы не потерять комментарии сразу после подключения
	comments, cancel := store.SubscribeToComments(pageID)
	defer cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		h.Log.Warn("websocket upgrade failed", zap.String("page", pageID), zap.Error(err))
		return
	}
	defer conn.Close()

	// Читаем, чтобы обрабатывать pong и заметить закрытие соединения клиентом
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case comment, ok := <-comments:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(comment); err != nil {
				h.Log.Debug("live write failed", zap.String("page", pageID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
