package ws

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait, bir yazma işleminin tamamlanması için tanınan süre.
	writeWait = 10 * time.Second

	// pongWait, client'tan pong beklenen maksimum süre.
	pongWait = 60 * time.Second

	// pingPeriod, ping gönderim aralığı — pongWait'ten kısa olmalı.
	pingPeriod = (pongWait * 9) / 10

	// sendBufferSize, client başına kuyruklanan event sayısı.
	sendBufferSize = 64
)

// Client, bağlı tek bir dashboard bağlantısı.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// newClient, bağlantıyı sarar ve pump goroutine'lerini başlatır.
func newClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	hub.register <- c
	go c.writePump()
	go c.readPump()

	return c
}

// readPump, client'tan gelen frame'leri okur ve atar.
// Stream tek yönlüdür — okuma sadece close/pong tespiti için gerekir.
// Okumayan bir peer, bağlantı koptuğunda bunu asla fark edemez.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close: %v", err)
			}
			return
		}
	}
}

// writePump, send channel'ındaki event'leri bağlantıya yazar ve
// periyodik ping gönderir. Hub send'i kapattığında close frame yollar.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
