// Package ws, operatör dashboard'larına tek yönlü fleet event stream'i sağlar.
//
// Chat uygulamalarındaki gibi çift yönlü mesajlaşma yoktur — bağlanan
// client'lar sadece dinler. Provision service ve health monitor event
// üretir, Hub bağlı tüm dashboard'lara fan-out yapar.
package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının event yayınlamak için kullandığı
// interface. Service'ler Hub'ın concrete struct'ına değil buna bağımlıdır —
// testlerde mock publisher geçilebilir.
type EventPublisher interface {
	Broadcast(event Event)
}

// Hub, bağlı tüm WebSocket client'larını yöneten merkezi yapı.
//
// register/unregister channel'ları Run() goroutine'inde işlenir;
// Broadcast ise çağıranın goroutine'inde RLock ile client set'ini gezer.
// Yavaş bir client Broadcast'i bloklamaz: send channel'ı doluysa event
// o client için düşürülür (client zaten Seq'ten kaçırdığını görür).
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// seq: her broadcast'e atanan artan sayaç.
	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur. main.go'da `go hub.Run()` ile başlatılır.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın event loop'u. Ayrı bir goroutine'de çalışır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[ws] dashboard connected (total=%d)", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[ws] dashboard disconnected (total=%d)", count)
		}
	}
}

// Broadcast, event'i bağlı tüm dashboard'lara gönderir.
func (h *Hub) Broadcast(event Event) {
	event.Seq = h.seq.Add(1)

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event %s: %v", event.Op, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Client'ın buffer'ı dolu — event bu client için düşer.
			// Kapatma işini writePump'ın timeout'una bırakıyoruz.
		}
	}
}
