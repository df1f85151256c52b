package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/akinalp/filo/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services.AuthService yerine kendi interface'imizi tanımlıyoruz çünkü
// services paketi ws.EventPublisher'a bağımlı — ws services'i import
// etseydi döngü oluşurdu. Handler'ın zaten sadece ValidateAccessToken'a
// ihtiyacı var; authService bu interface'i implicit karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: operatör API'si reverse proxy arkasında tek origin'den
	// servis edilir; origin kontrolü proxy'ye bırakıldı.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// ServeWS, GET /ws isteğini WebSocket bağlantısına yükseltir.
//
// Browser WebSocket API'si custom header gönderemediği için token
// Authorization header yerine query parametresiyle gelir: /ws?token=...
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token query parameter required", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade kendi hata yanıtını yazar — sadece log'la
		log.Printf("[ws] upgrade failed for operator %s: %v", claims.Username, err)
		return
	}

	newClient(h.hub, conn)
	log.Printf("[ws] operator %s subscribed to fleet events", claims.Username)
}
