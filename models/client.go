package models

import "time"

// Client, bir kullanıcıya ait containerized server aboneliği.
// Her client en fazla bir container'a bağlanır (containers.Registry üzerinden);
// server_id, client'ın hangi cluster sunucusunda barındığını gösterir.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	ServerID  *string   `json:"server_id"` // NULL = henüz bir sunucuya atanmamış
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
