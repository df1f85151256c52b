package models

import "time"

// ClientServer, bir cluster içindeki fiziksel/sanal sunucu kaydı.
// Nested "server + clients" view'ı bu modelden değil, join sorgusunun
// materialization'ından üretilir (pkg/rowgroup.ServerGroup) — bu struct
// tekil CRUD operasyonları içindir.
type ClientServer struct {
	ID          string    `json:"id"`
	ClusterName string    `json:"cluster_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
