package ws

// Op, fleet event stream'indeki event tipleri.
type Op string

const (
	// OpContainerProvisioned — bir client için yeni container oluşturuldu.
	OpContainerProvisioned Op = "container_provisioned"

	// OpContainerRestarted — health monitor çalışmayan bir container'ı
	// yeniden başlattı.
	OpContainerRestarted Op = "container_restarted"

	// OpContainerUnhealthy — container çalışmıyor ve restart da başarısız.
	OpContainerUnhealthy Op = "container_unhealthy"
)

// Event, dashboard'lara yayınlanan tek bir fleet olayı.
// Seq alanı Hub tarafından gönderim sırasında atanır — client'lar
// kaçırdıkları event olup olmadığını sıradan anlar.
type Event struct {
	Op   Op    `json:"op"`
	Seq  int64 `json:"seq"`
	Data any   `json:"data,omitempty"`
}

// ContainerEventData, container lifecycle event'lerinin payload'ı.
type ContainerEventData struct {
	ClientID      string `json:"client_id"`
	ContainerID   string `json:"container_id"`
	ContainerName string `json:"container_name"`
	State         string `json:"state,omitempty"`
}
