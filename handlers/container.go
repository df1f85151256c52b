package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/services"
)

// ContainerHandler, container provision/sorgu/durum endpoint'lerini yönetir.
type ContainerHandler struct {
	provisionService services.ProvisionService
	containerService services.ContainerService
	fleetService     services.FleetService
}

func NewContainerHandler(
	provisionService services.ProvisionService,
	containerService services.ContainerService,
	fleetService services.FleetService,
) *ContainerHandler {
	return &ContainerHandler{
		provisionService: provisionService,
		containerService: containerService,
		fleetService:     fleetService,
	}
}

// Provision godoc
// POST /api/users/{userId}/provision
// Kullanıcının tüm client'ları için container oluşturur.
// Zaten container'ı olan client'lar sonuçta skipped olarak işaretlenir.
func (h *ContainerHandler) Provision(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	results, err := h.provisionService.ProvisionUser(r.Context(), userID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, results)
}

// ExecuteQuery godoc
// GET /api/query/{clientId}/{query}
// Sorguyu client'ın container'ı içinde çalıştırır, stdout çıktısını döner.
func (h *ContainerHandler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	query := r.PathValue("query")
	if clientID == "" || query == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "clientId and query are required")
		return
	}

	output, err := h.containerService.ExecuteQuery(r.Context(), clientID, query)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"result": output})
}

// GetMappings godoc
// GET /api/mappings
// clientID → container adı eşlemesinin anlık görüntüsü.
func (h *ContainerHandler) GetMappings(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.containerService.Mappings())
}

// GetClientStatus godoc
// GET /api/status/{clientId}
// Container'ın var olma/çalışma durumu: { "created": "Yes", "running": "No" }
func (h *ContainerHandler) GetClientStatus(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "clientId is required")
		return
	}

	status, err := h.containerService.ClientStatus(r.Context(), clientID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, status)
}

// GetClientHealth godoc
// GET /api/clients/{clientId}/health?limit=20
// Monitor'ün kaydettiği son health örnekleri, yeniden eskiye.
func (h *ContainerHandler) GetClientHealth(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	if clientID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "clientId is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	samples, err := h.fleetService.ClientHealth(r.Context(), clientID, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, samples)
}
