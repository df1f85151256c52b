package handlers

import (
	"net/http"

	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/services"
)

// FleetHandler, cluster ve kullanıcı monitoring endpoint'lerini yönetir.
type FleetHandler struct {
	fleetService   services.FleetService
	defaultCluster string
}

func NewFleetHandler(fleetService services.FleetService, defaultCluster string) *FleetHandler {
	return &FleetHandler{
		fleetService:   fleetService,
		defaultCluster: defaultCluster,
	}
}

// GetServers godoc
// GET /api/servers
// Konfigüre edilmiş cluster'ın sunucularını nested client listeleriyle döner.
func (h *FleetHandler) GetServers(w http.ResponseWriter, r *http.Request) {
	groups, err := h.fleetService.ServersOnCluster(r.Context(), h.defaultCluster)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, groups)
}

// GetClusterServers godoc
// GET /api/clusters/{cluster}/servers
// Path'te verilen cluster için aynı rapor. Bilinmeyen cluster boş dizi döner.
func (h *FleetHandler) GetClusterServers(w http.ResponseWriter, r *http.Request) {
	cluster := r.PathValue("cluster")
	if cluster == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "cluster is required")
		return
	}

	groups, err := h.fleetService.ServersOnCluster(r.Context(), cluster)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, groups)
}

// GetStats godoc
// GET /api/stats
// Fleet genelindeki kullanıcı/client/sunucu toplamları.
func (h *FleetHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.fleetService.Stats(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats)
}

// GetUser godoc
// GET /api/users/{userId}
// Kullanıcı profilini client listesiyle döner. Kullanıcı yoksa 404.
func (h *FleetHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	profile, err := h.fleetService.UserWithClients(r.Context(), userID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, profile)
}
