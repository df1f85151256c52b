package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/rowgroup"
	"github.com/akinalp/filo/services"
)

// fakeFleetService, handler testleri için sabit cevaplar döner.
type fakeFleetService struct {
	groups  []rowgroup.ServerGroup
	profile *rowgroup.UserProfile
}

func (f *fakeFleetService) ServersOnCluster(ctx context.Context, clusterName string) ([]rowgroup.ServerGroup, error) {
	return f.groups, nil
}

func (f *fakeFleetService) UserWithClients(ctx context.Context, userID string) (*rowgroup.UserProfile, error) {
	if f.profile == nil || f.profile.ID != userID {
		return nil, pkg.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeFleetService) ClientHealth(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error) {
	return nil, pkg.ErrNotFound
}

func (f *fakeFleetService) Stats(ctx context.Context) (*services.FleetStats, error) {
	return &services.FleetStats{Users: 3, Clients: 5, Servers: 2}, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) pkg.APIResponse {
	t.Helper()
	var resp pkg.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp
}

func TestGetStatus(t *testing.T) {
	h := NewStatusHandler(time.Now())

	rec := httptest.NewRecorder()
	h.GetStatus(rec, httptest.NewRequest("GET", "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if !resp.Success {
		t.Error("expected success envelope")
	}
}

func TestGetUptime(t *testing.T) {
	h := NewStatusHandler(time.Now().Add(-90 * time.Second))

	rec := httptest.NewRecorder()
	h.GetUptime(rec, httptest.NewRequest("GET", "/api/uptime", nil))

	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %T", resp.Data)
	}
	secs, ok := data["uptime_seconds"].(float64)
	if !ok || secs < 90 {
		t.Errorf("uptime_seconds = %v, want >= 90", data["uptime_seconds"])
	}
}

func TestGetServers(t *testing.T) {
	fleet := &fakeFleetService{groups: []rowgroup.ServerGroup{
		{ID: "s1", ClusterName: "prod", Clients: []rowgroup.Row{{"client_id": "k1"}}},
	}}
	h := NewFleetHandler(fleet, "prod")

	rec := httptest.NewRecorder()
	h.GetServers(rec, httptest.NewRequest("GET", "/api/servers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	groups, ok := resp.Data.([]any)
	if !ok || len(groups) != 1 {
		t.Errorf("unexpected data: %v", resp.Data)
	}
}

func TestGetStats(t *testing.T) {
	h := NewFleetHandler(&fakeFleetService{}, "prod")

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest("GET", "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok || data["users"] != float64(3) || data["clients"] != float64(5) || data["servers"] != float64(2) {
		t.Errorf("unexpected stats data: %v", resp.Data)
	}
}

func TestGetUserNotFound(t *testing.T) {
	h := NewFleetHandler(&fakeFleetService{}, "prod")

	req := httptest.NewRequest("GET", "/api/users/ghost", nil)
	req.SetPathValue("userId", "ghost")
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Success {
		t.Error("expected failure envelope")
	}
}

func TestGetUser(t *testing.T) {
	fleet := &fakeFleetService{profile: &rowgroup.UserProfile{
		ID:      "u1",
		Email:   "ayse@filo.app",
		Clients: []rowgroup.UserClient{{ID: "k1", UserID: "u1"}},
	}}
	h := NewFleetHandler(fleet, "prod")

	req := httptest.NewRequest("GET", "/api/users/u1", nil)
	req.SetPathValue("userId", "u1")
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok || data["id"] != "u1" {
		t.Errorf("unexpected profile data: %v", resp.Data)
	}
}
