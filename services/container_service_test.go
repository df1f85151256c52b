package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/pkg"
)

func TestExecuteQuery(t *testing.T) {
	rt := &fakeRuntime{execOutputs: map[string]string{"ctr-1": "42 rows\n"}}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-1", Name: "filo-client-k1"})
	svc := NewContainerService(rt, reg)

	out, err := svc.ExecuteQuery(context.Background(), "k1", "row-count")
	if err != nil {
		t.Fatalf("ExecuteQuery() error = %v", err)
	}
	if out != "42 rows" {
		t.Errorf("ExecuteQuery() = %q, want trimmed %q", out, "42 rows")
	}
}

func TestExecuteQueryUnknownClient(t *testing.T) {
	svc := NewContainerService(&fakeRuntime{}, containers.NewRegistry())

	_, err := svc.ExecuteQuery(context.Background(), "ghost", "row-count")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientStatus(t *testing.T) {
	rt := &fakeRuntime{statuses: map[string]*containers.Status{
		"ctr-run":  {ContainerID: "ctr-run", State: "running", Running: true},
		"ctr-stop": {ContainerID: "ctr-stop", State: "exited", Running: false},
	}}
	reg := containers.NewRegistry()
	reg.Bind("k-run", containers.ContainerRef{ContainerID: "ctr-run", Name: "a"})
	reg.Bind("k-stop", containers.ContainerRef{ContainerID: "ctr-stop", Name: "b"})
	reg.Bind("k-gone", containers.ContainerRef{ContainerID: "ctr-gone", Name: "c"})
	svc := NewContainerService(rt, reg)

	tests := []struct {
		clientID string
		created  string
		running  string
	}{
		{"k-run", "Yes", "Yes"},
		{"k-stop", "Yes", "No"},
		{"k-gone", "No", "No"},   // binding var ama container silinmiş
		{"unknown", "No", "No"},  // binding bile yok
	}

	for _, tt := range tests {
		t.Run(tt.clientID, func(t *testing.T) {
			got, err := svc.ClientStatus(context.Background(), tt.clientID)
			if err != nil {
				t.Fatalf("ClientStatus() error = %v", err)
			}
			if got.Created != tt.created || got.Running != tt.running {
				t.Errorf("ClientStatus() = %+v, want created=%s running=%s", got, tt.created, tt.running)
			}
		})
	}
}

func TestClientStatusUsesCache(t *testing.T) {
	rt := &fakeRuntime{statuses: map[string]*containers.Status{
		"ctr-1": {ContainerID: "ctr-1", State: "running", Running: true},
	}}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-1", Name: "a"})
	svc := NewContainerService(rt, reg)

	first, err := svc.ClientStatus(context.Background(), "k1")
	if err != nil {
		t.Fatalf("ClientStatus() error = %v", err)
	}

	// Container durdu ama cache TTL'i dolmadı — eski rapor döner
	rt.statuses["ctr-1"].Running = false
	second, err := svc.ClientStatus(context.Background(), "k1")
	if err != nil {
		t.Fatalf("ClientStatus() error = %v", err)
	}
	if second.Running != first.Running {
		t.Errorf("cached status should be returned within the TTL")
	}
}

func TestMappings(t *testing.T) {
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "c1", Name: "filo-client-k1"})
	reg.Bind("k2", containers.ContainerRef{ContainerID: "c2", Name: "filo-client-k2"})
	svc := NewContainerService(&fakeRuntime{}, reg)

	got := svc.Mappings()
	if len(got) != 2 || got["k1"] != "filo-client-k1" || got["k2"] != "filo-client-k2" {
		t.Errorf("unexpected mappings: %v", got)
	}
}
