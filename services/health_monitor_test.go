package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/ws"
)

// fakeRuntime, testlerde Docker yerine geçer.
type fakeRuntime struct {
	statuses    map[string]*containers.Status
	inspectErr  map[string]error
	restartErr  map[string]error
	createErr   map[string]error // clientID → hata; container adından eşleşir
	restarted   []string
	execOutputs map[string]string
}

func (f *fakeRuntime) CreateAndStart(ctx context.Context, name, image string, env []string) (string, error) {
	for clientID, err := range f.createErr {
		if strings.HasPrefix(name, "filo-client-"+clientID+"-") {
			return "", err
		}
	}
	return "ctr-" + name, nil
}

func (f *fakeRuntime) Inspect(ctx context.Context, containerID string) (*containers.Status, error) {
	if err := f.inspectErr[containerID]; err != nil {
		return nil, err
	}
	if st, ok := f.statuses[containerID]; ok {
		return st, nil
	}
	return nil, errors.New("no such container")
}

func (f *fakeRuntime) Restart(ctx context.Context, containerID string) error {
	if err := f.restartErr[containerID]; err != nil {
		return err
	}
	f.restarted = append(f.restarted, containerID)
	if st, ok := f.statuses[containerID]; ok {
		st.State = "running"
		st.Running = true
	}
	return nil
}

func (f *fakeRuntime) Exec(ctx context.Context, containerID string, cmd []string) (string, error) {
	if out, ok := f.execOutputs[containerID]; ok {
		return out, nil
	}
	return "", errors.New("exec failed")
}

// fakeHealthRepo, örnekleri bellekte toplar.
type fakeHealthRepo struct {
	samples []models.HealthSample
	pruned  []time.Time
}

func (f *fakeHealthRepo) Insert(ctx context.Context, sample *models.HealthSample) error {
	f.samples = append(f.samples, *sample)
	return nil
}

func (f *fakeHealthRepo) ListByClient(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error) {
	var out []models.HealthSample
	for i := len(f.samples) - 1; i >= 0 && len(out) < limit; i-- {
		if f.samples[i].ClientID == clientID {
			out = append(out, f.samples[i])
		}
	}
	return out, nil
}

func (f *fakeHealthRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.pruned = append(f.pruned, cutoff)
	return 0, nil
}

// fakePublisher, yayınlanan event'leri kaydeder.
type fakePublisher struct {
	events []ws.Event
}

func (f *fakePublisher) Broadcast(event ws.Event) {
	f.events = append(f.events, event)
}

// fakeAlerter, gönderilen alarmları kaydeder.
type fakeAlerter struct {
	alerts []string
}

func (f *fakeAlerter) SendContainerAlert(ctx context.Context, clientID, containerName, reason string) error {
	f.alerts = append(f.alerts, clientID+": "+reason)
	return nil
}

func newTestMonitor(rt *fakeRuntime, reg *containers.Registry, repo *fakeHealthRepo, pub *fakePublisher, alerts *fakeAlerter) *HealthMonitor {
	return NewHealthMonitor(rt, reg, repo, pub, alerts, time.Minute, 24*time.Hour)
}

func TestSweepHealthyContainer(t *testing.T) {
	rt := &fakeRuntime{statuses: map[string]*containers.Status{
		"ctr-1": {ContainerID: "ctr-1", State: "running", Running: true},
	}}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-1", Name: "filo-client-k1"})
	repo := &fakeHealthRepo{}
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}

	newTestMonitor(rt, reg, repo, pub, alerts).Sweep(context.Background())

	if len(repo.samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(repo.samples))
	}
	s := repo.samples[0]
	if s.ClientID != "k1" || !s.Healthy || s.Restarted || s.State != "running" {
		t.Errorf("unexpected sample: %+v", s)
	}
	if len(rt.restarted) != 0 {
		t.Errorf("healthy container should not be restarted")
	}
	if len(pub.events) != 0 {
		t.Errorf("healthy container should not emit events, got %d", len(pub.events))
	}
	if len(repo.pruned) != 1 {
		t.Errorf("sweep should prune once")
	}
}

func TestSweepRestartsStoppedContainer(t *testing.T) {
	rt := &fakeRuntime{statuses: map[string]*containers.Status{
		"ctr-1": {ContainerID: "ctr-1", State: "exited", Running: false},
	}}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-1", Name: "filo-client-k1"})
	repo := &fakeHealthRepo{}
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}

	newTestMonitor(rt, reg, repo, pub, alerts).Sweep(context.Background())

	if len(rt.restarted) != 1 || rt.restarted[0] != "ctr-1" {
		t.Fatalf("expected restart of ctr-1, got %v", rt.restarted)
	}
	if len(repo.samples) != 1 || !repo.samples[0].Restarted {
		t.Errorf("sample should record the restart: %+v", repo.samples)
	}
	if len(pub.events) != 1 || pub.events[0].Op != ws.OpContainerRestarted {
		t.Errorf("expected a restart event, got %+v", pub.events)
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("successful restart should not send an alert")
	}
}

func TestSweepAlertsOnRestartFailure(t *testing.T) {
	rt := &fakeRuntime{
		statuses: map[string]*containers.Status{
			"ctr-1": {ContainerID: "ctr-1", State: "dead", Running: false},
		},
		restartErr: map[string]error{"ctr-1": errors.New("daemon unavailable")},
	}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-1", Name: "filo-client-k1"})
	repo := &fakeHealthRepo{}
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}

	newTestMonitor(rt, reg, repo, pub, alerts).Sweep(context.Background())

	if len(alerts.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts.alerts))
	}
	if len(pub.events) != 1 || pub.events[0].Op != ws.OpContainerUnhealthy {
		t.Errorf("expected an unhealthy event, got %+v", pub.events)
	}
	if len(repo.samples) != 1 || repo.samples[0].Restarted {
		t.Errorf("failed restart must not be recorded as restarted: %+v", repo.samples)
	}
}

func TestSweepMissingContainer(t *testing.T) {
	rt := &fakeRuntime{
		inspectErr: map[string]error{"ctr-gone": errors.New("no such container")},
	}
	reg := containers.NewRegistry()
	reg.Bind("k1", containers.ContainerRef{ContainerID: "ctr-gone", Name: "filo-client-k1"})
	repo := &fakeHealthRepo{}
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}

	newTestMonitor(rt, reg, repo, pub, alerts).Sweep(context.Background())

	if len(repo.samples) != 1 || repo.samples[0].State != "missing" {
		t.Fatalf("expected a missing-state sample, got %+v", repo.samples)
	}
	if len(pub.events) != 1 || pub.events[0].Op != ws.OpContainerUnhealthy {
		t.Errorf("expected an unhealthy event for the missing container")
	}
	if _, bound := reg.Lookup("k1"); bound {
		t.Errorf("vanished container should be unbound so the client can be re-provisioned")
	}
}

func TestStartStop(t *testing.T) {
	rt := &fakeRuntime{statuses: map[string]*containers.Status{}}
	reg := containers.NewRegistry()
	repo := &fakeHealthRepo{}
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}

	m := NewHealthMonitor(rt, reg, repo, pub, alerts, 10*time.Millisecond, time.Hour)
	m.Start()
	time.Sleep(35 * time.Millisecond)
	m.Stop() // doneCh kapanana kadar bloklar

	if len(repo.pruned) == 0 {
		t.Errorf("expected at least one sweep while running")
	}
}
