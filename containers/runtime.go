// Package containers, client container'larının runtime erişimini ve
// client→container eşlemesini yönetir.
//
// Runtime interface'i Docker Engine API'sini soyutlar — service katmanı
// ve health monitor concrete Docker client'ına değil bu interface'e
// bağımlıdır, testlerde fake runtime geçilebilir.
package containers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// Status, bir container'ın inspect anındaki durumu.
type Status struct {
	ContainerID string `json:"container_id"`
	Name        string `json:"name"`
	State       string `json:"state"` // running, exited, dead...
	Running     bool   `json:"running"`
}

// Runtime, container runtime operasyonları için interface.
type Runtime interface {
	// CreateAndStart, verilen imajdan adlandırılmış bir container oluşturur
	// ve başlatır. Container ID'sini döner.
	CreateAndStart(ctx context.Context, name, image string, env []string) (string, error)

	// Inspect, container'ın o anki durumunu döner.
	Inspect(ctx context.Context, containerID string) (*Status, error)

	// Restart, container'ı yeniden başlatır (health monitor kullanır).
	Restart(ctx context.Context, containerID string) error

	// Exec, container içinde komut çalıştırır ve stdout çıktısını döner.
	// Komut sıfır dışı exit code ile biterse stderr içerikli hata döner.
	Exec(ctx context.Context, containerID string, cmd []string) (string, error)
}

// dockerRuntime, Runtime interface'inin Docker Engine implementasyonu.
type dockerRuntime struct {
	cli *client.Client
}

// NewDockerRuntime, environment'tan (DOCKER_HOST, DOCKER_TLS_VERIFY...)
// konfigüre edilen bir Docker client'ı ile Runtime oluşturur.
// API version negotiation açık — daemon'un desteklediği versiyona iner.
func NewDockerRuntime() (Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &dockerRuntime{cli: cli}, nil
}

func (r *dockerRuntime) CreateAndStart(ctx context.Context, name, image string, env []string) (string, error) {
	created, err := r.cli.ContainerCreate(ctx,
		&container.Config{
			Image: image,
			Env:   env,
		},
		&container.HostConfig{
			RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyUnlessStopped},
		},
		nil, nil, name,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create container %s: %w", name, err)
	}

	if err := r.cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container %s: %w", name, err)
	}

	return created.ID, nil
}

func (r *dockerRuntime) Inspect(ctx context.Context, containerID string) (*Status, error) {
	info, err := r.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", containerID, err)
	}

	status := &Status{
		ContainerID: info.ID,
		// Docker isimlerin başına "/" koyar
		Name: strings.TrimPrefix(info.Name, "/"),
	}
	if info.State != nil {
		status.State = info.State.Status
		status.Running = info.State.Running
	}

	return status, nil
}

func (r *dockerRuntime) Restart(ctx context.Context, containerID string) error {
	timeout := 10 // saniye — graceful stop süresi
	if err := r.cli.ContainerRestart(ctx, containerID, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to restart container %s: %w", containerID, err)
	}
	return nil
}

func (r *dockerRuntime) Exec(ctx context.Context, containerID string, cmd []string) (string, error) {
	created, err := r.cli.ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create exec: %w", err)
	}

	attach, err := r.cli.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to attach exec: %w", err)
	}
	defer attach.Close()

	// Docker tek stream üzerinden multiplexed stdout+stderr gönderir —
	// stdcopy ikisini ayırır.
	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attach.Reader); err != nil {
		return "", fmt.Errorf("failed to read exec output: %w", err)
	}

	inspect, err := r.cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect exec: %w", err)
	}
	if inspect.ExitCode != 0 {
		return "", fmt.Errorf("command exited with code %d: %s", inspect.ExitCode, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
