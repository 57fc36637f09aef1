package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/storage"
)

func TestNewSSHServerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Game.Obstacles.SpawnInterval = -time.Second
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	_, err := NewSSHServer(cfg, storage.NewMemory(), log.Default())
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, storage.NewMemory(), log.Default())
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("unexpected address %q", srv.Addr())
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

func TestServeStopsWhenContextDone(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, storage.NewMemory(), log.Default())
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
