package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"mclauncher/internal/models"
)

func saveDescriptor(t *testing.T, l *Launcher, v *models.VersionDescriptor) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := l.Store().VersionJSONPath(v.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestServerServiceCheckVersions(t *testing.T) {
	remote := newFakeRemote(t)
	l := NewLauncher(testConfig(t.TempDir(), remote), nil)

	saveDescriptor(t, l, &models.VersionDescriptor{ID: "mon-empty"})
	saveDescriptor(t, l, &models.VersionDescriptor{
		ID:        "mon-missing",
		Libraries: []models.Library{{Name: "com.mojang:absent:1.0"}},
	})

	s := NewServerService(l, time.Minute)
	if err := s.CheckVersions(); err != nil {
		t.Fatalf("CheckVersions: %v", err)
	}
	if got := testutil.ToFloat64(versionIntegrity.WithLabelValues("mon-empty")); got != 1 {
		t.Errorf("mon-empty gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(versionIntegrity.WithLabelValues("mon-missing")); got != 0 {
		t.Errorf("mon-missing gauge = %v, want 0", got)
	}
	if remote.totalHits() != 0 {
		t.Errorf("monitoring fetched %d objects, want none", remote.totalHits())
	}
}

func TestServerServiceStopsOnCancel(t *testing.T) {
	remote := newFakeRemote(t)
	l := NewLauncher(testConfig(t.TempDir(), remote), nil)
	s := NewServerService(l, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.StartMonitoring(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StartMonitoring did not return after cancel")
	}
}
