package controllers

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mclauncher/internal/config"
	"mclauncher/internal/fetch"
	"mclauncher/internal/models"
	"mclauncher/services"
)

func sha1Hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

var (
	clientJar  = []byte("client jar")
	loggingJar = []byte("logging jar")
)

const loggingPath = "com/mojang/logging/1.1.1/logging-1.1.1.jar"

func setupRouter(t *testing.T) (*gin.Engine, *services.Launcher) {
	gin.SetMode(gin.TestMode)
	root := t.TempDir()

	remote := map[string][]byte{
		"http://remote/libraries/" + loggingPath: loggingJar,
	}
	fetcher := fetch.FetcherFunc(func(ctx context.Context, url string) (io.ReadCloser, int64, error) {
		data, ok := remote[url]
		if !ok {
			return nil, 0, models.ErrNotFound
		}
		return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
	})

	cfg := &config.AppConfig{
		Game: config.GameConfig{Directory: root, OS: "linux", Arch: "x64"},
		Download: config.DownloadConfig{
			Workers:        2,
			ProgressEvery:  1,
			Timeout:        time.Second,
			LibraryBaseUrl: "http://remote/libraries",
		},
	}
	l := services.NewLauncher(cfg, fetcher)

	writeVersion(t, l, &models.VersionDescriptor{
		ID:        "1.20.1",
		Type:      "release",
		Downloads: &models.VersionDownloads{Client: &models.Artifact{URL: "http://remote/client.jar", SHA1: sha1Hex(clientJar)}},
		Libraries: []models.Library{
			{Name: "com.mojang:logging:1.1.1", Downloads: &models.LibraryDownloads{Artifact: &models.Artifact{
				Path: loggingPath,
				URL:  "http://remote/libraries/" + loggingPath,
				SHA1: sha1Hex(loggingJar),
			}}},
		},
	}, clientJar)
	writeVersion(t, l, &models.VersionDescriptor{
		ID:        "broken",
		Libraries: []models.Library{{Name: "com.mojang:gone:1.0"}},
	}, nil)

	r := gin.New()
	NewAPIController(l, "test").RegisterRoutes(r)
	NewVersionController(l).RegisterRoutes(r)
	return r, l
}

func writeVersion(t *testing.T, l *services.Launcher, v *models.VersionDescriptor, jar []byte) {
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
	if jar != nil {
		if err := os.WriteFile(l.Store().VersionJarPath(v.ID), jar, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	r, l := setupRouter(t)
	w := serve(r, http.MethodGet, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HealthResponse
	decode(t, w, &resp)
	if resp.Status != "ok" || resp.Version != "test" {
		t.Errorf("unexpected health response: %+v", resp)
	}
	if resp.GameDir != l.Store().Root() || resp.Platform != "linux/x64" {
		t.Errorf("gameDir/platform = %s %s", resp.GameDir, resp.Platform)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	w := serve(r, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("mclauncher_")) {
		t.Error("metrics output does not contain launcher metrics")
	}
}

func TestListVersions(t *testing.T) {
	r, _ := setupRouter(t)
	w := serve(r, http.MethodGet, "/launcher/api/v1/versions")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list []models.VersionSummary
	decode(t, w, &list)
	if len(list) != 2 || list[0].ID != "1.20.1" || list[1].ID != "broken" {
		t.Errorf("versions = %+v", list)
	}
}

func TestUnknownVersion(t *testing.T) {
	r, _ := setupRouter(t)
	w := serve(r, http.MethodGet, "/launcher/api/v1/versions/nope/check")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]interface{}
	decode(t, w, &body)
	if body["code"] != "version.not_found" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestSyncLibrariesThenClasspath(t *testing.T) {
	r, _ := setupRouter(t)

	w := serve(r, http.MethodPost, "/launcher/api/v1/versions/1.20.1/libraries/sync")
	if w.Code != http.StatusOK {
		t.Fatalf("sync status = %d: %s", w.Code, w.Body.String())
	}
	var sync models.SyncResponse
	decode(t, w, &sync)
	if !sync.OK || sync.Succeeded != 1 || len(sync.Failures) != 0 {
		t.Fatalf("sync response = %+v", sync)
	}

	w = serve(r, http.MethodGet, "/launcher/api/v1/versions/1.20.1/check")
	var report models.IntegrityReport
	decode(t, w, &report)
	if !report.OK {
		t.Errorf("check after sync = %+v", report)
	}

	w = serve(r, http.MethodGet, "/launcher/api/v1/versions/1.20.1/classpath")
	if w.Code != http.StatusOK {
		t.Fatalf("classpath status = %d: %s", w.Code, w.Body.String())
	}
	var cp struct {
		Version   string   `json:"version"`
		Classpath []string `json:"classpath"`
	}
	decode(t, w, &cp)
	if len(cp.Classpath) != 2 || filepath.Base(cp.Classpath[0]) != "1.20.1.jar" {
		t.Errorf("classpath = %v", cp.Classpath)
	}

	w = serve(r, http.MethodGet, "/launcher/api/v1/versions/1.20.1/libraries")
	var libs []models.LibraryStatus
	decode(t, w, &libs)
	if len(libs) != 1 || libs[0].Name != "com.mojang:logging:1.1.1" {
		t.Errorf("libraries = %+v", libs)
	}
}

func TestClasspathIncomplete(t *testing.T) {
	r, _ := setupRouter(t)
	w := serve(r, http.MethodGet, "/launcher/api/v1/versions/broken/classpath")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	var body struct {
		Code    string   `json:"code"`
		Missing []string `json:"missing"`
	}
	decode(t, w, &body)
	if body.Code != "classpath.incomplete" || len(body.Missing) == 0 {
		t.Errorf("body = %+v", body)
	}
}
