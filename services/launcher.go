package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/jsonc"

	"mclauncher/internal/classpath"
	"mclauncher/internal/config"
	"mclauncher/internal/fetch"
	"mclauncher/internal/locator"
	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/progress"
	"mclauncher/internal/store"
	"mclauncher/internal/syncer"
)

/**
 * Launcher is the engine facade used by the CLI and the HTTP API
 * @description
 * - Owns the content store, locator, synchronizer and classpath assembler
 * - Built once from an explicit AppConfig; holds no process-wide state
 */
type Launcher struct {
	cfg       *config.AppConfig
	store     *store.Store
	platform  models.Platform
	fetcher   fetch.Fetcher
	locator   *locator.Locator
	syncer    *syncer.Synchronizer
	assembler *classpath.Assembler
}

/**
 * Create the launcher engine
 * @param {*config.AppConfig} cfg - Application configuration
 * @param {fetch.Fetcher} fetcher - Network capability; nil builds an HTTP fetcher from cfg.Download
 * @returns {*Launcher} Engine rooted at cfg.Game.Directory for cfg's platform
 */
func NewLauncher(cfg *config.AppConfig, fetcher fetch.Fetcher) *Launcher {
	if fetcher == nil {
		fetcher = fetch.NewHTTPFetcher(fetch.Config{
			Timeout:            cfg.Download.Timeout,
			UserAgent:          cfg.Download.UserAgent,
			InsecureSkipVerify: cfg.Download.InsecureSkipVerify,
			MaxIdleConns:       cfg.Download.Workers,
		})
	}
	l := &Launcher{
		cfg:      cfg,
		store:    store.New(cfg.Game.Directory),
		platform: cfg.Platform(),
		fetcher:  fetcher,
		locator:  locator.New(cfg.Download.LibraryBaseUrl),
		syncer: syncer.New(fetcher, syncer.Options{
			Workers:       cfg.Download.Workers,
			ProgressEvery: cfg.Download.ProgressEvery,
			Observer:      MetricsObserver{},
		}),
	}
	l.assembler = classpath.New(l.locator, l.platform, cfg.Classpath.Marker, l.resyncLibraries)
	return l
}

func (l *Launcher) Store() *store.Store {
	return l.store
}

func (l *Launcher) Platform() models.Platform {
	return l.platform
}

/**
 * Load a locally installed version descriptor
 * @param {string} id - Version id
 * @returns {*models.VersionDescriptor} Parsed descriptor
 * @returns {error} ErrNotFound wrapped when absent or unparsable
 */
func (l *Launcher) LoadVersion(id string) (*models.VersionDescriptor, error) {
	if err := validVersionID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.store.VersionJSONPath(id))
	if err != nil {
		return nil, fmt.Errorf("%w: version '%s': %v", models.ErrNotFound, id, err)
	}
	return models.ParseVersion(data)
}

/**
 * List versions installed in the game directory
 * @returns {[]models.VersionSummary} Sorted by id; directories without a readable descriptor are skipped
 */
func (l *Launcher) LocalVersions() ([]models.VersionSummary, error) {
	entries, err := os.ReadDir(l.store.VersionsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []models.VersionSummary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := l.LoadVersion(e.Name())
		if err != nil {
			logger.Debugf("skip version directory '%s': %v", e.Name(), err)
			continue
		}
		out = append(out, models.VersionSummary{
			ID:          v.ID,
			Type:        v.Type,
			ReleaseTime: v.ReleaseTime,
			Path:        l.store.VersionDir(e.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

/**
 * Fetch the remote version manifest
 * @returns {*models.VersionManifest} Manifest listing all published versions
 * @returns {error} ErrNotFound when unparsable, ErrNetworkFailure on transport errors
 */
func (l *Launcher) RemoteVersions(ctx context.Context) (*models.VersionManifest, error) {
	data, err := fetch.GetBytes(ctx, l.fetcher, l.cfg.Download.ManifestUrl)
	if err != nil {
		return nil, err
	}
	var m models.VersionManifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("%w: unmarshal version manifest: %v", models.ErrNotFound, err)
	}
	return &m, nil
}

/**
 * Install a version from the remote manifest
 * @param {string} id - Version id as listed in the manifest
 * @param {progress.Reporter} reporter - Progress of the client archive download
 * @returns {*models.VersionDescriptor} Persisted descriptor
 * @returns {*models.SyncResult} Outcome of the client archive synchronization
 * @description
 * - Stores the descriptor at versions/<id>/<id>.json, verified against the manifest digest when given
 * - A descriptor whose own id differs from the requested one is rejected with ErrNotFound
 * - Synchronizes downloads.client into versions/<id>/<id>.jar
 */
func (l *Launcher) InstallVersion(ctx context.Context, id string, reporter progress.Reporter) (*models.VersionDescriptor, *models.SyncResult, error) {
	reporter = progress.OrNop(reporter)
	if err := validVersionID(id); err != nil {
		return nil, nil, err
	}
	reporter.Report("Fetching version manifest", 0)
	manifest, err := l.RemoteVersions(ctx)
	if err != nil {
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}
	entry, ok := manifest.Find(id)
	if !ok {
		err := fmt.Errorf("%w: version '%s' is not in the manifest", models.ErrNotFound, id)
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}

	reporter.Report(fmt.Sprintf("Fetching descriptor of %s", id), 5)
	data, err := fetch.GetBytes(ctx, l.fetcher, entry.URL)
	if err != nil {
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}
	if entry.SHA1 != "" {
		actual, _ := store.HashReader(bytes.NewReader(data))
		if !store.SameHash(actual, entry.SHA1) {
			err := fmt.Errorf("%w: descriptor of '%s' sha1 %s, expected %s", models.ErrIntegrityMismatch, id, actual, entry.SHA1)
			reporter.Report(err.Error(), progress.Indeterminate)
			return nil, nil, err
		}
	}
	v, err := models.ParseVersion(data)
	if err != nil {
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}
	if v.ID != id {
		err := fmt.Errorf("%w: descriptor id '%s' does not match '%s'", models.ErrNotFound, v.ID, id)
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}
	if err := store.WriteFileAtomic(l.store.VersionJSONPath(id), data); err != nil {
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, nil, err
	}
	logger.Infof("installed descriptor of '%s' to '%s'", id, l.store.VersionJSONPath(id))

	result, err := l.SyncClient(ctx, v, progress.Scale(reporter, 10, 100))
	return v, result, err
}
