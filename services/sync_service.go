package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/progress"
	"mclauncher/internal/store"
)

func validVersionID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid version id '%s'", models.ErrNotFound, id)
	}
	return nil
}

// assetURL is "<base>/<hash[0:2]>/<hash>".
func (l *Launcher) assetURL(hash string) string {
	return strings.TrimRight(l.cfg.Download.AssetBaseUrl, "/") + "/" + store.AssetObjectKey(hash)
}

/**
 * Load the asset index of a version, fetching it when needed
 * @param {*models.VersionDescriptor} v - Version descriptor
 * @returns {*models.AssetIndex} Parsed index, nil when the version has no asset index
 * @returns {error} ErrNotFound when the index is neither cached nor fetchable, or unparsable
 * @description
 * - A cached index is reused; when assetIndex.sha1 is known it must match, otherwise it is refetched
 * - The fetched index goes through the synchronizer, so it is verified before being written
 */
func (l *Launcher) ensureAssetIndex(ctx context.Context, v *models.VersionDescriptor) (*models.AssetIndex, error) {
	id := v.AssetIndexID()
	if id == "" {
		return nil, nil
	}
	if err := validVersionID(id); err != nil {
		return nil, err
	}
	path := l.store.AssetIndexPath(id)
	var ref models.AssetIndexRef
	if v.AssetIndex != nil {
		ref = *v.AssetIndex
	}

	if store.Check(path, ref.SHA1, ref.Size) == store.StatusValid {
		if data, err := os.ReadFile(path); err == nil {
			if idx, err := models.ParseAssetIndex(data); err == nil {
				return idx, nil
			}
			logger.Warnf("cached asset index '%s' is unparsable, refetching", path)
		}
	}
	if ref.URL == "" {
		return nil, fmt.Errorf("%w: asset index '%s' is not cached and has no url", models.ErrNotFound, id)
	}

	task := models.Task{
		Name:  "asset index " + id,
		Kind:  models.KindAssetIndex,
		URL:   ref.URL,
		Dest:  path,
		SHA1:  ref.SHA1,
		Size:  ref.Size,
		Force: true,
	}
	result := l.syncer.Sync(ctx, []models.Task{task}, nil)
	if !result.Complete() {
		if fails := result.Failures(); len(fails) > 0 {
			return nil, fmt.Errorf("%w: asset index '%s': %v", models.ErrNotFound, id, fails[0].Err)
		}
		return nil, fmt.Errorf("%w: asset index '%s': %s", models.ErrNotFound, id, result.Summary())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: asset index '%s': %v", models.ErrNotFound, id, err)
	}
	return models.ParseAssetIndex(data)
}

func (l *Launcher) assetTasks(idx *models.AssetIndex) []models.Task {
	tasks := make([]models.Task, 0, len(idx.Objects))
	for _, name := range idx.Names() {
		obj := idx.Objects[name]
		dest, err := l.store.AssetObjectPath(obj.Hash)
		if err != nil {
			logger.Warnf("asset '%s' skipped: %v", name, err)
			continue
		}
		tasks = append(tasks, models.Task{
			Name: name,
			Kind: models.KindAsset,
			URL:  l.assetURL(obj.Hash),
			Dest: dest,
			SHA1: obj.Hash,
			Size: obj.Size,
		})
	}
	return tasks
}

/**
 * Synchronize the asset objects of a version
 * @param {progress.Reporter} reporter - index 10, scan 20, partition 30, downloads 30 to 100, -1 on error
 * @returns {*models.SyncResult} Outcome of the object synchronization
 * @returns {error} Asset index failures; per-object failures are only in the result
 */
func (l *Launcher) SyncAssets(ctx context.Context, v *models.VersionDescriptor, reporter progress.Reporter) (*models.SyncResult, error) {
	reporter = progress.OrNop(reporter)
	reporter.Report("Synchronizing assets", 0)

	reporter.Report("Loading asset index", 10)
	idx, err := l.ensureAssetIndex(ctx, v)
	if err != nil {
		reporter.Report(err.Error(), progress.Indeterminate)
		logger.Errorf("asset index of '%s': %v", v.ID, err)
		return nil, err
	}
	if idx == nil {
		reporter.Report("Version has no asset index", 100)
		return &models.SyncResult{}, nil
	}

	reporter.Report(fmt.Sprintf("Scanning %d assets", len(idx.Objects)), 20)
	tasks := l.assetTasks(idx)

	reporter.Report(fmt.Sprintf("Verifying %d assets", len(tasks)), 30)
	result := l.syncer.Sync(ctx, tasks, progress.Scale(reporter, 30, 100))
	logger.Infof("assets of '%s': %s", v.ID, result.Summary())
	return result, nil
}

// SynchronizeAssets reports whether every asset object of v is valid afterwards.
func (l *Launcher) SynchronizeAssets(ctx context.Context, v *models.VersionDescriptor, reporter progress.Reporter) bool {
	result, err := l.SyncAssets(ctx, v, reporter)
	return err == nil && result.Complete()
}

/**
 * Build library tasks for a version against a store
 * @param {bool} force - Also refetch libraries that carry no digest
 * @description
 * - Excluded libraries are skipped silently, unresolvable ones with a warning
 */
func (l *Launcher) libraryTasks(v *models.VersionDescriptor, st *store.Store, force bool) []models.Task {
	var tasks []models.Task
	for _, e := range l.locator.ResolveAll(v.Libraries, l.platform) {
		if !e.Included {
			logger.Debugf("library '%s' excluded on %s", e.Library.Name, l.platform)
			continue
		}
		if e.Err != nil {
			logger.Warnf("skip library '%s': %v", e.Library.Name, e.Err)
			continue
		}
		art := e.Resolved.Artifact
		dest, err := st.LibraryPath(art.Path)
		if err != nil {
			logger.Warnf("skip library '%s': %v", e.Library.Name, err)
			continue
		}
		tasks = append(tasks, models.Task{
			Name:  e.Library.Name,
			Kind:  models.KindLibrary,
			URL:   art.URL,
			Dest:  dest,
			SHA1:  art.SHA1,
			Size:  art.Size,
			Force: force,
		})
	}
	return tasks
}

// SyncLibraries synchronizes every library included for the configured platform.
func (l *Launcher) SyncLibraries(ctx context.Context, v *models.VersionDescriptor, force bool, reporter progress.Reporter) (*models.SyncResult, error) {
	return l.syncLibrariesInto(ctx, v, l.store, force, reporter)
}

func (l *Launcher) syncLibrariesInto(ctx context.Context, v *models.VersionDescriptor, st *store.Store, force bool, reporter progress.Reporter) (*models.SyncResult, error) {
	reporter = progress.OrNop(reporter)
	reporter.Report("Synchronizing libraries", 0)
	tasks := l.libraryTasks(v, st, force)
	result := l.syncer.Sync(ctx, tasks, reporter)
	logger.Infof("libraries of '%s': %s", v.ID, result.Summary())
	return result, nil
}

// SynchronizeLibraries reports whether every included library of v is valid afterwards.
func (l *Launcher) SynchronizeLibraries(ctx context.Context, v *models.VersionDescriptor, reporter progress.Reporter) bool {
	result, err := l.SyncLibraries(ctx, v, false, reporter)
	return err == nil && result.Complete()
}

// resyncLibraries is the classpath assembler's recovery hook.
func (l *Launcher) resyncLibraries(ctx context.Context, v *models.VersionDescriptor, root string) (*models.SyncResult, error) {
	st := l.store
	if root != "" && root != l.store.Root() {
		st = store.New(root)
	}
	return l.syncLibrariesInto(ctx, v, st, true, nil)
}

/**
 * Synchronize the main game archive
 * @returns {error} ErrNotFound when the descriptor has no client download
 */
func (l *Launcher) SyncClient(ctx context.Context, v *models.VersionDescriptor, reporter progress.Reporter) (*models.SyncResult, error) {
	reporter = progress.OrNop(reporter)
	if err := validVersionID(v.ID); err != nil {
		return nil, err
	}
	client := v.ClientDownload()
	if client == nil {
		err := fmt.Errorf("%w: version '%s' has no client download", models.ErrNotFound, v.ID)
		reporter.Report(err.Error(), progress.Indeterminate)
		return nil, err
	}
	task := models.Task{
		Name: v.ID + ".jar",
		Kind: models.KindClient,
		URL:  client.URL,
		Dest: l.store.VersionJarPath(v.ID),
		SHA1: client.SHA1,
		Size: client.Size,
	}
	result := l.syncer.Sync(ctx, []models.Task{task}, reporter)
	logger.Infof("client of '%s': %s", v.ID, result.Summary())
	return result, nil
}

/**
 * Synchronize client archive, libraries and assets in that order
 * @returns {*models.SyncResult} Merged result of every stage that ran
 * @description
 * - Stops early only on cancellation or when the asset index is unavailable
 * - A version without a client download is synchronized without it
 */
func (l *Launcher) SyncAll(ctx context.Context, v *models.VersionDescriptor, reporter progress.Reporter) (*models.SyncResult, error) {
	reporter = progress.OrNop(reporter)
	total := &models.SyncResult{}

	if v.ClientDownload() != nil {
		r, err := l.SyncClient(ctx, v, progress.Scale(reporter, 0, 10))
		if err != nil {
			return total, err
		}
		total.Merge(r)
	}
	if total.Cancelled {
		return total, nil
	}

	r, _ := l.SyncLibraries(ctx, v, false, progress.Scale(reporter, 10, 40))
	total.Merge(r)
	if total.Cancelled {
		return total, nil
	}

	r, err := l.SyncAssets(ctx, v, progress.Scale(reporter, 40, 100))
	if err != nil {
		return total, err
	}
	total.Merge(r)
	return total, nil
}
