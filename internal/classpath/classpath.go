// Package classpath assembles the ordered execution classpath of a version
// from verified objects in the content store.
package classpath

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"mclauncher/internal/locator"
	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/store"
)

const DefaultMarker = "com/mojang"

// Resync forces a library synchronization for v into the store rooted at root.
type Resync func(ctx context.Context, v *models.VersionDescriptor, root string) (*models.SyncResult, error)

type Assembler struct {
	locator  *locator.Locator
	platform models.Platform
	marker   string
	resync   Resync
}

/**
 * Create a classpath assembler
 * @param {*locator.Locator} loc - Resolves library declarations
 * @param {models.Platform} p - Target platform
 * @param {string} marker - Path fragment at least one entry must contain, e.g. "com/mojang"
 * @param {Resync} resync - Recovery synchronization; nil disables recovery
 */
func New(loc *locator.Locator, p models.Platform, marker string, resync Resync) *Assembler {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Assembler{
		locator:  loc,
		platform: p.Normalize(),
		marker:   marker,
		resync:   resync,
	}
}

/**
 * Assemble the classpath of a version
 * @param {context.Context} ctx - Passed to the recovery synchronization
 * @param {*models.VersionDescriptor} v - Version descriptor
 * @param {string} root - Content store root
 * @returns {[]string} Absolute paths, main archive first, then libraries in declaration order
 * @returns {error} *models.IncompleteClasspathError when the list is empty or files stay missing
 * @description
 * - Only objects whose on-disk digest matches are included; corrupt counts as missing
 * - When the marker is absent or files are missing, libraries are resynchronized
 *   once (forced) and the list is rebuilt from scratch
 */
func (a *Assembler) Assemble(ctx context.Context, v *models.VersionDescriptor, root string) ([]string, error) {
	st := store.New(root)
	paths, missing := a.build(v, st)
	if len(missing) == 0 && len(paths) > 0 && a.hasMarker(paths) {
		return paths, nil
	}

	if a.resync != nil {
		if len(missing) > 0 {
			logger.Warnf("classpath of '%s' is missing %d files, resynchronizing libraries", v.ID, len(missing))
		} else {
			logger.Warnf("classpath of '%s' has no '%s' entry, resynchronizing libraries", v.ID, a.marker)
		}
		result, err := a.resync(ctx, v, root)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, models.ErrCancelled) {
				return nil, err
			}
			logger.Warnf("library resync for '%s' failed: %v", v.ID, err)
		} else if result != nil {
			logger.Infof("library resync for '%s': %s", v.ID, result.Summary())
		}
		paths, missing = a.build(v, st)
	}

	if len(paths) == 0 {
		return nil, &models.IncompleteClasspathError{Reason: "classpath is empty", Missing: missing}
	}
	if len(missing) > 0 {
		return nil, &models.IncompleteClasspathError{Reason: "required files are missing", Missing: missing}
	}
	if !a.hasMarker(paths) {
		logger.Warnf("classpath of '%s' still has no '%s' entry", v.ID, a.marker)
	}
	return paths, nil
}

// build lists verified paths and the paths that are missing or corrupt.
func (a *Assembler) build(v *models.VersionDescriptor, st *store.Store) (paths []string, missing []string) {
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	jar := st.VersionJarPath(v.ID)
	var sha1 string
	var size int64
	if client := v.ClientDownload(); client != nil {
		sha1, size = client.SHA1, client.Size
	}
	if store.Check(jar, sha1, size) == store.StatusValid {
		add(absPath(jar))
	} else {
		missing = append(missing, absPath(jar))
	}

	for _, e := range a.locator.ResolveAll(v.Libraries, a.platform) {
		if !e.Included {
			continue
		}
		if e.Err != nil {
			logger.Warnf("skip library '%s': %v", e.Library.Name, e.Err)
			continue
		}
		art := e.Resolved.Artifact
		local, err := st.LibraryPath(art.Path)
		if err != nil {
			logger.Warnf("skip library '%s': %v", e.Library.Name, err)
			continue
		}
		local = absPath(local)
		if store.Check(local, art.SHA1, art.Size) == store.StatusValid {
			add(local)
		} else {
			missing = append(missing, local)
		}
	}
	return paths, missing
}

func (a *Assembler) hasMarker(paths []string) bool {
	for _, p := range paths {
		if strings.Contains(filepath.ToSlash(p), a.marker) {
			return true
		}
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Join renders a classpath with the platform list separator, or sep when given.
func Join(paths []string, sep string) string {
	if sep == "" {
		sep = string(filepath.ListSeparator)
	}
	return strings.Join(paths, sep)
}
