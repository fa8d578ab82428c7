package services

import (
	"fmt"
	"os"

	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/store"
)

type checker struct {
	report *models.IntegrityReport
}

func (c *checker) check(name, path, sha1 string, size int64) {
	c.report.Checked++
	switch store.Check(path, sha1, size) {
	case store.StatusMissing:
		c.report.Missing = append(c.report.Missing, name)
	case store.StatusCorrupt:
		c.report.Corrupt = append(c.report.Corrupt, name)
	}
}

/**
 * Read-only integrity check of a version
 * @param {*models.VersionDescriptor} v - Version descriptor
 * @returns {*models.IntegrityReport} Missing and corrupt objects with a summary line
 * @description
 * - Covers the main archive (when the descriptor has one), every included
 *   library and every object of the cached asset index
 * - Never fetches; a missing asset index is reported, not downloaded
 */
func (l *Launcher) Check(v *models.VersionDescriptor) *models.IntegrityReport {
	c := &checker{report: &models.IntegrityReport{VersionID: v.ID}}

	if client := v.ClientDownload(); client != nil {
		c.check(v.ID+".jar", l.store.VersionJarPath(v.ID), client.SHA1, client.Size)
	}
	for _, t := range l.libraryTasks(v, l.store, false) {
		c.check(t.Name, t.Dest, t.SHA1, t.Size)
	}

	if id := v.AssetIndexID(); id != "" {
		if err := l.checkAssets(c, v, id); err != nil {
			c.report.OK = false
			c.report.Summary = err.Error()
			return c.report
		}
	}

	r := c.report
	r.OK = len(r.Missing) == 0 && len(r.Corrupt) == 0
	switch {
	case r.OK && r.Checked == 1:
		r.Summary = "1 object complete"
	case r.OK:
		r.Summary = fmt.Sprintf("%d objects complete", r.Checked)
	default:
		r.Summary = fmt.Sprintf("incomplete: %d missing, %d corrupt", len(r.Missing), len(r.Corrupt))
	}
	return r
}

func (l *Launcher) checkAssets(c *checker, v *models.VersionDescriptor, id string) error {
	if err := validVersionID(id); err != nil {
		return err
	}
	path := l.store.AssetIndexPath(id)
	if v.AssetIndex != nil && store.Check(path, v.AssetIndex.SHA1, v.AssetIndex.Size) == store.StatusCorrupt {
		return fmt.Errorf("asset index '%s' is corrupt", id)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("asset index '%s' not found", id)
	}
	idx, err := models.ParseAssetIndex(data)
	if err != nil {
		return fmt.Errorf("asset index '%s' is unparsable", id)
	}
	for _, name := range idx.Names() {
		obj := idx.Objects[name]
		path, err := l.store.AssetObjectPath(obj.Hash)
		if err != nil {
			logger.Warnf("asset '%s': %v", name, err)
			c.report.Checked++
			c.report.Corrupt = append(c.report.Corrupt, name)
			continue
		}
		c.check(name, path, obj.Hash, obj.Size)
	}
	return nil
}

// CheckIntegrity returns whether every required object of v is present and valid, with a summary.
func (l *Launcher) CheckIntegrity(v *models.VersionDescriptor) (bool, string) {
	r := l.Check(v)
	if !r.OK {
		logger.Infof("integrity of '%s': %s", v.ID, r.Summary)
	}
	return r.OK, r.Summary
}

/**
 * Resolution listing of every library declaration of a version
 * @returns {[]models.LibraryStatus} One row per declaration in declaration order
 */
func (l *Launcher) Libraries(v *models.VersionDescriptor) []models.LibraryStatus {
	entries := l.locator.ResolveAll(v.Libraries, l.platform)
	out := make([]models.LibraryStatus, 0, len(entries))
	for _, e := range entries {
		row := models.LibraryStatus{Name: e.Library.Name, Included: e.Included, Strategy: models.StrategyNone}
		if e.Included && e.Err == nil {
			art := e.Resolved.Artifact
			row.Strategy = e.Resolved.Strategy
			row.Artifact = &art
			if p, err := l.store.LibraryPath(art.Path); err == nil {
				row.Path = p
				row.Present = store.Check(p, art.SHA1, art.Size) == store.StatusValid
			}
		}
		out = append(out, row)
	}
	return out
}
