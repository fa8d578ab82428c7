package locator

import (
	"mclauncher/internal/models"
	"mclauncher/internal/rules"
)

// Entry is one library declaration after rule evaluation and resolution.
type Entry struct {
	Library  models.Library
	Included bool
	Resolved Resolved
	// Err is set when an included library could not be resolved
	Err error
}

/**
 * Evaluate and resolve libraries in declaration order
 * @param {[]models.Library} libs - Declarations from a version descriptor
 * @param {models.Platform} p - Target platform
 * @returns {[]Entry} One entry per declaration, excluded ones included with Included=false
 */
func (l *Locator) ResolveAll(libs []models.Library, p models.Platform) []Entry {
	entries := make([]Entry, 0, len(libs))
	for _, lib := range libs {
		e := Entry{Library: lib, Included: rules.Included(lib, p)}
		if e.Included {
			e.Resolved, e.Err = l.Resolve(lib, p)
		}
		entries = append(entries, e)
	}
	return entries
}
