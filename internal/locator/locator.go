// Package locator turns a library declaration into a concrete artifact.
package locator

import (
	"fmt"
	"sort"
	"strings"

	"mclauncher/internal/models"
)

const DefaultLibraryBaseURL = "https://libraries.minecraft.net"

// Resolved is the artifact chosen for a declaration and how it was found.
type Resolved struct {
	Artifact models.Artifact
	Strategy models.Strategy
}

type Locator struct {
	baseURL string
}

// New creates a locator that synthesizes URLs under baseURL.
func New(baseURL string) *Locator {
	if baseURL == "" {
		baseURL = DefaultLibraryBaseURL
	}
	return &Locator{baseURL: strings.TrimRight(baseURL, "/")}
}

/**
 * Resolve the artifact of a library for a platform
 * @param {models.Library} lib - Library declaration
 * @param {models.Platform} p - Target platform
 * @returns {Resolved} Artifact descriptor and the strategy that produced it
 * @returns {error} ErrResolutionFailure wrapped when no strategy applies
 * @description
 * - 1. explicit downloads.artifact, returned unchanged
 * - 2. downloads.classifiers, picked by platform preference
 * - 3. artifact path synthesized from the maven coordinate
 * - Rules are not evaluated here; see rules.Included
 */
func (l *Locator) Resolve(lib models.Library, p models.Platform) (Resolved, error) {
	p = p.Normalize()
	if lib.Downloads != nil && !lib.Downloads.Artifact.Empty() {
		art := *lib.Downloads.Artifact
		if art.Path == "" {
			if c, err := ParseCoordinate(lib.Name); err == nil {
				art.Path = c.Path()
			}
		}
		if art.Path == "" {
			return Resolved{}, fmt.Errorf("%w: '%s' artifact has no path", models.ErrResolutionFailure, lib.Name)
		}
		return Resolved{Artifact: art, Strategy: models.StrategyArtifact}, nil
	}
	if lib.Downloads != nil && len(lib.Downloads.Classifiers) > 0 {
		if key, ok := SelectClassifier(lib, p); ok {
			art := lib.Downloads.Classifiers[key]
			if art.Path == "" {
				c, err := ParseCoordinate(lib.Name)
				if err != nil {
					return Resolved{}, err
				}
				art.Path = c.WithClassifier(key).Path()
			}
			return Resolved{Artifact: art, Strategy: models.StrategyClassifier}, nil
		}
	}
	if lib.Name != "" {
		c, err := ParseCoordinate(lib.Name)
		if err != nil {
			return Resolved{}, err
		}
		base := l.baseURL
		if lib.URL != "" {
			base = strings.TrimRight(lib.URL, "/")
		}
		path := c.Path()
		return Resolved{
			Artifact: models.Artifact{Path: path, URL: base + "/" + path},
			Strategy: models.StrategyCoordinate,
		}, nil
	}
	return Resolved{}, fmt.Errorf("%w: declaration has neither downloads nor name", models.ErrResolutionFailure)
}

/**
 * Pick a native classifier for the platform
 * @returns {string} Key into lib.Downloads.Classifiers
 * @returns {bool} false when the table has no usable entry
 * @description
 * - exact natives-<os>
 * - the declaration's natives[<os>] template with ${arch} expanded to the word size
 * - natives-<os>-<wordsize>, then natives-<os>-<arch>
 * - otherwise the lexicographically first non-empty entry
 */
func SelectClassifier(lib models.Library, p models.Platform) (string, bool) {
	table := lib.Downloads.Classifiers
	usable := func(key string) bool {
		art, ok := table[key]
		return ok && !art.Empty()
	}
	p = p.Normalize()
	bits := p.WordSize()

	var candidates []string
	for _, os := range osAliases(p.OSName) {
		candidates = append(candidates, "natives-"+os)
	}
	for _, os := range osAliases(p.OSName) {
		if tmpl, ok := lib.Natives[os]; ok {
			candidates = append(candidates, strings.ReplaceAll(tmpl, "${arch}", bits))
		}
	}
	for _, os := range osAliases(p.OSName) {
		candidates = append(candidates, "natives-"+os+"-"+bits, "natives-"+os+"-"+p.Arch)
	}
	for _, key := range candidates {
		if usable(key) {
			return key, true
		}
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if usable(k) {
			return k, true
		}
	}
	return "", false
}

func osAliases(os string) []string {
	if os == models.OSX {
		return []string{"osx", "macos"}
	}
	return []string{os}
}
