// Package rules decides whether a library declaration applies to a platform.
package rules

import (
	"regexp"

	"mclauncher/internal/models"
)

/**
 * Decide whether a library declaration is required on the platform
 * @param {models.Library} lib - Library declaration
 * @param {models.Platform} p - Target platform
 * @returns {bool} true when the library must be present
 * @description
 * - No rules: always included
 * - The flag starts out allowed and every rule is applied in declared order
 * - A rule without an os predicate sets the flag to its action
 * - A rule whose os predicate holds sets the flag to its action, one whose
 *   predicate fails sets it to the inverse action
 * - So [allow windows, disallow windows/x86] includes windows/x64 and
 *   linux/x64 and excludes only windows/x86
 */
func Included(lib models.Library, p models.Platform) bool {
	return Evaluate(lib.Rules, p)
}

// Evaluate applies a rule list to the platform. See Included.
func Evaluate(rules []models.Rule, p models.Platform) bool {
	if len(rules) == 0 {
		return true
	}
	p = p.Normalize()
	allow := true
	for _, r := range rules {
		if Matches(r, p) {
			allow = r.Allows()
		} else {
			allow = !r.Allows()
		}
	}
	return allow
}

// Matches reports whether every predicate present on the rule holds for p.
func Matches(r models.Rule, p models.Platform) bool {
	if r.OS == nil {
		return true
	}
	if r.OS.Name != "" && models.NormalizeOS(r.OS.Name) != models.NormalizeOS(p.OSName) {
		return false
	}
	if r.OS.Arch != "" && models.NormalizeArch(r.OS.Arch) != models.NormalizeArch(p.Arch) {
		return false
	}
	if r.OS.Version != "" {
		// an unknown platform version cannot satisfy a version predicate
		if p.OSVersion == "" {
			return false
		}
		re, err := regexp.Compile(r.OS.Version)
		if err != nil || !re.MatchString(p.OSVersion) {
			return false
		}
	}
	return true
}
