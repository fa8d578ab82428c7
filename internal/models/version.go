package models

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

/**
 * Downloadable artifact (library jar, native bundle, client jar, asset index)
 * @property {string} path - Path relative to the library or asset root
 * @property {string} url - Source URL
 * @property {string} sha1 - Expected SHA-1 digest (hex), empty when unknown
 * @property {int64} size - Expected size in bytes, 0 when unknown
 */
type Artifact struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Empty reports whether the descriptor carries nothing usable.
func (a *Artifact) Empty() bool {
	return a == nil || (a.Path == "" && a.URL == "")
}

type OSRule struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)

/**
 * Platform rule attached to a library declaration
 * @property {string} action - allow|disallow (deny is accepted as an alias), default allow
 * @property {OSRule} os - Optional os name/arch/version predicate
 */
type Rule struct {
	Action string  `json:"action,omitempty"`
	OS     *OSRule `json:"os,omitempty"`
}

// Allows reports whether the rule's action admits the library.
func (r Rule) Allows() bool {
	switch r.Action {
	case ActionDisallow, "deny":
		return false
	default:
		return true
	}
}

type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

/**
 * Library declaration as listed in a version descriptor
 * @property {string} name - Maven coordinate group:artifact:version[:classifier][@ext]
 * @property {string} url - Optional repository base used for coordinate synthesis
 * @property {[]Rule} rules - Optional platform rules
 * @property {map[string]string} natives - os name -> classifier key, may contain ${arch}
 * @property {LibraryDownloads} downloads - Optional explicit download descriptors
 */
type Library struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
}

type AssetIndexRef struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SHA1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
}

type VersionDownloads struct {
	Client *Artifact `json:"client,omitempty"`
	Server *Artifact `json:"server,omitempty"`
}

/**
 * Version descriptor (versions/<id>/<id>.json)
 * @description
 * - Read-only input; absent fields mean "not applicable"
 */
type VersionDescriptor struct {
	ID          string            `json:"id"`
	Type        string            `json:"type,omitempty"`
	ReleaseTime string            `json:"releaseTime,omitempty"`
	MainClass   string            `json:"mainClass,omitempty"`
	Assets      string            `json:"assets,omitempty"`
	AssetIndex  *AssetIndexRef    `json:"assetIndex,omitempty"`
	Downloads   *VersionDownloads `json:"downloads,omitempty"`
	Libraries   []Library         `json:"libraries,omitempty"`
}

// ClientDownload returns the main archive descriptor, or nil.
func (v *VersionDescriptor) ClientDownload() *Artifact {
	if v.Downloads == nil || v.Downloads.Client.Empty() {
		return nil
	}
	return v.Downloads.Client
}

// AssetIndexID returns the asset index id, falling back to the "assets" field.
func (v *VersionDescriptor) AssetIndexID() string {
	if v.AssetIndex != nil && v.AssetIndex.ID != "" {
		return v.AssetIndex.ID
	}
	return v.Assets
}

/**
 * Parse a version descriptor document
 * @param {[]byte} data - JSON document; comments and trailing commas are tolerated
 * @returns {*VersionDescriptor} Parsed descriptor
 * @returns {error} ErrNotFound wrapped when the document is unparsable or has no id
 */
func ParseVersion(data []byte) (*VersionDescriptor, error) {
	var v VersionDescriptor
	if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
		return nil, fmt.Errorf("%w: unmarshal version descriptor: %v", ErrNotFound, err)
	}
	if v.ID == "" {
		return nil, fmt.Errorf("%w: version descriptor has no id", ErrNotFound)
	}
	return &v, nil
}

// VersionSummary is one row of the local version listing.
type VersionSummary struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ReleaseTime string `json:"releaseTime"`
	Path        string `json:"path"`
}

type ManifestEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	ReleaseTime string `json:"releaseTime"`
	SHA1        string `json:"sha1,omitempty"`
}

// VersionManifest is the remote version list document.
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []ManifestEntry `json:"versions"`
}

// Find returns the manifest entry for id.
func (m *VersionManifest) Find(id string) (ManifestEntry, bool) {
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return ManifestEntry{}, false
}
