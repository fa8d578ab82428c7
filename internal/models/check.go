package models

// IntegrityReport is the result of a read-only check of a version's files.
type IntegrityReport struct {
	VersionID string   `json:"versionId"`
	OK        bool     `json:"ok"`
	Summary   string   `json:"summary"`
	Checked   int      `json:"checked"`
	Missing   []string `json:"missing,omitempty"`
	Corrupt   []string `json:"corrupt,omitempty"`
}

// Strategy names the locator strategy that produced an artifact.
type Strategy string

const (
	StrategyNone       Strategy = "none"
	StrategyArtifact   Strategy = "artifact"
	StrategyClassifier Strategy = "classifier"
	StrategyCoordinate Strategy = "coordinate"
)

// LibraryStatus is one row of the library resolution listing.
type LibraryStatus struct {
	Name     string    `json:"name"`
	Included bool      `json:"included"`
	Strategy Strategy  `json:"strategy"`
	Artifact *Artifact `json:"artifact,omitempty"`
	Path     string    `json:"path,omitempty"`
	Present  bool      `json:"present"`
}
