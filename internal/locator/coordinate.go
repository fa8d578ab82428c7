package locator

import (
	"fmt"
	"strings"

	"mclauncher/internal/models"
)

const defaultExtension = "jar"

// Coordinate is a parsed group:artifact:version[:classifier][@extension].
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

/**
 * Parse a maven-style library coordinate
 * @param {string} name - group:artifact:version[:classifier][@extension]
 * @returns {Coordinate} Parsed coordinate, extension defaults to "jar"
 * @returns {error} ErrResolutionFailure when fewer than three segments are present
 * @example
 * c, _ := ParseCoordinate("org.lwjgl:lwjgl:3.3.1:natives-windows")
 * c.Path() // org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-windows.jar
 */
func ParseCoordinate(name string) (Coordinate, error) {
	c := Coordinate{Extension: defaultExtension}
	name = strings.TrimSpace(name)
	if at := strings.LastIndex(name, "@"); at >= 0 {
		if ext := name[at+1:]; ext != "" {
			c.Extension = ext
		}
		name = name[:at]
	}
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return c, fmt.Errorf("%w: invalid coordinate '%s'", models.ErrResolutionFailure, name)
	}
	for _, p := range parts[:3] {
		if p == "" {
			return c, fmt.Errorf("%w: invalid coordinate '%s'", models.ErrResolutionFailure, name)
		}
	}
	c.Group, c.Artifact, c.Version = parts[0], parts[1], parts[2]
	if len(parts) > 3 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// WithClassifier returns a copy carrying the given classifier.
func (c Coordinate) WithClassifier(classifier string) Coordinate {
	c.Classifier = classifier
	return c
}

// Path returns group/with/slashes/artifact/version/artifact-version[-classifier].ext
func (c Coordinate) Path() string {
	file := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += "." + c.Extension
	return strings.ReplaceAll(c.Group, ".", "/") + "/" + c.Artifact + "/" + c.Version + "/" + file
}

func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	if c.Extension != defaultExtension {
		s += "@" + c.Extension
	}
	return s
}
