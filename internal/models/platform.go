package models

import "strings"

const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSX       = "osx"

	ArchX86   = "x86"
	ArchX64   = "x64"
	ArchArm64 = "arm64"
	ArchArm   = "arm"
)

/**
 * Target platform supplied by the caller
 * @property {string} osName - windows/linux/osx
 * @property {string} arch - normalized architecture token
 * @property {string} osVersion - optional, matched by os.version rules
 */
type Platform struct {
	OSName    string `json:"osName" mapstructure:"os"`
	Arch      string `json:"arch" mapstructure:"arch"`
	OSVersion string `json:"osVersion,omitempty" mapstructure:"os_version"`
}

// Normalize returns a copy with canonical os and arch tokens.
func (p Platform) Normalize() Platform {
	return Platform{
		OSName:    NormalizeOS(p.OSName),
		Arch:      NormalizeArch(p.Arch),
		OSVersion: p.OSVersion,
	}
}

// WordSize returns "64" or "32", used to expand ${arch} in native classifiers.
func (p Platform) WordSize() string {
	switch NormalizeArch(p.Arch) {
	case ArchX86, ArchArm:
		return "32"
	default:
		return "64"
	}
}

func (p Platform) String() string {
	return p.OSName + "/" + p.Arch
}

// NormalizeOS maps Go and descriptor spellings onto windows/linux/osx.
func NormalizeOS(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "darwin", "macos", "mac", "osx":
		return OSX
	case "win", "win32", "windows":
		return OSWindows
	default:
		return n
	}
}

// NormalizeArch maps Go and descriptor spellings onto x86/x64/arm64/arm.
func NormalizeArch(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "386", "i386", "i686", "x86", "x32":
		return ArchX86
	case "amd64", "x86_64", "x64":
		return ArchX64
	case "aarch64", "arm64":
		return ArchArm64
	case "arm", "armv7", "armv7l":
		return ArchArm
	default:
		return a
	}
}
