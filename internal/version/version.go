// Package version tracks the server and schema versions.
package version

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Version is the service current released version.
var Version = "0.3.1"

// DevVersion is the service current development version.
var DevVersion = "0.0.0"

func GetCurrentVersion(mode string) string {
	if mode == "dev" || mode == "demo" {
		return DevVersion
	}
	return Version
}

// GetMinorVersion returns the major.minor part of a version string.
func GetMinorVersion(version string) string {
	return semver.MajorMinor(normalize(version))
}

// IsVersionGreaterOrEqualThan reports version >= target.
func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(normalize(version), normalize(target)) >= 0
}

// IsVersionGreaterThan reports version > target.
func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(normalize(version), normalize(target)) > 0
}

// Compare returns -1, 0 or +1 comparing a against b as semver.
func Compare(a, b string) int {
	return semver.Compare(normalize(a), normalize(b))
}

func normalize(version string) string {
	if version == "" {
		return "v0.0.0"
	}
	if version[0] != 'v' {
		return "v" + version
	}
	return version
}

func String() string {
	return fmt.Sprintf("constellation/%s", Version)
}
