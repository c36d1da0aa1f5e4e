package xapi

import "fmt"

// Version is an xAPI protocol version string.
type Version string

// Supported protocol versions, oldest first.
const (
	Version100 Version = "1.0.0"
	Version101 Version = "1.0.1"
	Version102 Version = "1.0.2"
	Version103 Version = "1.0.3"
)

// StatementDefaultVersion is stamped onto statements built without an
// explicit version, matching the version most LRS deployments accept.
const StatementDefaultVersion = Version101

// supportedVersions is ordered oldest to newest.
var supportedVersions = []Version{Version100, Version101, Version102, Version103}

// SupportedVersions returns the supported protocol versions, oldest first.
func SupportedVersions() []Version {
	out := make([]Version, len(supportedVersions))
	copy(out, supportedVersions)
	return out
}

// LatestVersion returns the greatest entry of the supported set.
func LatestVersion() Version {
	return supportedVersions[len(supportedVersions)-1]
}

// Supported reports whether v is in the supported set.
func (v Version) Supported() bool {
	for _, s := range supportedVersions {
		if v == s {
			return true
		}
	}
	return false
}

// ParseVersion validates s against the supported set.
func ParseVersion(s string) (Version, error) {
	v := Version(s)
	if !v.Supported() {
		return "", fmt.Errorf("version %q: %w", s, ErrUnsupportedVersion)
	}
	return v, nil
}
