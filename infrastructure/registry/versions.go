package registry

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// SortVersionsDescending sorts version strings in descending order (newest first).
func SortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := NormalizeVersion(versions[i])
		v2 := NormalizeVersion(versions[j])

		// Use semver comparison if both are valid semver
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}

		// Fall back to string comparison
		return versions[i] > versions[j]
	})
}

// NormalizeVersion ensures version has 'v' prefix for semver compatibility.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
