package domain

import (
	"fmt"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// maxVersionParts is the number of numeric components a structured version
// may carry (major.minor.patch.build).
const maxVersionParts = 4

// Version is a structured numeric version. Missing components are zero,
// so "1.2" and "1.2.0" compare equal.
type Version struct {
	parts [maxVersionParts]int
}

// ParseVersion parses a version string with up to four dot-separated numeric
// components and an optional leading "v". Anything else — pre-release
// suffixes, date tags, "latest", the empty string — is a parse error.
func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return Version{}, fmt.Errorf("empty version string %q", raw)
	}

	fields := strings.Split(trimmed, ".")
	if len(fields) > maxVersionParts {
		return Version{}, fmt.Errorf("version %q has more than %d components", raw, maxVersionParts)
	}

	var v Version
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version %q has non-numeric component %q", raw, field)
		}
		v.parts[i] = n
	}
	return v, nil
}

// Compare returns -1, 0 or 1 under componentwise numeric ordering.
func (v Version) Compare(other Version) int {
	for i := range v.parts {
		switch {
		case v.parts[i] < other.parts[i]:
			return -1
		case v.parts[i] > other.parts[i]:
			return 1
		}
	}
	return 0
}

// IsNewer reports whether latest is strictly newer than installed under
// numeric componentwise ordering ("1.10.0" is newer than "1.2.0").
// When either string fails to parse the answer is false: malformed versions
// are conservatively treated as up to date, never as an error.
func IsNewer(latest, installed string) bool {
	latestVer, err := ParseVersion(latest)
	if err != nil {
		logger.Debugf("Treating unparseable latest version as not newer: %v", err)
		return false
	}
	installedVer, err := ParseVersion(installed)
	if err != nil {
		logger.Debugf("Treating unparseable installed version as not newer: %v", err)
		return false
	}
	return latestVer.Compare(installedVer) > 0
}
