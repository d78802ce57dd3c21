package lister

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depaudit/domain"
)

// Lockfile implements domain.PackageLister over a UPM packages-lock.json.
// The lockfile is authoritative: it already contains the resolved set of
// installed packages with their depth and declared dependencies.
type Lockfile struct {
	path string
}

// NewLockfile creates a lister for the given lockfile path.
func NewLockfile(path string) *Lockfile {
	return &Lockfile{path: path}
}

type lockFile struct {
	Dependencies map[string]lockEntry `json:"dependencies"`
}

type lockEntry struct {
	Version      string            `json:"version"`
	Depth        int               `json:"depth"`
	Source       string            `json:"source"`
	Dependencies map[string]string `json:"dependencies"`
	URL          string            `json:"url"`
}

// List parses the lockfile into package records. Records come back sorted by
// name so that one snapshot always lists the same way.
func (l *Lockfile) List(_ context.Context) ([]domain.PackageRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile %q: %w", l.path, err)
	}

	var parsed lockFile
	if unmarshalErr := json.Unmarshal(data, &parsed); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse lockfile %q: %w", l.path, unmarshalErr)
	}

	names := make([]string, 0, len(parsed.Dependencies))
	for name := range parsed.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]domain.PackageRecord, 0, len(names))
	for _, name := range names {
		entry := parsed.Dependencies[name]
		records = append(records, buildRecord(name, entry))
	}

	logger.Debugf("Parsed %d packages from %q", len(records), l.path)
	return records, nil
}

func buildRecord(name string, entry lockEntry) domain.PackageRecord {
	deps := make([]string, 0, len(entry.Dependencies))
	for dep := range entry.Dependencies {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	record := domain.PackageRecord{
		Name:         name,
		Version:      entry.Version,
		Dependencies: deps,
		Source:       domain.ParseSourceKind(entry.Source),
		Direct:       entry.Depth == 0,
		RepoURL:      entry.URL,
	}

	// Git entries without an explicit url field encode "repo#revision" in the
	// version (the UPM lock format); split it so the revision can be compared
	// and the repo can be queried for newer tags.
	if record.Source == domain.SourceGit && record.RepoURL == "" {
		if repo, rev, found := strings.Cut(record.Version, "#"); found {
			record.RepoURL = repo
			record.Version = rev
		} else {
			record.RepoURL = record.Version
			record.Version = ""
		}
	}

	return record
}
