package domain

import "sort"

// SourceKind identifies where an installed package comes from.
type SourceKind int

const (
	SourceRegistry SourceKind = iota
	SourceEmbedded
	SourceLocal
	SourceBuiltIn
	SourceGit
)

// ParseSourceKind maps a lockfile source string to a SourceKind.
// Unknown values are treated as registry packages so they still get audited.
func ParseSourceKind(raw string) SourceKind {
	switch raw {
	case "embedded":
		return SourceEmbedded
	case "local":
		return SourceLocal
	case "builtin":
		return SourceBuiltIn
	case "git":
		return SourceGit
	default:
		return SourceRegistry
	}
}

func (k SourceKind) String() string {
	switch k {
	case SourceEmbedded:
		return "embedded"
	case SourceLocal:
		return "local"
	case SourceBuiltIn:
		return "builtin"
	case SourceGit:
		return "git"
	default:
		return "registry"
	}
}

// Auditable reports whether packages from this source are checked against
// a registry. Built-in and local packages have no upstream to compare with.
func (k SourceKind) Auditable() bool {
	return k != SourceBuiltIn && k != SourceLocal
}

// PackageRecord is an immutable snapshot of one installed package for the
// duration of a single audit run.
type PackageRecord struct {
	Name         string     // Unique within a run
	Version      string     // Installed version
	Dependencies []string   // Declared dependency names
	Source       SourceKind // Where the package was installed from
	Direct       bool       // Explicitly required by the project (depth 0)
	RepoURL      string     // Remote URL, set for git packages only
}

// UpdateStatus is the per-package conclusion of an audit run.
type UpdateStatus int

const (
	StatusUpToDate UpdateStatus = iota
	StatusUpdateAvailable
	StatusNotInRegistry
	StatusLookupFailed
	StatusIgnored
)

func (s UpdateStatus) String() string {
	switch s {
	case StatusUpToDate:
		return "up-to-date"
	case StatusUpdateAvailable:
		return "update-available"
	case StatusNotInRegistry:
		return "not-in-registry"
	case StatusLookupFailed:
		return "lookup-failed"
	case StatusIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// UpdateResult is the outcome of auditing a single package.
type UpdateResult struct {
	Name             string
	InstalledVersion string
	LatestVersion    string   // Set for StatusUpdateAvailable only
	Direct           bool     // Copied from the package record
	Parents          []string // Sorted roots that transitively require the package
	Status           UpdateStatus
	Reason           string // Set for StatusLookupFailed only
}

// Report aggregates the results of one audit run.
type Report struct {
	Total   int // Installed packages listed
	Audited int // Packages that were looked up

	UpdateCount        int
	UpToDateCount      int
	NotInRegistryCount int
	FailedCount        int
	IgnoredCount       int

	Results []UpdateResult
}

// Add appends a result and updates the per-status counters.
func (r *Report) Add(res UpdateResult) {
	switch res.Status {
	case StatusUpdateAvailable:
		r.UpdateCount++
	case StatusUpToDate:
		r.UpToDateCount++
	case StatusNotInRegistry:
		r.NotInRegistryCount++
	case StatusLookupFailed:
		r.FailedCount++
	case StatusIgnored:
		r.IgnoredCount++
	}
	r.Results = append(r.Results, res)
}

// Sort orders results by package name. Lookups complete in arbitrary order;
// sorting makes repeated runs over identical inputs emit identical reports.
func (r *Report) Sort() {
	sort.Slice(r.Results, func(i, j int) bool {
		return r.Results[i].Name < r.Results[j].Name
	})
}
