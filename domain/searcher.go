package domain

import "context"

// RegistrySearcher queries a package registry for the candidate versions of
// a named package.
type RegistrySearcher interface {
	// Name returns the searcher identifier (e.g. "npm", "git").
	Name() string

	// Search returns all known versions of the package, newest first.
	// Zero results with a nil error means the package is not in the registry.
	// An error marks the lookup as failed; it never aborts the batch.
	Search(ctx context.Context, pkg string) ([]string, error)
}

// SearcherResolver picks the registry searcher responsible for a package.
// Resolution happens per record because git packages need a searcher bound
// to their repository URL, and scoped registries are matched by name prefix.
type SearcherResolver interface {
	Resolve(record PackageRecord) (RegistrySearcher, error)
}
