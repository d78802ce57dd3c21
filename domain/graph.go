package domain

import "sort"

// ReverseDependencyIndex maps a package name to the set of direct (root)
// packages that transitively require it. Built once per audit run and
// read-only afterward.
type ReverseDependencyIndex struct {
	parents map[string]map[string]struct{}
}

// Parents returns the sorted root names that require the given package.
// Packages not reachable from any root yield an empty slice.
func (idx *ReverseDependencyIndex) Parents(name string) []string {
	set, ok := idx.parents[name]
	if !ok {
		return nil
	}
	roots := make([]string, 0, len(set))
	for root := range set {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

func (idx *ReverseDependencyIndex) add(dep, root string) {
	set, ok := idx.parents[dep]
	if !ok {
		set = make(map[string]struct{})
		idx.parents[dep] = set
	}
	set[root] = struct{}{}
}

// BuildReverseIndex walks the declared-dependency graph from every root
// (direct dependency) and records, for each package reached, which roots
// require it. Each root's walk carries its own visited set, so cycles in
// the declared graph terminate and never add duplicate parent entries.
// Declared dependencies that are not installed are skipped: the installed
// list is authoritative. Pure function, no I/O.
func BuildReverseIndex(records []PackageRecord) *ReverseDependencyIndex {
	byName := make(map[string]PackageRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	idx := &ReverseDependencyIndex{parents: make(map[string]map[string]struct{})}
	for _, r := range records {
		if !r.Direct {
			continue
		}
		// Pre-visiting the root keeps cycles from marking it as its own parent.
		visited := map[string]struct{}{r.Name: {}}
		walkDependencies(r, r.Name, byName, visited, idx)
	}
	return idx
}

func walkDependencies(
	current PackageRecord,
	root string,
	byName map[string]PackageRecord,
	visited map[string]struct{},
	idx *ReverseDependencyIndex,
) {
	for _, dep := range current.Dependencies {
		if _, seen := visited[dep]; seen {
			continue
		}
		next, installed := byName[dep]
		if !installed {
			continue
		}
		visited[dep] = struct{}{}
		idx.add(dep, root)
		walkDependencies(next, root, byName, visited, idx)
	}
}
