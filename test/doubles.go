// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/depaudit/domain"
)

// ---------------------------------------------------------------------------
// StubLister
// ---------------------------------------------------------------------------

// StubLister implements domain.PackageLister with canned records.
type StubLister struct {
	Records []domain.PackageRecord
	Err     error
}

var _ domain.PackageLister = (*StubLister)(nil)

func (l *StubLister) List(_ context.Context) ([]domain.PackageRecord, error) {
	return l.Records, l.Err
}

// ---------------------------------------------------------------------------
// SpySearcher
// ---------------------------------------------------------------------------

// SpySearcher implements domain.RegistrySearcher as a configurable spy.
// Configure Versions/Errs per package name, then inspect SearchedPackages.
// The checker calls Search from one goroutine per lookup, so the spy state
// is guarded by a mutex.
type SpySearcher struct {
	SearcherName string
	Versions     map[string][]string // package -> candidate versions, newest first
	Errs         map[string]error    // package -> lookup error

	mu sync.Mutex
	// spy: packages that were looked up
	SearchedPackages []string
}

var _ domain.RegistrySearcher = (*SpySearcher)(nil)

func (s *SpySearcher) Name() string {
	if s.SearcherName == "" {
		return "spy"
	}
	return s.SearcherName
}

func (s *SpySearcher) Search(_ context.Context, pkg string) ([]string, error) {
	s.mu.Lock()
	s.SearchedPackages = append(s.SearchedPackages, pkg)
	s.mu.Unlock()

	if err, ok := s.Errs[pkg]; ok {
		return nil, err
	}
	return s.Versions[pkg], nil
}

// Searched returns a snapshot of the packages looked up so far.
func (s *SpySearcher) Searched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.SearchedPackages...)
}

// ---------------------------------------------------------------------------
// StubResolver
// ---------------------------------------------------------------------------

// StubResolver implements domain.SearcherResolver, returning the same
// searcher (or error) for every package record.
type StubResolver struct {
	Searcher domain.RegistrySearcher
	Err      error
}

var _ domain.SearcherResolver = (*StubResolver)(nil)

func (r *StubResolver) Resolve(_ domain.PackageRecord) (domain.RegistrySearcher, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Searcher, nil
}
