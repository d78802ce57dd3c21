package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/depaudit/config"
	"github.com/rios0rios0/depaudit/domain"
)

// GitFactory creates a searcher bound to one git repository URL.
type GitFactory func(repoURL string) domain.RegistrySearcher

// Resolver implements domain.SearcherResolver over the configured registries:
// git packages get a searcher bound to their repository URL, everything else
// is matched against scoped registries by package-name prefix, falling back
// to the default (scopeless) registry.
type Resolver struct {
	defaultSearcher domain.RegistrySearcher
	scoped          []scopedSearcher
	gitFactory      GitFactory
}

type scopedSearcher struct {
	scope    string
	searcher domain.RegistrySearcher
}

var _ domain.SearcherResolver = (*Resolver)(nil)

// NewResolver builds searchers for every configured registry.
func NewResolver(cfg *config.Config, reg *Registry, gitFactory GitFactory) (*Resolver, error) {
	resolver := &Resolver{gitFactory: gitFactory}

	for i, regCfg := range cfg.Registries {
		searcher, err := reg.Get(regCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build searcher for registries[%d]: %w", i, err)
		}
		if len(regCfg.Scopes) == 0 {
			resolver.defaultSearcher = searcher
			continue
		}
		for _, scope := range regCfg.Scopes {
			resolver.scoped = append(resolver.scoped, scopedSearcher{
				scope:    scope,
				searcher: searcher,
			})
		}
	}

	// Longest scope first so the most specific registry wins.
	sort.Slice(resolver.scoped, func(i, j int) bool {
		return len(resolver.scoped[i].scope) > len(resolver.scoped[j].scope)
	})

	return resolver, nil
}

// Resolve picks the searcher responsible for one package record.
func (r *Resolver) Resolve(record domain.PackageRecord) (domain.RegistrySearcher, error) {
	if record.Source == domain.SourceGit {
		if record.RepoURL == "" {
			return nil, fmt.Errorf("git package %q has no repository URL", record.Name)
		}
		return r.gitFactory(record.RepoURL), nil
	}

	for _, entry := range r.scoped {
		if matchesScope(record.Name, entry.scope) {
			return entry.searcher, nil
		}
	}

	if r.defaultSearcher == nil {
		return nil, errors.New("no registry configured for unscoped packages")
	}
	return r.defaultSearcher, nil
}

// matchesScope reports whether the package name falls under a scope prefix.
// Matching happens on name segments: scope "com.acme" covers "com.acme.rig"
// but not "com.acmeco.rig".
func matchesScope(name, scope string) bool {
	return name == scope || strings.HasPrefix(name, scope+".")
}
