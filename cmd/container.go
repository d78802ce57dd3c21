package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depaudit/application"
	"github.com/rios0rios0/depaudit/config"
	"github.com/rios0rios0/depaudit/domain"
	"github.com/rios0rios0/depaudit/infrastructure/lister"
	"github.com/rios0rios0/depaudit/infrastructure/registry"
	gitSearcher "github.com/rios0rios0/depaudit/infrastructure/registry/git"
	npmSearcher "github.com/rios0rios0/depaudit/infrastructure/registry/npm"
)

// injectAuditService wires the audit service via DIG: config and policy go
// in, fully assembled service comes out.
func injectAuditService(cfg *config.Config, policy *config.Policy) (*application.AuditService, error) {
	container := dig.New()

	if err := registerProviders(container, cfg, policy); err != nil {
		return nil, err
	}

	var svc *application.AuditService
	if err := container.Invoke(func(s *application.AuditService) {
		svc = s
	}); err != nil {
		return nil, err
	}
	return svc, nil
}

// registerProviders registers all layers bottom-up:
// infrastructure -> domain interfaces -> application.
func registerProviders(container *dig.Container, cfg *config.Config, policy *config.Policy) error {
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return err
	}
	if err := container.Provide(func() *config.Policy { return policy }); err != nil {
		return err
	}

	if err := container.Provide(buildSearcherRegistry); err != nil {
		return err
	}
	if err := container.Provide(buildResolver); err != nil {
		return err
	}
	if err := container.Provide(func(c *config.Config) *lister.Lockfile {
		return lister.NewLockfile(c.Lockfile)
	}); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *lister.Lockfile) domain.PackageLister {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *registry.Resolver) domain.SearcherResolver {
		return impl
	}); err != nil {
		return err
	}

	if err := container.Provide(application.NewUpdateChecker); err != nil {
		return err
	}
	return container.Provide(application.NewAuditService)
}

func buildSearcherRegistry() *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register("npm", func(regCfg config.RegistryConfig) (domain.RegistrySearcher, error) {
		return npmSearcher.New(regCfg.URL, regCfg.Token), nil
	})
	return reg
}

func buildResolver(cfg *config.Config, reg *registry.Registry) (*registry.Resolver, error) {
	return registry.NewResolver(cfg, reg, func(repoURL string) domain.RegistrySearcher {
		return gitSearcher.New(repoURL)
	})
}
