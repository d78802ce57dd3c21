package application

import (
	"context"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depaudit/domain"
)

// LookupTask pairs one auditable package with its reverse-dependency
// metadata. Exactly one task exists per auditable package and each task
// resolves to exactly one result.
type LookupTask struct {
	Record  domain.PackageRecord
	Parents []string // Sorted roots that transitively require the package
}

// UpdateChecker issues one registry lookup per task and collects results in
// completion order. Lookups are independent: a slow or failing lookup never
// blocks or aborts the others.
type UpdateChecker struct {
	resolver domain.SearcherResolver
}

// NewUpdateChecker creates a checker that picks searchers via the resolver.
func NewUpdateChecker(resolver domain.SearcherResolver) *UpdateChecker {
	return &UpdateChecker{resolver: resolver}
}

// Check runs every lookup concurrently and returns the results as they
// complete. Completion order is non-deterministic; callers that need stable
// output sort afterward. Cancelling the context stops collection and
// abandons outstanding lookups without waiting for them.
func (c *UpdateChecker) Check(ctx context.Context, tasks []LookupTask) []domain.UpdateResult {
	results := make(chan domain.UpdateResult)

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task LookupTask) {
			defer wg.Done()
			select {
			case results <- c.lookup(ctx, task):
			case <-ctx.Done():
			}
		}(task)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]domain.UpdateResult, 0, len(tasks))
	for {
		select {
		case res, ok := <-results:
			if !ok {
				return collected
			}
			logger.Debugf("Lookup completed for %q: %s", res.Name, res.Status)
			collected = append(collected, res)
		case <-ctx.Done():
			logger.Warnf(
				"Audit cancelled with %d of %d lookups outstanding",
				len(tasks)-len(collected), len(tasks),
			)
			return collected
		}
	}
}

// lookup resolves the searcher for one package and classifies the outcome.
// Every failure is terminal for this run; nothing is retried.
func (c *UpdateChecker) lookup(ctx context.Context, task LookupTask) domain.UpdateResult {
	result := domain.UpdateResult{
		Name:             task.Record.Name,
		InstalledVersion: task.Record.Version,
		Direct:           task.Record.Direct,
		Parents:          task.Parents,
	}

	searcher, err := c.resolver.Resolve(task.Record)
	if err != nil {
		result.Status = domain.StatusLookupFailed
		result.Reason = err.Error()
		return result
	}

	versions, err := searcher.Search(ctx, task.Record.Name)
	if err != nil {
		result.Status = domain.StatusLookupFailed
		result.Reason = err.Error()
		return result
	}

	if len(versions) == 0 {
		result.Status = domain.StatusNotInRegistry
		return result
	}

	latest := versions[0]
	if domain.IsNewer(latest, task.Record.Version) {
		result.Status = domain.StatusUpdateAvailable
		result.LatestVersion = latest
		return result
	}

	result.Status = domain.StatusUpToDate
	return result
}
