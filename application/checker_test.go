package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depaudit/application"
	"github.com/rios0rios0/depaudit/domain"
	testdoubles "github.com/rios0rios0/depaudit/test"
)

func recordTask(name, version string) application.LookupTask {
	return application.LookupTask{
		Record: domain.PackageRecord{Name: name, Version: version},
	}
}

func resultsByName(results []domain.UpdateResult) map[string]domain.UpdateResult {
	byName := make(map[string]domain.UpdateResult, len(results))
	for _, res := range results {
		byName[res.Name] = res
	}
	return byName
}

func TestUpdateChecker_Check(t *testing.T) {
	t.Parallel()

	t.Run("should classify results from concurrent lookups", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		searcher := &testdoubles.SpySearcher{
			Versions: map[string][]string{
				"outdated": {"2.0.0", "1.0.0"},
				"current":  {"1.0.0"},
			},
		}
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{Searcher: searcher})
		tasks := []application.LookupTask{
			recordTask("outdated", "1.0.0"),
			recordTask("current", "1.0.0"),
			recordTask("missing", "1.0.0"),
		}

		// when
		results := checker.Check(ctx, tasks)

		// then
		require.Len(t, results, 3)
		byName := resultsByName(results)
		assert.Equal(t, domain.StatusUpdateAvailable, byName["outdated"].Status)
		assert.Equal(t, "2.0.0", byName["outdated"].LatestVersion)
		assert.Equal(t, domain.StatusUpToDate, byName["current"].Status)
		assert.Equal(t, domain.StatusNotInRegistry, byName["missing"].Status)
		assert.ElementsMatch(t, []string{"outdated", "current", "missing"}, searcher.Searched())
	})

	t.Run("should isolate a failed lookup from the rest of the batch", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		searcher := &testdoubles.SpySearcher{
			Versions: map[string][]string{
				"a": {"1.1.0"}, "b": {"1.0.0"}, "c": {"1.0.0"}, "d": {"1.0.0"},
			},
			Errs: map[string]error{
				"e": errors.New("network unreachable"),
			},
		}
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{Searcher: searcher})
		tasks := []application.LookupTask{
			recordTask("a", "1.0.0"),
			recordTask("b", "1.0.0"),
			recordTask("c", "1.0.0"),
			recordTask("d", "1.0.0"),
			recordTask("e", "1.0.0"),
		}

		// when
		results := checker.Check(ctx, tasks)

		// then
		require.Len(t, results, 5)
		byName := resultsByName(results)
		assert.Equal(t, domain.StatusLookupFailed, byName["e"].Status)
		assert.Contains(t, byName["e"].Reason, "network unreachable")
		assert.Equal(t, domain.StatusUpdateAvailable, byName["a"].Status)
		assert.Equal(t, domain.StatusUpToDate, byName["b"].Status)
	})

	t.Run("should mark a package as failed when no searcher resolves", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{
			Err: errors.New("git package has no repository URL"),
		})

		// when
		results := checker.Check(ctx, []application.LookupTask{recordTask("broken", "1.0.0")})

		// then
		require.Len(t, results, 1)
		assert.Equal(t, domain.StatusLookupFailed, results[0].Status)
		assert.Contains(t, results[0].Reason, "no repository URL")
	})

	t.Run("should treat an unparseable latest version as up to date", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		searcher := &testdoubles.SpySearcher{
			Versions: map[string][]string{"weird": {"latest"}},
		}
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{Searcher: searcher})

		// when
		results := checker.Check(ctx, []application.LookupTask{recordTask("weird", "1.0.0")})

		// then
		require.Len(t, results, 1)
		assert.Equal(t, domain.StatusUpToDate, results[0].Status)
	})

	t.Run("should carry graph metadata through to the result", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		searcher := &testdoubles.SpySearcher{
			Versions: map[string][]string{"B": {"1.1.0"}},
		}
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{Searcher: searcher})
		task := application.LookupTask{
			Record:  domain.PackageRecord{Name: "B", Version: "1.0.0"},
			Parents: []string{"A", "C"},
		}

		// when
		results := checker.Check(ctx, []application.LookupTask{task})

		// then
		require.Len(t, results, 1)
		assert.Equal(t, []string{"A", "C"}, results[0].Parents)
		assert.False(t, results[0].Direct)
	})

	t.Run("should return without hanging when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		searcher := &testdoubles.SpySearcher{
			Versions: map[string][]string{"a": {"1.0.0"}},
		}
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{Searcher: searcher})

		// when
		results := checker.Check(ctx, []application.LookupTask{recordTask("a", "1.0.0")})

		// then
		assert.LessOrEqual(t, len(results), 1)
	})

	t.Run("should return an empty result set for no tasks", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		checker := application.NewUpdateChecker(&testdoubles.StubResolver{})

		// when
		results := checker.Check(ctx, nil)

		// then
		assert.Empty(t, results)
	})
}
