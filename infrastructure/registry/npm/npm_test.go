package npm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depaudit/infrastructure/registry/npm"
)

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("should return published versions newest first", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/com.acme.rig", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"name": "com.acme.rig",
				"dist-tags": {"latest": "1.10.0"},
				"versions": {
					"1.2.0": {},
					"1.10.0": {},
					"0.9.0": {}
				}
			}`))
		}))
		defer server.Close()
		searcher := npm.New(server.URL, "")

		// when
		versions, err := searcher.Search(context.Background(), "com.acme.rig")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"1.10.0", "1.2.0", "0.9.0"}, versions)
	})

	t.Run("should treat a 404 as not in registry", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()
		searcher := npm.New(server.URL, "")

		// when
		versions, err := searcher.Search(context.Background(), "com.acme.ghost")

		// then
		require.NoError(t, err)
		assert.Empty(t, versions)
	})

	t.Run("should fail on unexpected status codes", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		searcher := npm.New(server.URL, "")

		// when
		_, err := searcher.Search(context.Background(), "com.acme.rig")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})

	t.Run("should send the configured token as a bearer header", func(t *testing.T) {
		t.Parallel()

		// given
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"versions": {}}`))
		}))
		defer server.Close()
		searcher := npm.New(server.URL, "secret")

		// when
		_, err := searcher.Search(context.Background(), "com.acme.rig")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("should fail on malformed registry responses", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"versions": [`))
		}))
		defer server.Close()
		searcher := npm.New(server.URL, "")

		// when
		_, err := searcher.Search(context.Background(), "com.acme.rig")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse registry response")
	})

	t.Run("should fail when the registry is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close() // closed on purpose
		searcher := npm.New(server.URL, "")

		// when
		_, err := searcher.Search(context.Background(), "com.acme.rig")

		// then
		require.Error(t, err)
	})
}
