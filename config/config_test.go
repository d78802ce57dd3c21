package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depaudit/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depaudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("should parse a full configuration file", func(t *testing.T) {
		// given
		path := writeConfig(t, `
lockfile: Packages/packages-lock.json
registries:
  - name: unity
    type: npm
    url: https://packages.unity.com
  - name: internal
    type: npm
    url: https://npm.example.com
    scopes: ["com.acme"]
policy: depaudit.hcl
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Packages/packages-lock.json", cfg.Lockfile)
		require.Len(t, cfg.Registries, 2)
		assert.Equal(t, []string{"com.acme"}, cfg.Registries[1].Scopes)
		assert.Equal(t, "depaudit.hcl", cfg.Policy)
	})

	t.Run("should fill in defaults for missing lockfile and registries", func(t *testing.T) {
		// given
		path := writeConfig(t, `policy: ""`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, config.DefaultLockfile, cfg.Lockfile)
		require.Len(t, cfg.Registries, 1)
		assert.Equal(t, "https://packages.unity.com", cfg.Registries[0].URL)
	})

	t.Run("should expand environment variables in tokens", func(t *testing.T) {
		// given
		t.Setenv("DEPAUDIT_TEST_TOKEN", "secret-token")
		path := writeConfig(t, `
registries:
  - name: internal
    type: npm
    url: https://npm.example.com
    token: ${DEPAUDIT_TEST_TOKEN}
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "secret-token", cfg.Registries[0].Token)
	})

	t.Run("should read the token from a file when the value is a path", func(t *testing.T) {
		// given
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token\n"), 0o600))
		path := writeConfig(t, `
registries:
  - name: internal
    type: npm
    url: https://npm.example.com
    token: `+tokenFile+`
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "file-token", cfg.Registries[0].Token)
	})

	t.Run("should reject a registry without a type", func(t *testing.T) {
		// given
		path := writeConfig(t, `
registries:
  - name: broken
    url: https://npm.example.com
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registries[0].type")
	})

	t.Run("should reject a registry without a url", func(t *testing.T) {
		// given
		path := writeConfig(t, `
registries:
  - name: broken
    type: npm
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registries[0].url")
	})

	t.Run("should reject more than one default registry", func(t *testing.T) {
		// given
		path := writeConfig(t, `
registries:
  - name: first
    type: npm
    url: https://a.example.com
  - name: second
    type: npm
    url: https://b.example.com
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at most one registry")
	})

	t.Run("should reject duplicated registry names", func(t *testing.T) {
		// given
		path := writeConfig(t, `
registries:
  - name: same
    type: npm
    url: https://a.example.com
  - name: same
    type: npm
    url: https://b.example.com
    scopes: ["com.acme"]
`)

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicated")
	})

	t.Run("should fail when the file does not exist", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := config.Load(path)

		// then
		require.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("should point at the public UPM registry", func(t *testing.T) {
		t.Parallel()

		// given / when
		cfg := config.Default()

		// then
		assert.Equal(t, config.DefaultLockfile, cfg.Lockfile)
		require.Len(t, cfg.Registries, 1)
		assert.Equal(t, "npm", cfg.Registries[0].Type)
		assert.Empty(t, cfg.Registries[0].Scopes)
	})
}
