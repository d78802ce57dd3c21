package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultLockfile is the conventional location of the installed-package
// snapshot in a UPM project.
const DefaultLockfile = "Packages/packages-lock.json"

// Config is the top-level configuration for depaudit.
type Config struct {
	Lockfile   string           `yaml:"lockfile"`   // Path to packages-lock.json
	Registries []RegistryConfig `yaml:"registries"` // Scoped registries, checked in scope order
	Policy     string           `yaml:"policy"`     // Optional path to an HCL policy file
}

// RegistryConfig describes a single package registry instance.
type RegistryConfig struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`   // "npm" (UPM registries speak the npm protocol)
	URL    string   `yaml:"url"`    // Base URL, e.g. https://packages.unity.com
	Token  string   `yaml:"token"`  // Inline, ${ENV_VAR}, or file path; optional
	Scopes []string `yaml:"scopes"` // Package-name prefixes; empty = default registry
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no config file is present:
// the conventional lockfile path and the public UPM registry.
func Default() *Config {
	return &Config{
		Lockfile: DefaultLockfile,
		Registries: []RegistryConfig{
			{Name: "unity", Type: "npm", URL: "https://packages.unity.com"},
		},
	}
}

// Load reads and parses a configuration file, expanding environment variables
// and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if cfg.Lockfile == "" {
		cfg.Lockfile = DefaultLockfile
	}
	if len(cfg.Registries) == 0 {
		cfg.Registries = Default().Registries
	}

	// Resolve tokens (env vars and file paths)
	for i := range cfg.Registries {
		cfg.Registries[i].Token = resolveToken(cfg.Registries[i].Token)
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depaudit.yaml",
		".depaudit.yml",
		"depaudit.yaml",
		"depaudit.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	defaults := 0
	seen := make(map[string]bool)

	for i, r := range cfg.Registries {
		if r.Type == "" {
			return fmt.Errorf("registries[%d].type is required", i)
		}
		if r.URL == "" {
			return fmt.Errorf("registries[%d].url is required", i)
		}
		if r.Name != "" {
			if seen[r.Name] {
				return fmt.Errorf("registries[%d].name %q is duplicated", i, r.Name)
			}
			seen[r.Name] = true
		}
		if len(r.Scopes) == 0 {
			defaults++
		}
	}

	if defaults > 1 {
		return errors.New("at most one registry may have no scopes (the default registry)")
	}

	return nil
}
