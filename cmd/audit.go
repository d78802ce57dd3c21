package cmd

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depaudit/application"
	"github.com/rios0rios0/depaudit/config"
	"github.com/rios0rios0/depaudit/infrastructure/report"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	lockfileOverride string
	directOnly       bool
	showUpToDate     bool
	outputFormat     string
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit installed packages for available updates",
	Long: `Read the project's packages-lock.json, build the reverse-dependency
index, query each package's registry for its newest version, and print
one line per finding.

Lookup failures are reported inline and never fail the run; only a
missing or unreadable lockfile does.`,
	RunE: runAudit,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	auditCmd.Flags().StringVar(
		&lockfileOverride, "lockfile", "",
		"Path to packages-lock.json (overrides config)",
	)
	auditCmd.Flags().BoolVar(
		&directOnly, "direct-only", false,
		"Only check direct dependencies",
	)
	auditCmd.Flags().BoolVar(
		&showUpToDate, "show-uptodate", false,
		"Include up-to-date packages in the report",
	)
	auditCmd.Flags().StringVar(
		&outputFormat, "output", "text",
		"Output format: text, json, or markdown",
	)
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if noColor {
		report.NoColor()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if lockfileOverride != "" {
		cfg.Lockfile = lockfileOverride
	}

	policy, err := loadPolicy(cfg)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	svc, err := injectAuditService(cfg, policy)
	if err != nil {
		return fmt.Errorf("failed to wire audit service: %w", err)
	}

	logger.Info("Starting audit run...")

	rep, runErr := svc.Run(ctx, application.Options{
		DirectOnly: directOnly || !policy.IncludeTransitive,
		Verbose:    verbose,
	})
	if runErr != nil {
		return runErr
	}

	emitter := report.NewEmitter(os.Stdout, report.Options{
		Format:       format,
		ShowUpToDate: showUpToDate || policy.ShowUpToDate,
	})
	return emitter.Emit(rep)
}

// loadConfig resolves the configuration: an explicit --config path, then
// auto-detection, then built-in defaults. Running without any config file
// is legal and audits against the public UPM registry.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debug("No config file found, using defaults")
			return config.Default(), nil
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadPolicy resolves the audit policy: the path named in the config, then
// the conventional depaudit.hcl in the working directory, then defaults.
func loadPolicy(cfg *config.Config) (*config.Policy, error) {
	path := cfg.Policy
	if path == "" {
		if _, err := os.Stat(config.DefaultPolicyFile); err != nil {
			return config.DefaultPolicy(), nil
		}
		path = config.DefaultPolicyFile
	}

	logger.Infof("Using policy file: %s", path)

	policy, err := config.LoadPolicy(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	return policy, nil
}
