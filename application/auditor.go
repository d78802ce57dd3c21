package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depaudit/config"
	"github.com/rios0rios0/depaudit/domain"
)

// AuditService orchestrates the full audit flow:
// list installed packages -> build reverse-dependency index -> concurrent
// registry lookups -> aggregated report.
type AuditService struct {
	lister  domain.PackageLister
	checker *UpdateChecker
	policy  *config.Policy
}

// NewAuditService creates a new service with the given collaborators.
func NewAuditService(
	lister domain.PackageLister,
	checker *UpdateChecker,
	policy *config.Policy,
) *AuditService {
	return &AuditService{
		lister:  lister,
		checker: checker,
		policy:  policy,
	}
}

// Options holds runtime options for a single audit run.
type Options struct {
	DirectOnly bool // Restrict lookups to direct dependencies (CLI override)
	Verbose    bool
}

// Run executes one audit. Only a listing failure is returned as an error;
// every per-package failure is isolated into its result. All state is
// created here and discarded when the report is returned.
func (s *AuditService) Run(ctx context.Context, opts Options) (*domain.Report, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	records, err := s.lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}

	logger.Infof("Listed %d installed packages", len(records))

	index := domain.BuildReverseIndex(records)
	report := &domain.Report{Total: len(records)}

	var tasks []LookupTask
	for _, record := range records {
		if !record.Source.Auditable() {
			logger.Debugf("Skipping %q (%s package)", record.Name, record.Source)
			continue
		}
		if opts.DirectOnly && !record.Direct {
			continue
		}
		if s.policy.Ignores(record.Name) {
			report.Add(domain.UpdateResult{
				Name:             record.Name,
				InstalledVersion: record.Version,
				Direct:           record.Direct,
				Parents:          index.Parents(record.Name),
				Status:           domain.StatusIgnored,
			})
			continue
		}
		tasks = append(tasks, LookupTask{
			Record:  record,
			Parents: index.Parents(record.Name),
		})
	}

	report.Audited = len(tasks)
	logger.Infof("Checking %d packages for updates...", len(tasks))

	for _, result := range s.checker.Check(ctx, tasks) {
		report.Add(result)
	}
	report.Sort()

	logger.Infof(
		"Audit complete: %d checked, %d updates, %d up to date, %d not in registry, %d failed, %d ignored",
		report.Audited, report.UpdateCount, report.UpToDateCount,
		report.NotInRegistryCount, report.FailedCount, report.IgnoredCount,
	)
	return report, nil
}
