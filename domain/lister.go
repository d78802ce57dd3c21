package domain

import "context"

// PackageLister supplies the installed-package snapshot for one audit run.
// A listing failure is fatal: without the package list no report is possible.
type PackageLister interface {
	// List returns every installed package with its declared dependencies.
	List(ctx context.Context) ([]PackageRecord, error)
}
