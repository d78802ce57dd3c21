package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/depaudit/domain"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageRecordBuilder helps create test package records with a fluent interface.
type PackageRecordBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      string
	dependencies []string
	source       domain.SourceKind
	direct       bool
	repoURL      string
}

// NewPackageRecordBuilder creates a new builder with sensible defaults.
func NewPackageRecordBuilder() *PackageRecordBuilder {
	return &PackageRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "com.acme.test-package",
		version:     "1.0.0",
		source:      domain.SourceRegistry,
	}
}

// WithName sets the package name.
func (b *PackageRecordBuilder) WithName(name string) *PackageRecordBuilder {
	b.name = name
	return b
}

// WithVersion sets the installed version.
func (b *PackageRecordBuilder) WithVersion(version string) *PackageRecordBuilder {
	b.version = version
	return b
}

// WithDependencies sets the declared dependency names.
func (b *PackageRecordBuilder) WithDependencies(deps ...string) *PackageRecordBuilder {
	b.dependencies = deps
	return b
}

// WithSource sets the source kind.
func (b *PackageRecordBuilder) WithSource(source domain.SourceKind) *PackageRecordBuilder {
	b.source = source
	return b
}

// AsDirect marks the package as a direct dependency.
func (b *PackageRecordBuilder) AsDirect() *PackageRecordBuilder {
	b.direct = true
	return b
}

// WithRepoURL sets the git repository URL.
func (b *PackageRecordBuilder) WithRepoURL(url string) *PackageRecordBuilder {
	b.repoURL = url
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *PackageRecordBuilder) Build() interface{} {
	return b.BuildPackageRecord()
}

// BuildPackageRecord creates the record with a concrete return type.
func (b *PackageRecordBuilder) BuildPackageRecord() domain.PackageRecord {
	return domain.PackageRecord{
		Name:         b.name,
		Version:      b.version,
		Dependencies: b.dependencies,
		Source:       b.source,
		Direct:       b.direct,
		RepoURL:      b.repoURL,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "com.acme.test-package"
	b.version = "1.0.0"
	b.dependencies = nil
	b.source = domain.SourceRegistry
	b.direct = false
	b.repoURL = ""
	return b
}

// Clone creates a deep copy of the PackageRecordBuilder.
func (b *PackageRecordBuilder) Clone() testkit.Builder {
	return &PackageRecordBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		dependencies: append([]string(nil), b.dependencies...),
		source:       b.source,
		direct:       b.direct,
		repoURL:      b.repoURL,
	}
}
