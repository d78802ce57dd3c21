package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/depaudit/infrastructure/registry"
)

const searcherName = "git"

// Searcher treats the tags of a git repository as candidate versions.
// Packages installed straight from a git URL have no registry to ask, but
// their tags serve the same purpose. Listing happens against the remote
// (ls-remote), no clone required.
type Searcher struct {
	repoURL string
}

// New creates a searcher bound to one repository URL.
func New(repoURL string) *Searcher {
	return &Searcher{repoURL: repoURL}
}

func (s *Searcher) Name() string { return searcherName }

// Search lists the remote's version-shaped tags, newest first. The package
// name is ignored: the searcher is already bound to the repository.
func (s *Searcher) Search(ctx context.Context, _ string) ([]string, error) {
	remote := gogit.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{s.repoURL},
	})

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %q: %w", s.repoURL, err)
	}

	versions := versionTags(refs)
	logger.Debugf("Found %d version tags at %q", len(versions), s.repoURL)
	registry.SortVersionsDescending(versions)
	return versions, nil
}

// versionTags extracts tag names that look like versions. Tags like
// "release-candidate" or "nightly" are not comparable and get dropped.
func versionTags(refs []*plumbing.Reference) []string {
	var versions []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		tag := ref.Name().Short()
		if semver.IsValid(registry.NormalizeVersion(tag)) {
			versions = append(versions, tag)
		}
	}
	return versions
}
