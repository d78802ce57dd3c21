package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depaudit/infrastructure/registry"
)

const (
	searcherName   = "npm"
	requestTimeout = 15 * time.Second
)

// Searcher queries an npm-protocol registry for package versions. UPM
// registries (packages.unity.com and scoped registries alike) speak this
// protocol: GET {base}/{package} returns the packument with every published
// version.
type Searcher struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a searcher for the given registry base URL. The token is
// optional; when set it is sent as a bearer token.
func New(baseURL, token string) *Searcher {
	return &Searcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (s *Searcher) Name() string { return searcherName }

// packument is the subset of the npm registry response we care about.
type packument struct {
	Versions map[string]json.RawMessage `json:"versions"`
}

// Search returns every published version of the package, newest first.
// A 404 means the package is not in this registry and yields zero results
// without an error; any other non-2xx status is a lookup failure.
func (s *Searcher) Search(ctx context.Context, pkg string) ([]string, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(pkg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", pkg, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query registry for %q: %w", pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Debugf("Package %q not found at %s", pkg, s.baseURL)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"unexpected status %d from registry for %q", resp.StatusCode, pkg,
		)
	}

	var doc packument
	if decodeErr := json.NewDecoder(resp.Body).Decode(&doc); decodeErr != nil {
		return nil, fmt.Errorf("failed to parse registry response for %q: %w", pkg, decodeErr)
	}

	versions := make([]string, 0, len(doc.Versions))
	for version := range doc.Versions {
		versions = append(versions, version)
	}
	registry.SortVersionsDescending(versions)
	return versions, nil
}
