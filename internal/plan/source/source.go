package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"planboard-service/internal/fileio"
	"planboard-service/internal/plan/cache"
)

// Provider is the external tabular data collaborator: anything that can
// produce string-keyed rows plus ordered headers.
type Provider interface {
	Fetch(ctx context.Context) (rows []map[string]string, headers []string, err error)
}

// URLProvider fetches a published spreadsheet export (CSV/XLSX) over HTTP.
type URLProvider struct {
	Client    *http.Client
	URL       string
	HeaderRow int // 1-based
}

func NewURLProvider(rawURL string, headerRow int) *URLProvider {
	if headerRow < 1 {
		headerRow = 1
	}
	return &URLProvider{
		Client:    &http.Client{Timeout: 30 * time.Second},
		URL:       rawURL,
		HeaderRow: headerRow,
	}
}

func (p *URLProvider) Fetch(ctx context.Context) ([]map[string]string, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("source fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("source fetch: status %d", resp.StatusCode)
	}

	name := "export.csv"
	if u, err := url.Parse(p.URL); err == nil {
		if base := path.Base(u.Path); path.Ext(base) != "" {
			name = base
		}
	}
	rows, headers, err := fileio.ReadAnyMaps(resp.Body, name, p.HeaderRow)
	if err != nil {
		return nil, nil, fmt.Errorf("source parse: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("source returned no rows")
	}
	return rows, headers, nil
}

// CachedSource wraps a provider with the snapshot cache. A snapshot younger
// than the cache TTL is served without refetching; an expired or
// force-cleared entry triggers a fresh synchronous fetch. A fetch failure
// propagates — stale data is never silently substituted past the TTL.
type CachedSource struct {
	Provider Provider
	Cache    *cache.Cache
	Key      string
}

func NewCachedSource(p Provider, c *cache.Cache, key string) *CachedSource {
	return &CachedSource{Provider: p, Cache: c, Key: key}
}

func (s *CachedSource) Load(ctx context.Context, force bool) ([]map[string]string, []string, error) {
	if force {
		s.Cache.Expire(s.Key)
	}
	if snap, ok := s.Cache.Get(s.Key); ok {
		return snap.Rows, snap.Headers, nil
	}
	rows, headers, err := s.Provider.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.Cache.Put(s.Key, rows, headers)
	return rows, headers, nil
}
