package documents

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/netx"
)

// HTTPFetcher downloads images over HTTP. Relative URLs resolve against the
// service base URL, and only requests to the service host carry the
// reviewer's authorization.
type HTTPFetcher struct {
	base          *url.URL
	client        *http.Client
	authorization func() string
}

func NewHTTPFetcher(base *url.URL, timeout time.Duration, authorization func() string) *HTTPFetcher {
	return &HTTPFetcher{
		base:          base,
		client:        &http.Client{Timeout: timeout},
		authorization: authorization,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse document url: %w", err)
	}
	u := f.base.ResolveReference(ref)

	var header http.Header
	if f.authorization != nil && u.Host == f.base.Host {
		if v := f.authorization(); v != "" {
			header = http.Header{"Authorization": []string{v}}
		}
	}

	data, ct, err := netx.Download(ctx, f.client, u.String(), header)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &Document{Name: path.Base(u.Path), ContentType: ct, Data: data}, nil
}
