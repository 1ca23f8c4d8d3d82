// Package documents retrieves the identity images referenced by KYC records.
// Image URLs may be absolute http(s) URLs, paths relative to the service base
// URL, or s3://bucket/key objects.
package documents

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var ErrUnsupportedScheme = errors.New("unsupported document url scheme")

// Document is a downloaded image.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Fetcher retrieves the document at rawURL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Document, error)
}

// Router dispatches on the URL scheme. A nil S3 fetcher makes s3:// URLs
// unsupported.
type Router struct {
	http Fetcher
	s3   Fetcher
}

func NewRouter(httpFetcher, s3Fetcher Fetcher) *Router {
	return &Router{http: httpFetcher, s3: s3Fetcher}
}

func (r *Router) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse document url: %w", err)
	}

	switch u.Scheme {
	case "", "http", "https":
		return r.http.Fetch(ctx, rawURL)
	case "s3":
		if r.s3 == nil {
			return nil, fmt.Errorf("%w: s3 is not configured", ErrUnsupportedScheme)
		}
		return r.s3.Fetch(ctx, rawURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}
