package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDownloadSize caps a single download.
const MaxDownloadSize = 32 << 20

// Download GETs url and returns the body and its Content-Type. header, when
// non-nil, is copied onto the request.
func Download(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	for k, v := range header {
		req.Header[k] = v
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxDownloadSize {
		return nil, "", fmt.Errorf("download exceeds %d bytes", MaxDownloadSize)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
