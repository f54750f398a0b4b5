package provision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tcbundle-dev/tcbundle/internal/httputil"
)

// Fetcher streams a remote resource into dest. Implementations must
// honor ctx cancellation and return an error on any non-success or
// truncated transfer.
type Fetcher interface {
	Fetch(ctx context.Context, url string, dest io.Writer) error
}

// HTTPFetcher downloads bundles over HTTP using the hardened client.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose overall request timeout
// bounds the full body transfer.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: httputil.NewClient(httputil.ClientOptions{Timeout: timeout}),
	}
}

// Fetch performs a GET request and copies the response body into dest.
// The body is treated as an opaque archive stream. A response with a
// known Content-Length that does not match the copied byte count is
// reported as a truncated transfer.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, dest io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Bundles are already compressed; ask for the raw stream so the
	// Content-Length check below is meaningful.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	n, err := io.Copy(dest, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		return fmt.Errorf("truncated transfer: got %d of %d bytes", n, resp.ContentLength)
	}

	return nil
}
