package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ErrAllProxiesExhausted is returned when every configured proxy endpoint
// failed for a target URL.
var ErrAllProxiesExhausted = errors.New("all proxies exhausted")

const maxResponseBytes = 4 << 20 // scrape pages, not downloads

// Fetcher retrieves a target URL through an ordered list of CORS passthrough
// proxies. Each proxy gets exactly one attempt; the first 2xx body wins.
type Fetcher struct {
	endpoints []string
	httpc     *http.Client
	userAgent string
}

// New builds a fetcher over the given proxy endpoint prefixes. A nil client
// gets a default with the per-attempt timeout applied.
func New(endpoints []string, attemptTimeout time.Duration, userAgent string, httpc *http.Client) *Fetcher {
	if attemptTimeout <= 0 {
		attemptTimeout = 8 * time.Second
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: attemptTimeout}
	}
	return &Fetcher{
		endpoints: append([]string(nil), endpoints...),
		httpc:     httpc,
		userAgent: userAgent,
	}
}

// Endpoints returns the configured proxy list in attempt order.
func (f *Fetcher) Endpoints() []string {
	return append([]string(nil), f.endpoints...)
}

// Fetch issues GET proxy+urlencode(target) against each proxy in order and
// returns the first successful body. Order is fixed; there is no retry within
// a single proxy. When every proxy fails the per-proxy errors are joined
// under ErrAllProxiesExhausted.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	if len(f.endpoints) == 0 {
		return nil, errors.New("no proxy endpoints configured")
	}

	encoded := url.QueryEscape(targetURL)
	var attemptErrs []error

	for _, endpoint := range f.endpoints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := f.attempt(ctx, endpoint+encoded)
		if err != nil {
			log.Printf("[proxy] endpoint failed endpoint=%s err=%v; trying next", endpoint, err)
			attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", endpoint, err))
			continue
		}
		return body, nil
	}

	return nil, errors.Join(ErrAllProxiesExhausted, errors.Join(attemptErrs...))
}

func (f *Fetcher) attempt(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
