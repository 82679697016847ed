// Package quote fetches stock quotes from an Alpha Vantage-style upstream
// and proxies them with a naive time-boxed cache: entries are fresh for
// five minutes, and a broken or rate-limited upstream is answered with
// stale cached data when any exists. The cache is process-local only.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Freshness is the window during which a cached payload is served without
// asking upstream again.
const Freshness = 5 * time.Minute

const defaultBaseURL = "https://www.alphavantage.co/query"

// Client fetches quotes with caching.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	now func() time.Time // injected clock for tests

	mu    sync.Mutex
	cache map[string]entry
}

type entry struct {
	payload []byte
	at      time.Time
}

// NewClient creates a quote client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		cache:      make(map[string]entry),
	}
}

// Fetch returns the upstream JSON payload for the function/symbol pair.
// A cache entry younger than Freshness is returned as-is. When upstream
// fails or answers with a rate-limit note, a stale entry is served if one
// exists; otherwise the error propagates.
func (c *Client) Fetch(ctx context.Context, function, symbol string) ([]byte, error) {
	key := function + "-" + symbol

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok && c.now().Sub(cached.at) < Freshness {
		return cached.payload, nil
	}

	payload, err := c.fetchUpstream(ctx, function, symbol)
	if err != nil {
		if ok {
			// stale beats nothing
			return cached.payload, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = entry{payload: payload, at: c.now()}
	c.mu.Unlock()
	return payload, nil
}

func (c *Client) fetchUpstream(ctx context.Context, function, symbol string) ([]byte, error) {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.APIKey)
	addr := c.BaseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote upstream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote upstream: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Alpha Vantage signals rate limiting with a 200 and a "Note" (or
	// "Information") field instead of data.
	var probe map[string]any
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("quote upstream: unparseable payload: %w", err)
	}
	if _, limited := probe["Note"]; limited {
		return nil, fmt.Errorf("quote upstream: rate limited")
	}
	if _, limited := probe["Information"]; limited {
		return nil, fmt.Errorf("quote upstream: rate limited")
	}
	return payload, nil
}

// GlobalQuote fetches the latest price for a symbol. The upstream nests the
// price under awkward numbered keys, so the value is extracted with a
// jsonpath instead of a rigid struct.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (float64, error) {
	payload, err := c.Fetch(ctx, "GLOBAL_QUOTE", symbol)
	if err != nil {
		return 0, err
	}
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return 0, fmt.Errorf("parsing quote for %q: %w", symbol, err)
	}
	path := `$["Global Quote"]["05. price"]`
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("parsing quote for %q: %q %w", symbol, path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("parsing quote for %q: price is not a string: %v", symbol, jval)
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing quote for %q: %w", symbol, err)
	}
	return price, nil
}
