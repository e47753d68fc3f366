package marketdata

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache is a simple disk cache for HTTP responses. The cache key embeds
// the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

// RoundTrip checks the disk for a cached response first. On a miss it
// performs the real request and stores the response if it succeeded.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	day := time.Now().UTC().Format("2006-01-02")
	key := fmt.Sprintf("financekg-%s-%x", day, sha1.Sum([]byte(req.Method+" "+req.URL.String())))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// DumpResponse inside put drains and restores the body, so resp stays
	// readable. A failed cache write only costs a refetch.
	_ = c.put(key, resp)
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// newDailyCachingClient returns an http.Client whose responses are cached on
// disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport}}
}

// jwget performs an HTTP GET to addr and unmarshals the JSON response body
// into data. Non-200 statuses become errors carrying the host, path and
// status so upstream failures stay distinguishable from resolution misses.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("market data fetch", "host", req.URL.Host, "path", req.URL.Path, "status", resp.Status)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
