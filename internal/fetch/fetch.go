// Package fetch is the network capability used to pull content from remote
// repositories.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"mclauncher/internal/models"
)

// Fetcher opens a byte stream for a URL. size is -1 when unknown.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, size int64, err error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (io.ReadCloser, int64, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	return f(ctx, url)
}

type Config struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	MaxIdleConns       int
}

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ Fetcher = (*HTTPFetcher)(nil)

/**
 * Create an HTTP fetcher
 * @param {Config} cfg - Timeout applies to connection and response headers,
 *   not to the body, so large artifacts are not cut off
 * @returns {*HTTPFetcher} Fetcher with its own transport
 */
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 16
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: cfg.Timeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       90 * time.Second,
		// gzip is negotiated and decoded explicitly in Fetch
		DisableCompression: true,
	}
	if cfg.InsecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &HTTPFetcher{
		client:    &http.Client{Transport: tr},
		userAgent: cfg.UserAgent,
	}
}

/**
 * GET a URL as a stream
 * @returns {io.ReadCloser} Response body, gzip-decoded when the server compressed it
 * @returns {int64} Content length of the decoded stream, -1 when unknown
 * @returns {error} ErrNotFound for 404/410, ErrNetworkFailure for transport errors and other statuses
 */
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("%w: Fetch('%s'): %v", models.ErrNetworkFailure, urlStr, err)
	}
	req.Header.Set("Accept-Encoding", "gzip")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	rsp, err := f.client.Do(req)
	if err != nil {
		return nil, -1, fmt.Errorf("%w: Fetch('%s'): %v", models.ErrNetworkFailure, urlStr, err)
	}
	if rsp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(rsp.Body, 512))
		rsp.Body.Close()
		kind := models.ErrNetworkFailure
		if rsp.StatusCode == http.StatusNotFound || rsp.StatusCode == http.StatusGone {
			kind = models.ErrNotFound
		}
		return nil, -1, fmt.Errorf("%w: Fetch('%s') code: %d, error: %s",
			kind, urlStr, rsp.StatusCode, strings.TrimSpace(string(body)))
	}
	if strings.EqualFold(rsp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(rsp.Body)
		if err != nil {
			rsp.Body.Close()
			return nil, -1, fmt.Errorf("%w: Fetch('%s') gzip: %v", models.ErrNetworkFailure, urlStr, err)
		}
		return &gzipBody{Reader: zr, raw: rsp.Body}, -1, nil
	}
	return rsp.Body, rsp.ContentLength, nil
}

type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.raw.Close()
}

// GetBytes fetches a whole (small) document such as a descriptor or an index.
func GetBytes(ctx context.Context, f Fetcher, urlStr string) ([]byte, error) {
	body, _, err := f.Fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBytes('%s'): %v", models.ErrNetworkFailure, urlStr, err)
	}
	return data, nil
}
