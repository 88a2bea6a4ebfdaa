// Package fetch is the HTTP boundary of the scraper. It turns URLs into
// page text and absorbs every transport failure into an empty result; the
// orchestrator reads an empty page as end-of-pagination.
package fetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"upwork-scraper/internal/scrape/util"
)

const DefaultTimeout = 30 * time.Second

// DefaultUserAgent mimics a desktop browser; search pages served to unknown
// agents are frequently empty shells.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/124.0 Safari/537.36"

type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Proxy      string // optional proxy URL, credentials resolved by the caller
	PerHostRPS float64
}

type Client struct {
	hc      *http.Client
	ua      string
	limiter *util.HostLimiter
}

func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		hc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		ua:      ua,
		limiter: util.NewHostLimiter(opts.PerHostRPS, 1),
	}, nil
}

// Text fetches a URL and returns the response body, or "" on any failure.
func (c *Client) Text(ctx context.Context, rawURL string) string {
	if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Printf("[fetch] bad request url %q: %v", rawURL, err)
		return ""
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	res, err := c.hc.Do(req)
	if err != nil {
		log.Printf("[fetch] get %s: %v", rawURL, err)
		return ""
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		log.Printf("[fetch] get %s: status %d", rawURL, res.StatusCode)
		return ""
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("[fetch] read %s: %v", rawURL, err)
		return ""
	}
	return string(b)
}
