// Package scrape drives pagination over marketplace search pages and
// accumulates extracted records up to a configured cap.
package scrape

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"upwork-scraper/internal/domain"
	"upwork-scraper/internal/scrape/upwork"
)

const (
	DefaultMaxItems = 100
	DefaultDelay    = 2 * time.Second
)

// Fetcher is the external fetch collaborator. Failures surface as empty
// text, never as an error.
type Fetcher interface {
	Text(ctx context.Context, url string) string
}

type Scraper struct {
	urlTemplate string
	maxItems    int
	delay       time.Duration
	fetcher     Fetcher
}

func New(urlTemplate string, maxItems int, delay time.Duration, f Fetcher) (*Scraper, error) {
	if strings.TrimSpace(urlTemplate) == "" {
		return nil, errors.New("search url template must not be empty")
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Scraper{
		urlTemplate: urlTemplate,
		maxItems:    maxItems,
		delay:       delay,
		fetcher:     f,
	}, nil
}

// BuildURL substitutes the page number into the search template. Templates
// without a {page} placeholder get a page query parameter spliced in.
func (s *Scraper) BuildURL(page int) string {
	n := strconv.Itoa(page)
	if strings.Contains(s.urlTemplate, "{page}") {
		return strings.ReplaceAll(s.urlTemplate, "{page}", n)
	}
	if strings.Contains(s.urlTemplate, "?") {
		if i := strings.Index(s.urlTemplate, "page="); i >= 0 {
			// naive replace; good enough for the query shapes we feed it
			return s.urlTemplate[:i] + "page=" + n
		}
		return s.urlTemplate + "&page=" + n
	}
	return s.urlTemplate + "?page=" + n
}

// Run walks pages 1..maxPages until the cap is hit or a fetch comes back
// empty. It never fails for scraping reasons: whatever was accumulated is
// returned.
func (s *Scraper) Run(ctx context.Context, maxPages int) []domain.JobRecord {
	if maxPages < 1 {
		maxPages = 1
	}

	var jobs []domain.JobRecord
	for page := 1; page <= maxPages; page++ {
		if len(jobs) >= s.maxItems {
			log.Printf("[scrape] reached max items (%d); stopping", s.maxItems)
			break
		}

		url := s.BuildURL(page)
		log.Printf("[scrape] fetching page %d: %s", page, url)
		pageHTML := s.fetcher.Text(ctx, url)
		if pageHTML == "" {
			log.Printf("[scrape] empty page %d; stopping", page)
			break
		}

		for _, j := range upwork.ParsePage(pageHTML) {
			jobs = append(jobs, j)
			if len(jobs) >= s.maxItems {
				break
			}
		}

		if page < maxPages && len(jobs) < s.maxItems {
			if !sleep(ctx, s.delay) {
				break
			}
		}
	}

	log.Printf("[scrape] finished with %d jobs", len(jobs))
	return jobs
}

// sleep is the inter-page throttle; returns false when the context dies
// first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
