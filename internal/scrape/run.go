package scrape

import (
	"context"
	"log"
	"time"

	"upwork-scraper/internal/domain"

	"golang.org/x/sync/errgroup"
)

// RunSearches runs one sequential scrape per template and merges the results
// in template order under a single cap. Each search stays strictly
// sequential internally; only the searches themselves overlap, and the fetch
// client's per-host limiter keeps that polite.
func RunSearches(ctx context.Context, templates []string, maxItems, maxPages int, delay time.Duration, f Fetcher) []domain.JobRecord {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if len(templates) == 0 {
		return nil
	}

	results := make([][]domain.JobRecord, len(templates))

	var g errgroup.Group
	for i, tpl := range templates {
		i, tpl := i, tpl
		g.Go(func() error {
			s, err := New(tpl, maxItems, delay, f)
			if err != nil {
				log.Printf("[scrape] search %d: %v", i+1, err)
				return nil // best-effort: don't cancel siblings
			}
			results[i] = s.Run(ctx, maxPages)
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.JobRecord
	for _, rs := range results {
		for _, r := range rs {
			if len(merged) >= maxItems {
				return merged
			}
			merged = append(merged, r)
		}
	}
	return merged
}
