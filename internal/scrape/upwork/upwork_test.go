package upwork

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCard(t *testing.T, pageHTML string, selector string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	require.NoError(t, err)
	card := doc.Find(selector).First()
	require.Equal(t, 1, card.Length(), "fixture should contain the card")
	return card
}

const fullCard = `
<html><body>
<section class="air-card" data-job-id="job-123">
  <a data-test="job-title-link" href="/jobs/~0123456789abcdef/">Build a Go scraper</a>
  <span data-test="job-posted-on">Posted 3 hours ago</span>
  <div data-test="job-description-text">Need a developer for an hourly engagement.</div>
  <span data-test="job-duration">3 to 6 months</span>
  <span data-test="job-hourly-rate">$25/hr</span>
  <span data-test="client-location">United States</span>
  <span data-test="client-spent">$15,000+</span>
  <span>Payment verified</span>
  <span>48 reviews</span>
  <span data-test="job-category">Web Development</span>
  <span data-test="skill-chip">Go</span>
  <span data-test="skill-chip">go</span>
  <span data-test="skill-chip">Web Scraping</span>
</section>
</body></html>`

func TestExtractJobFullCard(t *testing.T) {
	card := mustCard(t, fullCard, "section.air-card")

	rec, ok := extractJob(card)
	require.True(t, ok)

	assert.Equal(t, "job-123", rec.JobID, "id attribute wins over the link")
	assert.Equal(t, "Build a Go scraper", rec.Title)
	assert.Equal(t, "Need a developer for an hourly engagement.", rec.Description)
	assert.Equal(t, "Hourly", rec.JobType)
	assert.Equal(t, "3 to 6 months", rec.Duration)
	assert.Equal(t, "$25/hr", rec.Budget)
	assert.Equal(t, "United States", rec.ClientLocation)
	assert.True(t, rec.ClientPaymentVerification)
	assert.Equal(t, "$15,000+", rec.ClientSpent)
	assert.Equal(t, 48, rec.ClientReviews)
	assert.Equal(t, "Web Development", rec.Category)
	assert.Equal(t, []string{"Go", "Web Scraping"}, rec.Skills)

	ts, err := time.Parse(time.RFC3339, rec.CreatedAt)
	require.NoError(t, err, "posted snippet should resolve to a timestamp, got %q", rec.CreatedAt)
	assert.WithinDuration(t, time.Now().UTC().Add(-3*time.Hour), ts, time.Minute)
}

func TestExtractJobIDFromTildeLink(t *testing.T) {
	html := `
<section class="air-card">
  <a href="/jobs/~016f2abc99/?source=search">Tilde link job</a>
</section>`
	card := mustCard(t, html, "section.air-card")

	rec, ok := extractJob(card)
	require.True(t, ok)
	assert.Equal(t, "016f2abc99", rec.JobID)
}

func TestExtractJobIDFromTrailingSegment(t *testing.T) {
	html := `
<section class="air-card">
  <a href="/job/build-scraper_12345?ref=recent">Trailing segment job</a>
</section>`
	card := mustCard(t, html, "section.air-card")

	rec, ok := extractJob(card)
	require.True(t, ok)
	assert.Equal(t, "build-scraper_12345", rec.JobID)
}

func TestExtractJobTooEmpty(t *testing.T) {
	html := `
<section class="air-card">
  <div>© 2025 footer junk</div>
</section>`
	card := mustCard(t, html, "section.air-card")

	_, ok := extractJob(card)
	assert.False(t, ok, "a card without id, title or description is noise")
}

func TestExtractJobTitleOnly(t *testing.T) {
	html := `<section class="air-card"><h4>Just a title</h4></section>`
	card := mustCard(t, html, "section.air-card")

	rec, ok := extractJob(card)
	require.True(t, ok)
	assert.Equal(t, "Just a title", rec.Title)
	assert.Equal(t, "", rec.JobID)
	assert.Equal(t, "", rec.Description)
	assert.Equal(t, 0, rec.ClientReviews)
	assert.False(t, rec.ClientPaymentVerification)
}

func TestParsePageEmptyInput(t *testing.T) {
	assert.Empty(t, ParsePage(""))
}

func TestParsePageCardCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			"specific card class",
			`<section class="air-card"><h4>One</h4></section><section class="air-card"><h4>Two</h4></section>`,
			2,
		},
		{
			"job tile attribute",
			`<div data-test="job-tile"><h3>Tile job</h3></div>`,
			1,
		},
		{
			"generic section fallback",
			`<section><h4>Generic job</h4></section>`,
			1,
		},
		{
			"generic article fallback",
			`<article><h3>Article job</h3></article>`,
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ParsePage(tt.html), tt.want)
		})
	}
}

func TestParsePageSkipsNoiseCards(t *testing.T) {
	html := `
<section class="air-card"><h4>Real job</h4></section>
<section class="air-card"><div>nothing useful</div></section>`

	records := ParsePage(html)
	require.Len(t, records, 1)
	assert.Equal(t, "Real job", records[0].Title)
}

func TestFlattenTextSeparatesElements(t *testing.T) {
	html := `<section class="air-card"><span>48</span><span>reviews</span></section>`
	card := mustCard(t, html, "section.air-card")

	assert.Equal(t, "48 reviews", flattenText(card))
}
