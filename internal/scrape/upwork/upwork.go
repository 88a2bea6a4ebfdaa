// Package upwork turns marketplace search-result HTML into job records.
// The site renames its markup often, so every lookup is a cascade of
// selector candidates where the first non-empty match wins.
package upwork

import (
	"log"
	"strings"

	"upwork-scraper/internal/domain"
	"upwork-scraper/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParsePage extracts all job records from one search-result page. A card
// that blows up during extraction is logged and skipped; it never takes the
// rest of the page with it.
func ParsePage(pageHTML string) []domain.JobRecord {
	if pageHTML == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		log.Printf("[upwork] parse page html: %v", err)
		return nil
	}

	var records []domain.JobRecord
	selectCards(doc).Each(func(_ int, card *goquery.Selection) {
		if rec, ok := extractJob(card); ok {
			records = append(records, rec)
		}
	})
	log.Printf("[upwork] parsed %d jobs from page", len(records))
	return records
}

// selectCards picks the listing containers, falling back from the specific
// card class to generic sectioning elements.
func selectCards(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{
		"section.air-card",
		`div[data-test="job-tile"]`,
		"section",
		"article",
	} {
		if s := doc.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return doc.Find("article")
}

// extractJob assembles a record from one card. ok is false when the card
// carries no identifying content at all.
func extractJob(card *goquery.Selection) (rec domain.JobRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[upwork] card extraction failed: %v", r)
			rec, ok = domain.JobRecord{}, false
		}
	}()

	jobID := firstAttr(card, "data-job-id", "data-ev-job-id", "data-test-job-id")
	if jobID == "" {
		jobID = jobIDFromLink(card)
	}

	title := firstText(card, `[data-test="job-title-link"]`, "h4", "h3", "a")
	description := firstText(card, `[data-test="job-description-text"]`, `div[class*="description"]`, "p")

	createdText := firstText(card, `[data-test="job-posted-on"]`)
	if createdText == "" {
		// fallback: any short element whose text starts with "Posted"
		card.Find("small, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := util.CleanText(s.Text())
			if strings.HasPrefix(strings.ToLower(t), "posted") {
				createdText = t
				return false
			}
			return true
		})
	}

	cardText := flattenText(card)

	duration := firstText(card, `[data-test="job-duration"]`)
	if duration == "" {
		duration = firstTextContaining(card, "span", "month")
	}

	budget := firstText(card, `[data-test="job-budget"]`, `[data-test="job-hourly-rate"]`)
	if budget == "" {
		budget = firstTextContaining(card, "span, strong", "$")
	}

	rec = domain.JobRecord{
		JobID:                     jobID,
		Title:                     title,
		Description:               description,
		CreatedAt:                 util.ParseCreatedAt(createdText),
		JobType:                   util.ParseJobType(cardText),
		Duration:                  duration,
		Budget:                    util.ParseBudget(budget),
		ClientLocation:            firstText(card, `[data-test="client-location"]`, `span[aria-label*="location"]`),
		ClientPaymentVerification: strings.Contains(strings.ToLower(cardText), "payment verified"),
		ClientSpent:               util.ParseClientSpent(firstText(card, `[data-test="client-spent"]`)),
		ClientReviews:             util.ParseClientReviews(cardText),
		Category:                  firstText(card, `[data-test="job-category"]`, `[data-test="job-subcategory"]`),
		Skills:                    util.ParseSkillsList(collectTexts(card, `[data-test="skill-chip"], a[class*="skill"]`)),
	}

	if rec.JobID == "" && rec.Title == "" && rec.Description == "" {
		// too empty to be a listing
		return domain.JobRecord{}, false
	}
	return rec, true
}

// jobIDFromLink digs an identifier out of the first job-detail link. Detail
// URLs usually look like /jobs/~0123abc/; older layouts put the id in the
// last path segment instead.
func jobIDFromLink(card *goquery.Selection) string {
	href, exists := card.Find(`a[href*="/jobs/"], a[href*="/job/"]`).First().Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return ""
	}
	href = strings.TrimSpace(href)

	if i := strings.Index(href, "~"); i >= 0 {
		id := href[i+1:]
		if j := strings.IndexAny(id, "/?"); j >= 0 {
			id = id[:j]
		}
		return id
	}

	trimmed := strings.TrimRight(href, "/")
	seg := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if q := strings.Index(seg, "?"); q >= 0 {
		seg = seg[:q]
	}
	return seg
}

func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := util.CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func firstAttr(s *goquery.Selection, attrs ...string) string {
	for _, a := range attrs {
		if v, exists := s.Attr(a); exists && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func firstTextContaining(s *goquery.Selection, selector, needle string) string {
	var out string
	s.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if t := util.CleanText(el.Text()); t != "" && strings.Contains(t, needle) {
			out = t
			return false
		}
		return true
	})
	return out
}

func collectTexts(s *goquery.Selection, selector string) []string {
	var out []string
	s.Find(selector).Each(func(_ int, el *goquery.Selection) {
		out = append(out, el.Text())
	})
	return out
}

// flattenText renders the visible text of a selection with single spaces
// between adjacent nodes, so containment checks and number scans don't see
// words glued together across element boundaries.
func flattenText(s *goquery.Selection) string {
	var parts []string
	for _, n := range s.Nodes {
		collectTextNodes(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectTextNodes(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := util.CleanText(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextNodes(c, parts)
	}
}
