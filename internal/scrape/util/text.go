package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var (
	relativeAgoRe = regexp.MustCompile(`^(\d+)\s+(minute|minutes|hour|hours|day|days|week|weeks)\s+ago`)
	reviewCountRe = regexp.MustCompile(`(\d+)\s+reviews`)
	digitRunRe    = regexp.MustCompile(`\d+`)
)

// ParseCreatedAt resolves "Posted X ago" snippets into RFC 3339 UTC
// timestamps. Absolute dates go through dateparse; anything unparseable
// comes back cleaned but otherwise untouched.
func ParseCreatedAt(s string) string {
	clean := strings.ToLower(CleanText(s))
	if clean == "" {
		return ""
	}
	if strings.HasPrefix(clean, "posted") {
		clean = strings.Trim(strings.Replace(clean, "posted", "", 1), " ,-")
	}

	now := time.Now().UTC()

	if m := relativeAgoRe.FindStringSubmatch(clean); m != nil {
		n, _ := strconv.Atoi(m[1])
		var d time.Duration
		switch {
		case strings.HasPrefix(m[2], "minute"):
			d = time.Duration(n) * time.Minute
		case strings.HasPrefix(m[2], "hour"):
			d = time.Duration(n) * time.Hour
		case strings.HasPrefix(m[2], "day"):
			d = time.Duration(n) * 24 * time.Hour
		case strings.HasPrefix(m[2], "week"):
			d = time.Duration(n) * 7 * 24 * time.Hour
		}
		return now.Add(-d).Format(time.RFC3339)
	}

	if clean == "yesterday" {
		return now.Add(-24 * time.Hour).Format(time.RFC3339)
	}

	if t, ok := parseAbsolute(clean); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return CleanText(s)
}

// parseAbsolute parses free-form dates, taking timezone-less values as UTC.
// dateparse can panic on pathological input; that counts as a parse failure.
func parseAbsolute(s string) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	t, err := dateparse.ParseIn(s, time.UTC)
	return t, err == nil
}

// ParseBudget keeps the budget human-readable; the site mixes formats like
// "$25/hr" and "$500 fixed price" and splitting amount from currency is not
// worth the breakage.
func ParseBudget(s string) string {
	return CleanText(s)
}

func ParseClientSpent(s string) string {
	return CleanText(s)
}

// ParseClientReviews pulls a review count out of a blob of client text.
// "N reviews" wins; otherwise the first digit run strictly between 0 and
// 10000 is taken, which keeps large spend figures out.
func ParseClientReviews(s string) int {
	clean := strings.ToLower(CleanText(s))
	if m := reviewCountRe.FindStringSubmatch(clean); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	for _, raw := range digitRunRe.FindAllString(clean, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if n > 0 && n < 10000 {
			return n
		}
	}
	return 0
}

func ParseJobType(s string) string {
	clean := strings.ToLower(CleanText(s))
	if strings.Contains(clean, "hourly") {
		return "Hourly"
	}
	if strings.Contains(clean, "fixed-price") || strings.Contains(clean, "fixed price") {
		return "Fixed"
	}
	return ""
}

// ParseSkillsList cleans and deduplicates skill names case-insensitively,
// keeping the first-seen casing and original order.
func ParseSkillsList(raw []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range raw {
		skill := CleanText(r)
		if skill == "" {
			continue
		}
		k := strings.ToLower(skill)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, skill)
	}
	return out
}
