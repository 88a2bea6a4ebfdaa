package domain

// JobRecord is the normalized representation of one marketplace listing.
// Records are constructed once by the extractor and never mutated after.
type JobRecord struct {
	JobID                     string   `json:"jobId"`
	Title                     string   `json:"title"`
	Description               string   `json:"description"`
	CreatedAt                 string   `json:"createdAt"` // ISO-8601 UTC, or the cleaned source text
	JobType                   string   `json:"jobType"`   // Hourly / Fixed / ""
	Duration                  string   `json:"duration"`
	Budget                    string   `json:"budget"`
	ClientLocation            string   `json:"clientLocation"`
	ClientPaymentVerification bool     `json:"clientPaymentVerification"`
	ClientSpent               string   `json:"clientSpent"`
	ClientReviews             int      `json:"clientReviews"`
	Category                  string   `json:"category"`
	Skills                    []string `json:"skills"`
}

// Row flattens the record into the key space the exporters work with.
func (r JobRecord) Row() map[string]any {
	return map[string]any{
		"jobId":                     r.JobID,
		"title":                     r.Title,
		"description":               r.Description,
		"createdAt":                 r.CreatedAt,
		"jobType":                   r.JobType,
		"duration":                  r.Duration,
		"budget":                    r.Budget,
		"clientLocation":            r.ClientLocation,
		"clientPaymentVerification": r.ClientPaymentVerification,
		"clientSpent":               r.ClientSpent,
		"clientReviews":             r.ClientReviews,
		"category":                  r.Category,
		"skills":                    r.Skills,
	}
}
