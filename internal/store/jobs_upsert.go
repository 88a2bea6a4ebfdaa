package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"upwork-scraper/internal/domain"
	"upwork-scraper/internal/scrape/util"
)

// SourceID keys a record for cross-run dedup: the marketplace job id when
// present, else a hash of title+description.
func SourceID(r domain.JobRecord) string {
	if id := strings.TrimSpace(r.JobID); id != "" {
		return "job:" + id
	}
	return util.HashString("text:" + r.Title + "|" + r.Description)
}

func InsertRecordIgnore(db *sql.DB, r domain.JobRecord, scrapedAt time.Time) (added bool, err error) {
	skillsB, _ := json.Marshal(r.Skills)

	verified := 0
	if r.ClientPaymentVerification {
		verified = 1
	}

	_, err = db.Exec(`
INSERT OR IGNORE INTO jobs (job_id, title, description, created_at, job_type, duration, budget, client_location, payment_verified, client_spent, client_reviews, category, skills, source_id, scraped_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.JobID, r.Title, r.Description, r.CreatedAt, r.JobType, r.Duration, r.Budget,
		r.ClientLocation, verified, r.ClientSpent, r.ClientReviews, r.Category,
		string(skillsB), SourceID(r), scrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}

	// INSERT OR IGNORE doesn't report rows affected reliably across drivers;
	// ask sqlite directly.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// SaveRecords upserts a scraped batch and returns how many were new.
func SaveRecords(db *sql.DB, records []domain.JobRecord) (int, error) {
	now := time.Now().UTC()
	added := 0
	for _, r := range records {
		ok, err := InsertRecordIgnore(db, r, now)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
