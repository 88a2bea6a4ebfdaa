package store

import "database/sql"

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  job_id TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  duration TEXT NOT NULL DEFAULT '',
  budget TEXT NOT NULL DEFAULT '',
  client_location TEXT NOT NULL DEFAULT '',
  payment_verified INTEGER NOT NULL DEFAULT 0,
  client_spent TEXT NOT NULL DEFAULT '',
  client_reviews INTEGER NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '[]',
  source_id TEXT NOT NULL,
  scraped_at TEXT NOT NULL
);`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_source_id
ON jobs(source_id) WHERE source_id != '';`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
