package store

import (
	"path/filepath"
	"testing"

	"upwork-scraper/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestSourceID(t *testing.T) {
	withID := domain.JobRecord{JobID: " job-1 "}
	assert.Equal(t, "job:job-1", SourceID(withID))

	a := domain.JobRecord{Title: "T", Description: "D"}
	b := domain.JobRecord{Title: "T", Description: "D"}
	c := domain.JobRecord{Title: "T", Description: "other"}
	assert.Equal(t, SourceID(a), SourceID(b))
	assert.NotEqual(t, SourceID(a), SourceID(c))
}

func TestSaveRecordsDeduplicates(t *testing.T) {
	db := openTestDB(t)

	batch := []domain.JobRecord{
		{JobID: "job-1", Title: "First", Skills: []string{"Go"}},
		{JobID: "job-2", Title: "Second"},
		{JobID: "job-1", Title: "First again"},
	}

	added, err := SaveRecords(db.Pool, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// replaying the same batch adds nothing
	added, err = SaveRecords(db.Pool, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	var count int
	require.NoError(t, db.Pool.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSaveRecordsHashFallback(t *testing.T) {
	db := openTestDB(t)

	batch := []domain.JobRecord{
		{Title: "No id", Description: "same"},
		{Title: "No id", Description: "same"},
		{Title: "No id", Description: "different"},
	}

	added, err := SaveRecords(db.Pool, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added, "identical title+description collapses to one row")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))
	require.NoError(t, Migrate(db.Pool))
}
