package views

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/db"
	"pressroom/internal/models"
)

func newTestAggregator(t *testing.T) (*Aggregator, *sql.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, models.CreatePost(database, &models.Post{
		PostID: "p1", Title: "t", Content: "c", ImageURL: "u", AuthorImage: "a",
		AuthorName: "Author", WriterName: "Alice Wu", Category: "news",
		UploadDate: time.Now().UTC(), Status: models.PostApproved,
	}))
	return NewAggregator(database), database
}

func TestRecordViewBucketsByUTCDay(t *testing.T) {
	agg, database := newTestAggregator(t)
	agg.now = func() time.Time {
		// 23:30 in UTC-5 is already the next day in UTC
		return time.Date(2026, 8, 30, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	}

	total, err := agg.RecordView("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	buckets, err := models.ViewsByDate(database, "", "")
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-08-31", buckets[0].Date)
}

func TestOverview(t *testing.T) {
	agg, _ := newTestAggregator(t)
	agg.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	for i := 0; i < 3; i++ {
		_, err := agg.RecordView("p1")
		require.NoError(t, err)
	}

	overview, err := agg.Overview("", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.TotalViews)
	assert.Equal(t, int64(1), overview.UniquePosts)
	require.Len(t, overview.TopPosts, 1)
	assert.Equal(t, models.PostViews{PostID: "p1", Views: 3}, overview.TopPosts[0])
	require.Len(t, overview.ViewsByDate, 1)
	assert.Equal(t, "2026-08-30", overview.ViewsByDate[0].Date)

	// a window that excludes the events
	overview, err = agg.Overview("2026-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), overview.TotalViews)
	assert.Empty(t, overview.TopPosts)
}

func TestOverviewRejectsBadDates(t *testing.T) {
	agg, _ := newTestAggregator(t)

	_, err := agg.Overview("30-08-2026", "")
	assert.Error(t, err)
	_, err = agg.Overview("", "2026/08/30")
	assert.Error(t, err)
}

func TestTopNDefaultsLimit(t *testing.T) {
	agg, _ := newTestAggregator(t)

	top, err := agg.TopN(0, "")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "p1", top[0].PostID)
}
