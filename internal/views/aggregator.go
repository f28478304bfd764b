// Package views counts qualifying reads and answers ranking and
// analytics queries over the accumulated counters.
package views

import (
	"database/sql"
	"fmt"
	"time"

	"pressroom/internal/models"
)

const dateLayout = "2006-01-02"

// Aggregator owns the per-post view counters. The post_views row is
// the source of truth; the viewCount field on posts is a best-effort
// cache refreshed on every increment.
type Aggregator struct {
	db  *sql.DB
	now func() time.Time
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db, now: time.Now}
}

// RecordView counts one view event for postID and returns the new
// total. Logically counter[postID] += 1, applied as a single atomic
// upsert so concurrent calls never lose updates.
func (a *Aggregator) RecordView(postID string) (int64, error) {
	day := a.now().UTC().Format(dateLayout)
	total, err := models.IncrementViewCount(a.db, postID, day)
	if err != nil {
		return 0, fmt.Errorf("recording view for post %s: %w", postID, err)
	}
	return total, nil
}

// TopN ranks approved posts by view count, descending, ties broken by
// creation order. category is optional.
func (a *Aggregator) TopN(limit int, category string) ([]models.PostViews, error) {
	if limit <= 0 {
		limit = 10
	}
	return models.TopViewedPosts(a.db, limit, category, true)
}

// Overview is the admin analytics aggregate for the optional inclusive
// [startDate, endDate] window.
type Overview struct {
	TotalViews  int64              `json:"totalViews"`
	UniquePosts int64              `json:"uniquePosts"`
	TopPosts    []models.PostViews `json:"topPosts"`
	ViewsByDate []models.DateViews `json:"viewsByDate"`
}

// Overview aggregates raw event totals, distinct viewed posts, the top
// 10 posts and per-day buckets. Dates must be ISO-8601 (2006-01-02);
// empty strings leave that side of the window open.
func (a *Aggregator) Overview(startDate, endDate string) (*Overview, error) {
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
	}

	total, unique, err := models.ViewTotals(a.db, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("view totals: %w", err)
	}
	top, err := models.TopViewedInRange(a.db, 10, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	byDate, err := models.ViewsByDate(a.db, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("views by date: %w", err)
	}

	return &Overview{
		TotalViews:  total,
		UniquePosts: unique,
		TopPosts:    top,
		ViewsByDate: byDate,
	}, nil
}
