package models

import "database/sql"

// IncrementViewCount applies one view event atomically: the counter
// row and the daily bucket are bumped with conflict-upserts, never a
// get-then-put, so N concurrent calls always total +N. The post's
// cached view_count is mirrored in the same transaction; the
// post_views row stays authoritative if they ever diverge.
func IncrementViewCount(db *sql.DB, postID, day string) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total int64
	err = tx.QueryRow(`INSERT INTO post_views (post_id, view_count) VALUES (?, 1)
        ON CONFLICT(post_id) DO UPDATE SET view_count = post_views.view_count + 1
        RETURNING view_count`, postID).Scan(&total)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`INSERT INTO view_events (post_id, view_date, views) VALUES (?, ?, 1)
        ON CONFLICT(post_id, view_date) DO UPDATE SET views = view_events.views + 1`, postID, day); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE posts SET view_count = ? WHERE post_id = ?`, total, postID); err != nil {
		return 0, err
	}

	return total, tx.Commit()
}

func GetViewCount(db *sql.DB, postID string) (int64, error) {
	var n int64
	err := db.QueryRow(`SELECT view_count FROM post_views WHERE post_id = ?`, postID).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

// TopViewedPosts ranks posts by view count descending, ties broken by
// creation order. approvedOnly restricts the ranking to approved posts
// for the public path; category is optional.
func TopViewedPosts(db *sql.DB, limit int, category string, approvedOnly bool) ([]PostViews, error) {
	q := `SELECT p.post_id, COALESCE(v.view_count, 0) FROM posts p
        LEFT JOIN post_views v ON v.post_id = p.post_id`
	var conds []string
	var args []any
	if approvedOnly {
		conds = append(conds, `p.status = ?`)
		args = append(args, PostApproved)
	}
	if category != "" {
		conds = append(conds, `p.category = ?`)
		args = append(args, category)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY COALESCE(v.view_count, 0) DESC, p.rowid ASC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var top []PostViews
	for rows.Next() {
		var pv PostViews
		if err := rows.Scan(&pv.PostID, &pv.Views); err != nil {
			return nil, err
		}
		top = append(top, pv)
	}
	return top, rows.Err()
}

// viewRangeClause builds the optional inclusive [start, end] window.
// The dates are fixed-width ISO-8601 strings, so lexicographic
// comparison in SQL is safe.
func viewRangeClause(start, end string) (string, []any) {
	clause := ""
	var args []any
	if start != "" {
		clause += ` AND view_date >= ?`
		args = append(args, start)
	}
	if end != "" {
		clause += ` AND view_date <= ?`
		args = append(args, end)
	}
	return clause, args
}

func ViewTotals(db *sql.DB, start, end string) (totalViews, uniquePosts int64, err error) {
	clause, args := viewRangeClause(start, end)
	err = db.QueryRow(`SELECT COALESCE(SUM(views), 0), COUNT(DISTINCT post_id) FROM view_events WHERE 1=1`+clause, args...).
		Scan(&totalViews, &uniquePosts)
	return totalViews, uniquePosts, err
}

func ViewsByDate(db *sql.DB, start, end string) ([]DateViews, error) {
	clause, args := viewRangeClause(start, end)
	rows, err := db.Query(`SELECT view_date, SUM(views) FROM view_events WHERE 1=1`+clause+
		` GROUP BY view_date ORDER BY view_date`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var buckets []DateViews
	for rows.Next() {
		var d DateViews
		if err := rows.Scan(&d.Date, &d.Views); err != nil {
			return nil, err
		}
		buckets = append(buckets, d)
	}
	return buckets, rows.Err()
}

// TopViewedInRange ranks posts by view events inside the window, ties
// broken by post creation order.
func TopViewedInRange(db *sql.DB, limit int, start, end string) ([]PostViews, error) {
	clause, args := viewRangeClause(start, end)
	args = append(args, limit)
	rows, err := db.Query(`SELECT e.post_id, SUM(e.views) AS total FROM view_events e
        JOIN posts p ON p.post_id = e.post_id
        WHERE 1=1`+clause+`
        GROUP BY e.post_id ORDER BY total DESC, p.rowid ASC LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var top []PostViews
	for rows.Next() {
		var pv PostViews
		if err := rows.Scan(&pv.PostID, &pv.Views); err != nil {
			return nil, err
		}
		top = append(top, pv)
	}
	return top, rows.Err()
}
