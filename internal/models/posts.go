package models

import (
	"database/sql"
	"errors"
)

const postColumns = `post_id, title, content, image_url, author_image, author_name, writer_name, category, upload_date, view_count, status`

func scanPost(row interface{ Scan(...any) error }) (*Post, error) {
	var p Post
	err := row.Scan(&p.PostID, &p.Title, &p.Content, &p.ImageURL, &p.AuthorImage,
		&p.AuthorName, &p.WriterName, &p.Category, &p.UploadDate, &p.ViewCount, &p.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func CreatePost(db *sql.DB, p *Post) error {
	_, err := db.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PostID, p.Title, p.Content, p.ImageURL, p.AuthorImage,
		p.AuthorName, p.WriterName, p.Category, p.UploadDate, p.ViewCount, p.Status)
	return err
}

func GetPost(db *sql.DB, postID string) (*Post, error) {
	return scanPost(db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE post_id = ?`, postID))
}

func ListPosts(db *sql.DB) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+` FROM posts ORDER BY rowid`)
}

func ListPostsByCategory(db *sql.DB, category string) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+` FROM posts WHERE category = ? ORDER BY rowid`, category)
}

func ListPostsByStatus(db *sql.DB, status PostStatus) ([]Post, error) {
	return queryPosts(db, `SELECT `+postColumns+` FROM posts WHERE status = ? ORDER BY rowid`, status)
}

func queryPosts(db *sql.DB, q string, args ...any) ([]Post, error) {
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// UpdatePostStatus writes only the status column so a concurrent edit
// can never be clobbered by a stale full-record write. Returns the
// post as stored after the transition.
func UpdatePostStatus(db *sql.DB, postID string, status PostStatus) (*Post, error) {
	if !ValidPostStatus(status) {
		return nil, ErrInvalidStatus
	}
	res, err := db.Exec(`UPDATE posts SET status = ? WHERE post_id = ?`, status, postID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return GetPost(db, postID)
}

// UpdatePostByWriter overwrites the content fields and unconditionally
// resets status to open, sending the post back for review.
func UpdatePostByWriter(db *sql.DB, postID string, c PostContent) (*Post, error) {
	return updatePostContent(db, postID, c, true)
}

// UpdatePostByAdmin overwrites the content fields and leaves the
// moderation status untouched.
func UpdatePostByAdmin(db *sql.DB, postID string, c PostContent) (*Post, error) {
	return updatePostContent(db, postID, c, false)
}

func updatePostContent(db *sql.DB, postID string, c PostContent, resetStatus bool) (*Post, error) {
	q := `UPDATE posts SET title = ?, content = ?, image_url = ?, author_image = ?, author_name = ?, category = ?`
	args := []any{c.Title, c.Content, c.ImageURL, c.AuthorImage, c.AuthorName, c.Category}
	if resetStatus {
		q += `, status = ?`
		args = append(args, PostOpen)
	}
	q += ` WHERE post_id = ?`
	args = append(args, postID)

	res, err := db.Exec(q, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return GetPost(db, postID)
}
