package models

import (
	"database/sql"
	"errors"
	"time"
)

const commentColumns = `comment_id, post_id, commenter_name, commenter_email, comment_text, website, status, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*Comment, error) {
	var c Comment
	var updated sql.NullTime
	err := row.Scan(&c.CommentID, &c.PostID, &c.Name, &c.Email, &c.Text,
		&c.Website, &c.Status, &c.CreatedAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if updated.Valid {
		c.UpdatedAt = &updated.Time
	}
	return &c, nil
}

func CreateComment(db *sql.DB, c *Comment) error {
	_, err := db.Exec(`INSERT INTO comments (comment_id, post_id, commenter_name, commenter_email, comment_text, website, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CommentID, c.PostID, c.Name, c.Email, c.Text, c.Website, c.Status, c.CreatedAt)
	return err
}

func GetComment(db *sql.DB, commentID string) (*Comment, error) {
	return scanComment(db.QueryRow(`SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`, commentID))
}

func ListComments(db *sql.DB) ([]Comment, error) {
	return queryComments(db, `SELECT `+commentColumns+` FROM comments ORDER BY rowid`)
}

func ListCommentsByStatus(db *sql.DB, status CommentStatus) ([]Comment, error) {
	return queryComments(db, `SELECT `+commentColumns+` FROM comments WHERE status = ? ORDER BY rowid`, status)
}

// ListApprovedCommentsByPost serves the public per-post listing. The
// caller is still responsible for stripping emails before returning
// comments to a non-admin.
func ListApprovedCommentsByPost(db *sql.DB, postID string) ([]Comment, error) {
	return queryComments(db, `SELECT `+commentColumns+` FROM comments WHERE post_id = ? AND status = ? ORDER BY rowid`,
		postID, CommentApproved)
}

func ListCommentsByEmail(db *sql.DB, email string) ([]Comment, error) {
	return queryComments(db, `SELECT `+commentColumns+` FROM comments WHERE commenter_email = ? ORDER BY rowid`, email)
}

func queryComments(db *sql.DB, q string, args ...any) ([]Comment, error) {
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var comments []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// UpdateCommentStatus stamps updated_at alongside the transition; any
// of the three states is reachable from any other.
func UpdateCommentStatus(db *sql.DB, commentID string, status CommentStatus, now time.Time) (*Comment, error) {
	if !ValidCommentStatus(status) {
		return nil, ErrInvalidStatus
	}
	res, err := db.Exec(`UPDATE comments SET status = ?, updated_at = ? WHERE comment_id = ?`, status, now, commentID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return GetComment(db, commentID)
}

func DeleteComment(db *sql.DB, commentID string) error {
	res, err := db.Exec(`DELETE FROM comments WHERE comment_id = ?`, commentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
