package models

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PostStatus is the moderation state of a post. "edit" is a
// first-class value with unconstrained transitions; whether it is a
// terminal outcome or a re-review marker is pending product
// clarification.
type PostStatus string

const (
	PostOpen     PostStatus = "open"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
	PostEdit     PostStatus = "edit"
)

func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostOpen, PostApproved, PostRejected, PostEdit:
		return true
	}
	return false
}

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

func ValidCommentStatus(s CommentStatus) bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

type Admin struct {
	AdminID      string    `json:"adminId"`
	Username     string    `json:"adminUserName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Writer struct {
	WriterID     string    `json:"writerId"`
	Username     string    `json:"writerUserName"`
	PasswordHash string    `json:"-"`
	WriterName   string    `json:"writerName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Post struct {
	PostID      string     `json:"postId"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl"`
	AuthorImage string     `json:"authorImage"`
	AuthorName  string     `json:"authorName"`
	WriterName  string     `json:"writerName"`
	Category    string     `json:"category"`
	UploadDate  time.Time  `json:"uploadDate"`
	ViewCount   int64      `json:"viewCount"`
	Status      PostStatus `json:"post_status"`
}

// PostContent holds the writer-editable fields of a post. Edits
// overwrite these fields in a single targeted UPDATE and never touch
// the view counter.
type PostContent struct {
	Title       string
	Content     string
	ImageURL    string
	AuthorImage string
	AuthorName  string
	Category    string
}

type Comment struct {
	CommentID string        `json:"commentId"`
	PostID    string        `json:"postId"`
	Name      string        `json:"commenterName"`
	Email     string        `json:"commenterEmail,omitempty"`
	Text      string        `json:"commentText"`
	Website   string        `json:"website"`
	Status    CommentStatus `json:"commentStatus"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt *time.Time    `json:"updatedAt"`
}

// Sanitized returns a copy with the commenter's email removed.
// Public listings must never expose stored addresses.
func (c Comment) Sanitized() Comment {
	c.Email = ""
	return c
}

// PostViews is one row of a view-count ranking.
type PostViews struct {
	PostID string `json:"postId"`
	Views  int64  `json:"views"`
}

// DateViews is one calendar-day bucket of view events.
type DateViews struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}
