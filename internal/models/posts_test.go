package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostOpen)

	post, err := GetPost(database, "p1")
	require.NoError(t, err)
	assert.Equal(t, PostOpen, post.Status)
	assert.Equal(t, int64(0), post.ViewCount)
	assert.Equal(t, "Alice Wu", post.WriterName)
}

func TestGetPostNotFound(t *testing.T) {
	database := newTestDB(t)

	_, err := GetPost(database, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsOrderAndFilters(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostOpen)
	seedPost(t, database, "p2", "culture", PostApproved)
	seedPost(t, database, "p3", "news", PostApproved)

	all, err := ListPosts(database)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p1", all[0].PostID)
	assert.Equal(t, "p3", all[2].PostID)

	news, err := ListPostsByCategory(database, "news")
	require.NoError(t, err)
	require.Len(t, news, 2)

	open, err := ListPostsByStatus(database, PostOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "p1", open[0].PostID)
}

func TestUpdatePostStatus(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostOpen)

	post, err := UpdatePostStatus(database, "p1", PostApproved)
	require.NoError(t, err)
	assert.Equal(t, PostApproved, post.Status)

	// all four states are reachable, including edit
	post, err = UpdatePostStatus(database, "p1", PostEdit)
	require.NoError(t, err)
	assert.Equal(t, PostEdit, post.Status)

	_, err = UpdatePostStatus(database, "p1", PostStatus("published"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = UpdatePostStatus(database, "missing", PostApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostByWriterResetsStatus(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostOpen)
	_, err := UpdatePostStatus(database, "p1", PostApproved)
	require.NoError(t, err)

	post, err := UpdatePostByWriter(database, "p1", PostContent{
		Title: "revised", Content: "new body", ImageURL: "https://img.example/x",
		AuthorImage: "https://img.example/a", AuthorName: "Author", Category: "news",
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", post.Title)
	assert.Equal(t, PostOpen, post.Status, "a writer edit goes back to review")
}

func TestUpdatePostByAdminKeepsStatus(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostOpen)
	_, err := UpdatePostStatus(database, "p1", PostApproved)
	require.NoError(t, err)

	post, err := UpdatePostByAdmin(database, "p1", PostContent{
		Title: "fixed typo", Content: "new body", ImageURL: "https://img.example/x",
		AuthorImage: "https://img.example/a", AuthorName: "Author", Category: "news",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", post.Title)
	assert.Equal(t, PostApproved, post.Status)
}

func TestUpdatePostContentPreservesViews(t *testing.T) {
	database := newTestDB(t)
	seedPost(t, database, "p1", "news", PostApproved)
	recordViews(t, database, "p1", "2026-08-30", 3)

	post, err := UpdatePostByWriter(database, "p1", PostContent{
		Title: "revised", Content: "body", ImageURL: "u", AuthorImage: "a",
		AuthorName: "Author", Category: "news",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), post.ViewCount)
}
