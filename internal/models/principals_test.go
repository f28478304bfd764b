package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWriterDuplicateUsername(t *testing.T) {
	database := newTestDB(t)

	w := &Writer{WriterID: "w1", Username: "alice", PasswordHash: "x", WriterName: "Alice Wu"}
	require.NoError(t, CreateWriter(database, w))

	dup := &Writer{WriterID: "w2", Username: "alice", PasswordHash: "y", WriterName: "Other Alice"}
	assert.ErrorIs(t, CreateWriter(database, dup), ErrDuplicateUsername)
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, CreateAdmin(database, &Admin{AdminID: "a1", Username: "root", PasswordHash: "x"}))
	assert.ErrorIs(t, CreateAdmin(database, &Admin{AdminID: "a2", Username: "root", PasswordHash: "y"}),
		ErrDuplicateUsername)
}

func TestGetWriterByUsername(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, CreateWriter(database, &Writer{
		WriterID: "w1", Username: "alice", PasswordHash: "x", WriterName: "Alice Wu",
	}))

	w, err := GetWriterByUsername(database, "alice")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.WriterID)
	assert.Equal(t, "Alice Wu", w.WriterName)

	_, err = GetWriterByUsername(database, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWriter(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, CreateWriter(database, &Writer{
		WriterID: "w1", Username: "alice", PasswordHash: "x", WriterName: "Alice Wu",
	}))

	require.NoError(t, DeleteWriter(database, "w1"))
	_, err := GetWriterByUsername(database, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, DeleteWriter(database, "w1"), ErrNotFound)
}

func TestListPrincipals(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, CreateAdmin(database, &Admin{AdminID: "a1", Username: "root", PasswordHash: "x"}))
	require.NoError(t, CreateWriter(database, &Writer{
		WriterID: "w1", Username: "alice", PasswordHash: "x", WriterName: "Alice Wu",
	}))
	require.NoError(t, CreateWriter(database, &Writer{
		WriterID: "w2", Username: "bob", PasswordHash: "x", WriterName: "Bob Tan",
	}))

	admins, err := ListAdmins(database)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)

	writers, err := ListWriters(database)
	require.NoError(t, err)
	require.Len(t, writers, 2)
}
