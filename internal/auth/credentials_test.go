package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/db"
	"pressroom/internal/models"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	adminHash, err := HashPassword("admin-secret")
	require.NoError(t, err)
	require.NoError(t, models.CreateAdmin(database, &models.Admin{
		AdminID: "admin-1", Username: "root", PasswordHash: adminHash,
	}))

	writerHash, err := HashPassword("writer-secret")
	require.NoError(t, err)
	require.NoError(t, models.CreateWriter(database, &models.Writer{
		WriterID: "writer-1", Username: "alice", PasswordHash: writerHash, WriterName: "Alice Wu",
	}))

	return NewAuthenticator(database)
}

func TestAuthenticateAdmin(t *testing.T) {
	a := newTestAuthenticator(t)

	p, err := a.Authenticate(KindAdmin, "root", "admin-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", p.ID)
	assert.Equal(t, RoleAdmin, p.Role)
}

func TestAuthenticateWriter(t *testing.T) {
	a := newTestAuthenticator(t)

	p, err := a.Authenticate(KindWriter, "alice", "writer-secret")
	require.NoError(t, err)
	assert.Equal(t, "writer-1", p.ID)
	assert.Equal(t, RoleWriter, p.Role)
	assert.Equal(t, "Alice Wu", p.Name)
}

func TestAuthenticateFailsUniformly(t *testing.T) {
	a := newTestAuthenticator(t)

	// wrong password, unknown user and cross-kind lookup must be
	// indistinguishable to the caller
	for _, tc := range []struct {
		kind     PrincipalKind
		username string
		password string
	}{
		{KindAdmin, "root", "wrong"},
		{KindAdmin, "no-such-admin", "admin-secret"},
		{KindWriter, "alice", "wrong"},
		{KindWriter, "no-such-writer", "writer-secret"},
		{KindWriter, "root", "admin-secret"},
		{KindAdmin, "alice", "writer-secret"},
	} {
		p, err := a.Authenticate(tc.kind, tc.username, tc.password)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials,
			"kind=%s username=%s", tc.kind, tc.username)
	}
}

func TestHashPasswordNeverStoresCleartext(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.NotContains(t, hash, "hunter2")
}
