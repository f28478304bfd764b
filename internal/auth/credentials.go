package auth

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/models"
)

// PrincipalKind scopes a credential lookup to one collection.
type PrincipalKind string

const (
	KindAdmin  PrincipalKind = "admin"
	KindWriter PrincipalKind = "writer"
)

// Principal is an authenticated identity, returned without its secret.
type Principal struct {
	ID       string
	Username string
	// Name is the display name stamped onto content; for writers it is
	// the writer_name that ownership checks compare against.
	Name string
	Role Role
}

// dummyHash absorbs a bcrypt comparison on the unknown-user path so
// lookup misses and password mismatches take comparable time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("pressroom.dummy.credential"), bcrypt.DefaultCost)

// Authenticator verifies credentials against the stored bcrypt hashes.
type Authenticator struct {
	db *sql.DB
}

func NewAuthenticator(db *sql.DB) *Authenticator {
	return &Authenticator{db: db}
}

// Authenticate looks up the principal for kind by username and accepts
// only on a hash match. Unknown usernames and wrong passwords fail
// identically with models.ErrInvalidCredentials.
func (a *Authenticator) Authenticate(kind PrincipalKind, username, password string) (*Principal, error) {
	var (
		principal *Principal
		hash      string
	)
	switch kind {
	case KindAdmin:
		admin, err := models.GetAdminByUsername(a.db, username)
		if err != nil {
			return nil, lookupFailure(err, password)
		}
		principal = &Principal{ID: admin.AdminID, Username: admin.Username, Name: admin.Username, Role: RoleAdmin}
		hash = admin.PasswordHash
	case KindWriter:
		writer, err := models.GetWriterByUsername(a.db, username)
		if err != nil {
			return nil, lookupFailure(err, password)
		}
		principal = &Principal{ID: writer.WriterID, Username: writer.Username, Name: writer.WriterName, Role: RoleWriter}
		hash = writer.PasswordHash
	default:
		return nil, models.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	return principal, nil
}

func lookupFailure(err error, password string) error {
	if errors.Is(err, models.ErrNotFound) {
		// burn a comparison so the miss is not observable by timing
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.ErrInvalidCredentials
	}
	return err
}

// HashPassword is used by provisioning; only the hash is ever stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
