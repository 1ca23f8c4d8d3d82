package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kycreview/internal/dbx"
)

const (
	KeyAccessToken = "access_token"
	KeyUsername    = "username"
)

// SessionStore persists the bearer token issued at login. The username is
// kept alongside it only to prefill the next login prompt.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns the stored token and username; both are empty when nothing
// was saved.
func (s *SessionStore) Load(ctx context.Context) (token, username string, err error) {
	repo := NewSQLiteRepository(s.db)

	t, _, err := repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", "", err
	}
	u, _, err := repo.Get(ctx, KeyUsername)
	if err != nil {
		return "", "", err
	}
	return string(t), string(u), nil
}

// Save replaces the stored token and username in one transaction.
func (s *SessionStore) Save(ctx context.Context, token, username string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUsername, []byte(username))
	})
}

// Clear erases the stored token. The username survives so the next login
// prompt can still offer it.
func (s *SessionStore) Clear(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Delete(ctx, KeyAccessToken)
}
