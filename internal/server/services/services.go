// Package services holds the business rules of the vault: registration,
// login and identification of users, and owner-scoped entry management.
package services

import (
	"time"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
)

// PasswordHasher is implemented by *cryptox.Hasher.
type PasswordHasher interface {
	GenerateSalt() ([]byte, error)
	Hash(password string, salt []byte) string
	Verify(password, encoded string) bool
}

// TokenIssuer is implemented by *auth.Issuer.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// SecretSealer is implemented by *cryptox.Sealer.
type SecretSealer interface {
	Seal(ownerID, plaintext string) (string, error)
	Open(ownerID, sealed string) (string, error)
}

// Deps bundles what the services need. DB is used for single statements,
// Tx for multi-step units of work.
type Deps struct {
	DB     dbx.DBTX
	Tx     dbx.Transactor
	Repos  repomanager.RepositoryManager
	Hasher PasswordHasher
	Issuer TokenIssuer
	Sealer SecretSealer
	Logger logging.Logger
}

func (d Deps) logger() logging.Logger {
	if d.Logger == nil {
		return logging.Nop{}
	}
	return d.Logger
}
