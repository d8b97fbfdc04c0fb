package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type UserService struct {
	db     dbx.DBTX
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	hasher PasswordHasher
	issuer TokenIssuer
	logger logging.Logger

	// dummyHash is verified when the username is unknown, so that a miss
	// costs the same as a wrong password.
	dummyHash string
}

func NewUserService(d Deps) (*UserService, error) {
	salt, err := d.Hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("dummy salt: %w", err)
	}

	return &UserService{
		db:        d.DB,
		tx:        d.Tx,
		repos:     d.Repos,
		hasher:    d.Hasher,
		issuer:    d.Issuer,
		logger:    d.logger().With("component", "user_service"),
		dummyHash: d.Hasher.Hash(uuid.NewString(), salt),
	}, nil
}

// Register creates a user and issues a token for it in one transaction.
func (s *UserService) Register(ctx context.Context, userName, password string) (*AuthResult, error) {
	if userName == "" || password == "" {
		return nil, common.ErrMissingField
	}

	// hashing is slow and must not hold the transaction open
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		s.logger.Error(ctx, "generate salt failed", "error", err)
		return nil, common.ErrorInternal
	}
	passwordHash := s.hasher.Hash(password, salt)

	var result *AuthResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		_, err := repo.GetUserByLogin(ctx, userName)
		switch {
		case err == nil:
			return common.ErrUsernameTaken
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("lookup user: %w", err)
		}

		user, err := repo.Create(ctx, &models.User{
			ID:           uuid.NewString(),
			UserName:     userName,
			PasswordHash: passwordHash,
			Salt:         hex.EncodeToString(salt),
		})
		if err != nil {
			return err
		}

		token, expiresAt, err := s.issuer.Issue(user.ID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}

		result = &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		s.logger.Error(ctx, "register failed", "username", userName, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", result.User.ID)
	return result, nil
}

// Login checks the credentials. An unknown user and a wrong password are
// reported identically.
func (s *UserService) Login(ctx context.Context, userName, password string) (*AuthResult, error) {
	if userName == "" || password == "" {
		return nil, common.ErrMissingField
	}

	user, err := s.repos.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "issue token failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Identify returns the user a resolved token belongs to.
func (s *UserService) Identify(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.logger.Error(ctx, "identify failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}
