package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EntryInput is the data needed to create an entry. Password is plaintext.
type EntryInput struct {
	Title    string
	UserName string
	Password string
	URL      string
	Notes    string
	Category string
	Tags     []string
}

// EntryService manages the entries of a single owner per call. Passwords
// are sealed before they reach the repository; entries returned by Create,
// List and Update carry an empty Password, Get returns it opened.
type EntryService struct {
	db     dbx.DBTX
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	sealer SecretSealer
	logger logging.Logger
}

func NewEntryService(d Deps) *EntryService {
	return &EntryService{
		db:     d.DB,
		tx:     d.Tx,
		repos:  d.Repos,
		sealer: d.Sealer,
		logger: d.logger().With("component", "entry_service"),
	}
}

// validEntryID reports whether id can name an entry. Entry ids are UUIDs,
// and postgres rejects anything else in a uuid column with a type error.
func validEntryID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *EntryService) internal(ctx context.Context, op, userID string, err error) error {
	s.logger.Error(ctx, "entry "+op+" failed", "user_id", userID, "error", err)
	return common.ErrorInternal
}

func (s *EntryService) Create(ctx context.Context, userID string, in EntryInput) (*models.Entry, error) {
	if in.Title == "" || in.UserName == "" || in.Password == "" {
		return nil, common.ErrMissingEntryField
	}

	sealed, err := s.sealer.Seal(userID, in.Password)
	if err != nil {
		return nil, s.internal(ctx, "seal", userID, err)
	}

	e, err := s.repos.Entries(s.db).Create(ctx, &models.Entry{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    in.Title,
		UserName: in.UserName,
		Password: sealed,
		URL:      in.URL,
		Notes:    in.Notes,
		Category: in.Category,
		Tags:     in.Tags,
	})
	if err != nil {
		return nil, s.internal(ctx, "create", userID, err)
	}

	e.Password = ""
	return e, nil
}

func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	list, err := s.repos.Entries(s.db).List(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "list", userID, err)
	}
	for _, e := range list {
		e.Password = ""
	}
	return list, nil
}

// Get returns the entry with its password opened.
func (s *EntryService) Get(ctx context.Context, userID, id string) (*models.Entry, error) {
	if !validEntryID(id) {
		return nil, common.ErrorNotFound
	}

	e, err := s.repos.Entries(s.db).Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "get", userID, err)
	}

	plain, err := s.sealer.Open(userID, e.Password)
	if err != nil {
		return nil, s.internal(ctx, "open", userID, err)
	}
	e.Password = plain
	return e, nil
}

// Update applies patch to an owned entry. A new password is sealed again.
func (s *EntryService) Update(ctx context.Context, userID, id string, patch models.EntryPatch) (*models.Entry, error) {
	if !validEntryID(id) {
		return nil, common.ErrorNotFound
	}

	if patch.Password != nil {
		sealed, err := s.sealer.Seal(userID, *patch.Password)
		if err != nil {
			return nil, s.internal(ctx, "seal", userID, err)
		}
		patch.Password = &sealed
	}

	var updated *models.Entry
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Entries(tx)

		e, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		patch.Apply(e)

		updated, err = repo.Update(ctx, e)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "update", userID, fmt.Errorf("entry %s: %w", id, err))
	}

	updated.Password = ""
	return updated, nil
}

func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	if !validEntryID(id) {
		return common.ErrorNotFound
	}

	err := s.repos.Entries(s.db).Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return s.internal(ctx, "delete", userID, err)
	}
	return nil
}
