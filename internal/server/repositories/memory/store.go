// Package memory keeps users and entries in process memory. It implements
// the same repository contracts as the PostgreSQL store and is used for
// local runs without a database and in transport tests.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/users"
)

type txKey struct{ s *Store }

// Store is safe for concurrent use. WithinTx serializes against every
// other operation and restores the previous state when fn fails, so fn
// holds the whole store for as long as it runs and should do no slow work.
type Store struct {
	mu      sync.Mutex
	users   map[string]models.User
	entries map[string]models.Entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   map[string]models.User{},
		entries: map[string]models.Entry{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{s}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithinTx(ctx context.Context, fn dbx.TxFunc) (err error) {
	if ctx.Value(txKey{s}) != nil {
		return fn(ctx, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	usersSnap := make(map[string]models.User, len(s.users))
	for k, v := range s.users {
		usersSnap[k] = v
	}
	entriesSnap := make(map[string]models.Entry, len(s.entries))
	for k, v := range s.entries {
		entriesSnap[k] = v
	}

	committed := false
	defer func() {
		if !committed {
			s.users = usersSnap
			s.entries = entriesSnap
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{s}, true), nil); err != nil {
		return err
	}
	committed = true
	return nil
}

// RunMigrations has nothing to migrate.
func (s *Store) RunMigrations(context.Context, *sql.DB) error { return nil }

func (s *Store) Users(dbx.DBTX) users.Repository     { return (*userRepo)(s) }
func (s *Store) Entries(dbx.DBTX) entries.Repository { return (*entryRepo)(s) }

type userRepo Store

func (r *userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return nil, common.ErrUsernameTaken
		}
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	for _, u := range s.users {
		if u.UserName == login {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type entryRepo Store

func copyEntry(e models.Entry) *models.Entry {
	e.Tags = append([]string{}, e.Tags...)
	return &e
}

func (r *entryRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	now := s.now()
	stored := *copyEntry(*e)
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.entries[stored.ID] = stored
	return copyEntry(stored), nil
}

func (r *entryRepo) Get(ctx context.Context, id, userID string) (*models.Entry, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return copyEntry(e), nil
}

func (r *entryRepo) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	out := []*models.Entry{}
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, copyEntry(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *entryRepo) Update(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	s := (*Store)(r)
	defer s.lock(ctx)()

	cur, ok := s.entries[e.ID]
	if !ok || cur.UserID != e.UserID {
		return nil, common.ErrorNotFound
	}
	next := *copyEntry(*e)
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.entries[next.ID] = next
	return copyEntry(next), nil
}

func (r *entryRepo) Delete(ctx context.Context, id, userID string) error {
	s := (*Store)(r)
	defer s.lock(ctx)()

	cur, ok := s.entries[id]
	if !ok || cur.UserID != userID {
		return common.ErrorNotFound
	}
	delete(s.entries, id)
	return nil
}
