// Package session keeps the CLI login between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/filex"
)

var ErrNotLoggedIn = errors.New("not logged in, run `passvault login` first")

// Session is the persisted login state. Only the bearer token and the
// identity it was issued for are stored.
type Session struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"username"`
	Token     string    `json:"token"`
	ServerURL string    `json:"server_url"`
	SavedAt   time.Time `json:"saved_at"`

	path string
}

// Load reads the session at path. A missing file yields an empty session.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	s.path = path
	return &s, nil
}

func (s *Session) Path() string { return s.path }

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// RequireToken returns the token or ErrNotLoggedIn.
func (s *Session) RequireToken() (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return s.Token, nil
}

// Save writes the session with owner-only permissions.
func (s *Session) Save() error {
	if s.path == "" {
		return errors.New("session has no file path")
	}
	s.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return filex.WriteFileAtomic(s.path, data, 0o600)
}

// Clear forgets the login and removes the file.
func (s *Session) Clear() error {
	s.UserID, s.UserName, s.Token, s.ServerURL = "", "", "", ""
	s.SavedAt = time.Time{}

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
