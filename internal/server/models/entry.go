package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// Entry is a stored credential. Password holds the sealed form as written
// to the database; services open it before returning it to the owner.
type Entry struct {
	ID        string
	UserID    string
	Title     string
	UserName  string
	Password  string
	URL       string
	Notes     string
	Category  string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JoinTags produces the comma-separated column value.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, common.TagSeparator)
}

// SplitTags is the inverse of JoinTags. An empty column yields an empty,
// non-nil slice.
func SplitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, common.TagSeparator) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// EntryPatch carries the fields of a partial update. Nil means unchanged.
type EntryPatch struct {
	Title    *string
	UserName *string
	Password *string
	URL      *string
	Notes    *string
	Category *string
	Tags     []string
	SetTags  bool
}

// Apply copies the present fields onto e.
func (p EntryPatch) Apply(e *Entry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.UserName != nil {
		e.UserName = *p.UserName
	}
	if p.Password != nil {
		e.Password = *p.Password
	}
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.SetTags {
		e.Tags = p.Tags
	}
}
