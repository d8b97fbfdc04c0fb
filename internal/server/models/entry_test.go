package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	assert.Equal(t, "work,mail", JoinTags([]string{" work ", "", "mail"}))
	assert.Equal(t, "", JoinTags(nil))

	assert.Equal(t, []string{"work", "mail"}, SplitTags("work, mail,"))
	assert.Equal(t, []string{}, SplitTags(""))
}

func TestEntryPatch_Apply(t *testing.T) {
	title := "new title"
	pw := "sealed-new"
	e := Entry{Title: "old", UserName: "bob", Password: "sealed-old", Tags: []string{"a"}}

	EntryPatch{Title: &title, Password: &pw}.Apply(&e)

	assert.Equal(t, "new title", e.Title)
	assert.Equal(t, "bob", e.UserName)
	assert.Equal(t, "sealed-new", e.Password)
	assert.Equal(t, []string{"a"}, e.Tags)

	EntryPatch{SetTags: true}.Apply(&e)
	assert.Nil(t, e.Tags)
}
