// Package models defines the records persisted by the server.
package models

import "time"

// User is a registered identity. PasswordHash embeds its own salt; Salt is
// also kept as hex in a separate column.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
