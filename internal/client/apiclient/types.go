package apiclient

import "time"

type User struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type Profile struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	UserName  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryInput is sent on create and update. Nil fields are omitted, so an
// update only touches what is set.
type EntryInput struct {
	Title    *string   `json:"title,omitempty"`
	UserName *string   `json:"username,omitempty"`
	Password *string   `json:"password,omitempty"`
	URL      *string   `json:"url,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

type GenerateOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type meResponse struct {
	User Profile `json:"user"`
}

type entryListResponse struct {
	PasswordItems []Entry `json:"passwordItems"`
}

type entryResponse struct {
	Message      string `json:"message"`
	PasswordItem Entry  `json:"passwordItem"`
}

type generateResponse struct {
	Password string `json:"password"`
}
