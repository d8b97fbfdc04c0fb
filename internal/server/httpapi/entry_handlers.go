package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/services"
	"github.com/gorilla/mux"
)

type entryJSON struct {
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

// toEntryJSON renders e. The password is masked unless reveal is set.
func toEntryJSON(e *models.Entry, reveal bool) entryJSON {
	pw := maskedPassword
	if reveal {
		pw = e.Password
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return entryJSON{
		ID: e.ID, UserID: e.UserID, Title: e.Title, UserName: e.UserName, Password: pw,
		URL: e.URL, Notes: e.Notes, Category: e.Category, Tags: tags,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

type entryRequest struct {
	Title    *string  `json:"title"`
	UserName *string  `json:"username"`
	Password *string  `json:"password"`
	URL      *string  `json:"url"`
	Notes    *string  `json:"notes"`
	Category *string  `json:"category"`
	Tags     *tagList `json:"tags"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (req entryRequest) input() services.EntryInput {
	in := services.EntryInput{
		Title:    deref(req.Title),
		UserName: deref(req.UserName),
		Password: deref(req.Password),
		URL:      deref(req.URL),
		Notes:    deref(req.Notes),
		Category: deref(req.Category),
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}
	return in
}

func (req entryRequest) patch() models.EntryPatch {
	p := models.EntryPatch{
		Title:    req.Title,
		UserName: req.UserName,
		Password: req.Password,
		URL:      req.URL,
		Notes:    req.Notes,
		Category: req.Category,
	}
	if req.Tags != nil {
		p.SetTags = true
		p.Tags = *req.Tags
	}
	return p
}

type entryListResponse struct {
	PasswordItems []entryJSON `json:"passwordItems"`
}

type entryResponse struct {
	Message      string    `json:"message,omitempty"`
	PasswordItem entryJSON `json:"passwordItem"`
}

func (s *Server) writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgEntryNotFound)
	case errors.Is(err, common.ErrMissingEntryField):
		writeMessage(w, http.StatusBadRequest, msgEntryMissingFields)
	default:
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	list, err := s.entries.List(r.Context(), userID)
	if err != nil {
		s.writeEntryError(w, err)
		return
	}

	out := make([]entryJSON, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryJSON(e, false))
	}
	writeJSON(w, http.StatusOK, entryListResponse{PasswordItems: out})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	e, err := s.entries.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{PasswordItem: toEntryJSON(e, true)})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req entryRequest
	if err := decodeJSON(r, w, s.maxBody, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	e, err := s.entries.Create(r.Context(), userID, req.input())
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryResponse{Message: msgEntryCreated, PasswordItem: toEntryJSON(e, false)})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req entryRequest
	if err := decodeJSON(r, w, s.maxBody, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	e, err := s.entries.Update(r.Context(), userID, mux.Vars(r)["id"], req.patch())
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Message: msgEntryUpdated, PasswordItem: toEntryJSON(e, false)})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	if err := s.entries.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, msgEntryDeleted)
}

type generateResponse struct {
	Password string `json:"password"`
}

func boolParam(r *http.Request, name string, def bool) bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func (s *Server) handleGeneratePassword(w http.ResponseWriter, r *http.Request) {
	opts := cryptox.DefaultPasswordOptions()
	if n, err := strconv.Atoi(r.URL.Query().Get("length")); err == nil {
		opts.Length = n
	}
	opts.Uppercase = boolParam(r, "includeUppercase", opts.Uppercase)
	opts.Lowercase = boolParam(r, "includeLowercase", opts.Lowercase)
	opts.Numbers = boolParam(r, "includeNumbers", opts.Numbers)
	opts.Symbols = boolParam(r, "includeSymbols", opts.Symbols)

	pw, err := cryptox.GeneratePassword(opts)
	if err != nil {
		s.logger.Error(r.Context(), "generate password failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Password: pw})
}
