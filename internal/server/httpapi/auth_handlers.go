package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/dmitrijs2005/passvault/internal/server/services"
)

type credentialsRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type publicUser struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
}

type authResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    publicUser `json:"user"`
}

type profileUser struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type meResponse struct {
	User profileUser `json:"user"`
}

func newAuthResponse(msg string, res *services.AuthResult) authResponse {
	return authResponse{
		Message: msg,
		Token:   res.Token,
		User:    publicUser{ID: res.User.ID, UserName: res.User.UserName},
	}
}

func (s *Server) observeAuth(op, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveAuth(op, outcome)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, w, s.maxBody, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	res, err := s.users.Register(r.Context(), req.UserName, req.Password)
	switch {
	case err == nil:
		s.observeAuth("register", metrics.OutcomeOK)
		writeJSON(w, http.StatusCreated, newAuthResponse(msgRegistered, res))
	case errors.Is(err, common.ErrMissingField):
		s.observeAuth("register", metrics.OutcomeRejected)
		writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
	case errors.Is(err, common.ErrUsernameTaken):
		s.observeAuth("register", metrics.OutcomeRejected)
		writeMessage(w, http.StatusBadRequest, msgUsernameTaken)
	default:
		s.observeAuth("register", metrics.OutcomeError)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, w, s.maxBody, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	res, err := s.users.Login(r.Context(), req.UserName, req.Password)
	switch {
	case err == nil:
		s.observeAuth("login", metrics.OutcomeOK)
		writeJSON(w, http.StatusOK, newAuthResponse(msgLoggedIn, res))
	case errors.Is(err, common.ErrMissingField):
		s.observeAuth("login", metrics.OutcomeRejected)
		writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
	case errors.Is(err, common.ErrInvalidCredentials):
		s.observeAuth("login", metrics.OutcomeRejected)
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
	default:
		s.observeAuth("login", metrics.OutcomeError)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	u, err := s.users.Identify(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, meResponse{User: profileUser{
			ID: u.ID, UserName: u.UserName, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
		}})
	case errors.Is(err, common.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
	default:
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, msgRoot)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: s.now().UTC()})
}
