package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe, s.recoverPanics)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	a := r.PathPrefix("/api/auth").Subrouter()
	a.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	a.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	a.Handle("/me", s.requireAuth(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)

	p := r.PathPrefix("/api/passwords").Subrouter()
	p.Use(s.requireAuth)
	// registered before /{id} so that "generate" is not taken for an id
	p.HandleFunc("/generate/password", s.handleGeneratePassword).Methods(http.MethodGet)
	p.HandleFunc("", s.handleListEntries).Methods(http.MethodGet)
	p.HandleFunc("/", s.handleListEntries).Methods(http.MethodGet)
	p.HandleFunc("", s.handleCreateEntry).Methods(http.MethodPost)
	p.HandleFunc("/", s.handleCreateEntry).Methods(http.MethodPost)
	p.HandleFunc("/{id}", s.handleGetEntry).Methods(http.MethodGet)
	p.HandleFunc("/{id}", s.handleUpdateEntry).Methods(http.MethodPut)
	p.HandleFunc("/{id}", s.handleDeleteEntry).Methods(http.MethodDelete)

	return r
}
