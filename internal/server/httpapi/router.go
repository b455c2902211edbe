package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.Use(s.logRequests)
	r.Use(s.identify)

	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/register", s.handleRegister).Methods("POST")

	r.Handle("/users", s.requireLoggedIn(http.HandlerFunc(s.handleListUsers))).Methods("GET")
	r.Handle("/users/{username}", s.requireSelf(http.HandlerFunc(s.handleGetUser))).Methods("GET")
	r.Handle("/users/{username}/from", s.requireSelf(http.HandlerFunc(s.handleMessagesFrom))).Methods("GET")
	r.Handle("/users/{username}/to", s.requireSelf(http.HandlerFunc(s.handleMessagesTo))).Methods("GET")

	return r
}
