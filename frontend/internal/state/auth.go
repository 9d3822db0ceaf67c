package state

import "github.com/itchan-dev/forumstate/shared/domain"

// AuthStore holds the authenticated user and the access token that proves it.
type AuthStore struct {
	user  *domain.User
	token string

	loading busy
	err     string
}

func (s *AuthStore) login(user domain.User, token string) {
	s.user = &user
	s.token = token
}

func (s *AuthStore) logout() {
	s.user = nil
	s.token = ""
}

func (s *AuthStore) reset() {
	s.logout()
	s.loading.clear()
	s.err = ""
}

func (s *AuthStore) Snapshot() Auth {
	a := Auth{Loading: s.loading.active(), Error: s.err}
	if s.user != nil {
		u := *s.user
		a.User = &u
	}
	return a
}

// Auth is a copy of the session state. Authenticated is filled in by the
// Coordinator, which also knows whether the token has expired.
type Auth struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	Error         string       `json:"error,omitempty"`
}
