package state

import (
	"context"
	"strings"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
	"github.com/itchan-dev/forumstate/shared/validation"
)

type session struct {
	user  domain.User
	token string
}

func (c *Coordinator) authSlot() slot {
	return slot{store: StoreAuth, busy: &c.auth.loading, err: &c.auth.err}
}

// Register creates an account without logging in.
func (c *Coordinator) Register(ctx context.Context, name, email, password string) error {
	req := api.RegisterRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(req); err != nil {
		return err
	}
	_, err := run(ctx, c, operation[struct{}]{
		name: "register",
		slot: c.authSlot(),
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.backend.Register(ctx, req.Name, req.Email, req.Password)
		},
	})
	return err
}

// Login obtains a token, installs it and fetches the own profile.
func (c *Coordinator) Login(ctx context.Context, email, password string) (domain.User, error) {
	req := api.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(req); err != nil {
		return domain.User{}, err
	}
	s, err := run(ctx, c, c.signIn("login", func(ctx context.Context) error { return nil }, req))
	return s.user, err
}

// RegisterAndLogin registers, then logs in with the same credentials.
func (c *Coordinator) RegisterAndLogin(ctx context.Context, name, email, password string) (domain.User, error) {
	req := api.RegisterRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(req); err != nil {
		return domain.User{}, err
	}
	register := func(ctx context.Context) error {
		return c.backend.Register(ctx, req.Name, req.Email, req.Password)
	}
	s, err := run(ctx, c, c.signIn("register_user", register, api.LoginRequest{Email: req.Email, Password: req.Password}))
	return s.user, err
}

func (c *Coordinator) signIn(name string, before func(ctx context.Context) error, req api.LoginRequest) operation[session] {
	return operation[session]{
		name: name,
		slot: c.authSlot(),
		call: func(ctx context.Context) (session, error) {
			if err := before(ctx); err != nil {
				return session{}, err
			}
			token, err := c.backend.Login(ctx, req.Email, req.Password)
			if err != nil {
				return session{}, err
			}
			c.backend.PutAccessToken(token)
			user, err := c.backend.GetOwnProfile(ctx)
			if err != nil {
				return session{}, err
			}
			return session{user: user, token: token}, nil
		},
		fulfill: func(s session) {
			c.auth.login(s.user, s.token)
		},
		reject: func(error) {
			// the backend may already hold the new token
			c.backend.PutAccessToken(c.auth.token)
		},
	}
}

// FetchProfile refreshes the own profile. A rejection means the session is
// no longer valid and clears the user.
func (c *Coordinator) FetchProfile(ctx context.Context) (domain.User, error) {
	return run(ctx, c, operation[domain.User]{
		name: "fetch_profile",
		slot: c.authSlot(),
		call: c.backend.GetOwnProfile,
		fulfill: func(user domain.User) {
			c.auth.user = &user
		},
		reject: func(error) {
			c.auth.user = nil
		},
	})
}
