package apiclient

import (
	"context"
	"net/http"

	"github.com/itchan-dev/forumstate/shared/api"
)

// Register creates an account. It does not log in.
func (c *APIClient) Register(ctx context.Context, name, email, password string) error {
	req := api.RegisterRequest{Name: name, Email: email, Password: password}
	_, err := call[api.UserData](ctx, c, http.MethodPost, "/register", req)
	return err
}

// Login exchanges credentials for an access token. The token is not stored:
// callers decide when to PutAccessToken.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	req := api.LoginRequest{Email: email, Password: password}
	data, err := call[api.TokenData](ctx, c, http.MethodPost, "/login", req)
	if err != nil {
		return "", err
	}
	return data.Token, nil
}
