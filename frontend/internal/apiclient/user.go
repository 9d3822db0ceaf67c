package apiclient

import (
	"context"
	"net/http"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
)

func (c *APIClient) GetOwnProfile(ctx context.Context) (domain.User, error) {
	data, err := call[api.UserData](ctx, c, http.MethodGet, "/users/me", nil)
	if err != nil {
		return domain.User{}, err
	}
	return data.User, nil
}

func (c *APIClient) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	data, err := call[api.UsersData](ctx, c, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	if data.Users == nil {
		return []domain.User{}, nil
	}
	return data.Users, nil
}

func (c *APIClient) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	data, err := call[api.LeaderboardsData](ctx, c, http.MethodGet, "/leaderboards", nil)
	if err != nil {
		return nil, err
	}
	if data.Leaderboards == nil {
		return []domain.LeaderboardEntry{}, nil
	}
	return data.Leaderboards, nil
}
