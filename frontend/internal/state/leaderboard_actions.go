package state

import (
	"context"

	"github.com/itchan-dev/forumstate/shared/domain"
)

func (c *Coordinator) FetchLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return run(ctx, c, operation[[]domain.LeaderboardEntry]{
		name:    "fetch_leaderboard",
		slot:    slot{store: StoreLeaderboard, busy: &c.leaderboard.loading, err: &c.leaderboard.err},
		call:    c.backend.GetLeaderboard,
		fulfill: c.leaderboard.Load,
	})
}
