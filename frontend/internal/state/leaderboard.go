package state

import (
	"slices"

	"github.com/itchan-dev/forumstate/shared/domain"
)

type LeaderboardStore struct {
	entries []domain.LeaderboardEntry

	loading busy
	err     string
}

func (s *LeaderboardStore) Load(entries []domain.LeaderboardEntry) {
	s.entries = slices.Clone(entries)
}

func (s *LeaderboardStore) reset() {
	s.entries = nil
	s.loading.clear()
	s.err = ""
}

func (s *LeaderboardStore) Snapshot() Leaderboard {
	entries := slices.Clone(s.entries)
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return Leaderboard{Entries: entries, Loading: s.loading.active(), Error: s.err}
}

type Leaderboard struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Loading bool                      `json:"loading"`
	Error   string                    `json:"error,omitempty"`
}
