package handler

import (
	"net/http"

	"github.com/itchan-dev/forumstate/shared/utils"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.forum.Leaderboard())
}

func (h *Handler) RefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	_, err := h.forum.FetchLeaderboard(r.Context())
	h.respond(w, r, err, func() any { return h.forum.Leaderboard() })
}
