package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/itchan-dev/forumstate/frontend/internal/state"
	"github.com/itchan-dev/forumstate/shared/domain"
	"github.com/itchan-dev/forumstate/shared/logger"
	"github.com/itchan-dev/forumstate/shared/utils"
)

// Forum is the state layer the bridge exposes. *state.Coordinator implements it.
type Forum interface {
	State() state.State
	Threads() state.ThreadList
	Detail() state.Detail
	Auth() state.Auth
	Leaderboard() state.Leaderboard
	Subscribe(buffer int) (<-chan state.Event, func())

	FetchThreadsAndUsers(ctx context.Context) ([]domain.Thread, error)
	AddThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error)
	VoteThread(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error)
	ToggleThreadVote(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error)

	FetchThreadDetail(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error)
	LeaveThread()
	AddComment(ctx context.Context, threadId domain.ThreadId, content domain.CommentText) (domain.Comment, error)
	VoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error)
	ToggleCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error)

	RegisterAndLogin(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	FetchProfile(ctx context.Context) (domain.User, error)
	Logout()

	FetchLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type Handler struct {
	forum          Forum
	allowedOrigins []string
	log            *slog.Logger
}

// New creates the bridge handler. An empty allowedOrigins accepts any
// origin on the event feed.
func New(forum Forum, allowedOrigins []string) *Handler {
	return &Handler{
		forum:          forum,
		allowedOrigins: allowedOrigins,
		log:            logger.Log.With("component", "bridge"),
	}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.forum.State())
}

// Health is a liveness probe endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// respond writes snapshot on success and the intent error otherwise.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, err error, snapshot func() any) {
	if err != nil {
		h.log.Debug("intent failed", "path", r.URL.Path, "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snapshot())
}
