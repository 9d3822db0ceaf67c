package state

import (
	"context"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// Backend is the forum API the stores are fed from.
// Every call may fail with an error whose message is shown to the user verbatim.
type Backend interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	PutAccessToken(token string)
	GetOwnProfile(ctx context.Context) (domain.User, error)

	GetAllThreads(ctx context.Context) ([]domain.Thread, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	AddThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error)
	UpVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error)
	DownVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error)
	NeutralizeThreadVote(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error)

	GetThreadDetail(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error)
	AddThreadDetailComment(ctx context.Context, creationData domain.CommentCreationData) (domain.Comment, error)
	UpVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error)
	DownVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error)
	NeutralizeCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error)

	GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Renderer turns user-typed markdown into the HTML that is submitted.
type Renderer interface {
	Render(text string) string
}
