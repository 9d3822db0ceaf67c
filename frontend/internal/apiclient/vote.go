package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
)

// votePaths maps a direction onto the backend's vote endpoint suffix.
var votePaths = map[domain.VoteDirection]string{
	domain.VoteUp:      "up-vote",
	domain.VoteDown:    "down-vote",
	domain.VoteNeutral: "neutral-vote",
}

func (c *APIClient) voteThread(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error) {
	path := fmt.Sprintf("%s/%s", threadPath(threadId), votePaths[d])
	data, err := call[api.VoteData](ctx, c, http.MethodPost, path, nil)
	if err != nil {
		return domain.Vote{}, err
	}
	return data.Vote.ToDomain(threadId, ""), nil
}

func (c *APIClient) voteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error) {
	path := fmt.Sprintf("%s/comments/%s/%s", threadPath(threadId), url.PathEscape(commentId), votePaths[d])
	data, err := call[api.VoteData](ctx, c, http.MethodPost, path, nil)
	if err != nil {
		return domain.Vote{}, err
	}
	return data.Vote.ToDomain(threadId, commentId), nil
}

func (c *APIClient) UpVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.voteThread(ctx, threadId, domain.VoteUp)
}

func (c *APIClient) DownVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.voteThread(ctx, threadId, domain.VoteDown)
}

func (c *APIClient) NeutralizeThreadVote(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.voteThread(ctx, threadId, domain.VoteNeutral)
}

func (c *APIClient) UpVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.voteComment(ctx, threadId, commentId, domain.VoteUp)
}

func (c *APIClient) DownVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.voteComment(ctx, threadId, commentId, domain.VoteDown)
}

func (c *APIClient) NeutralizeCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.voteComment(ctx, threadId, commentId, domain.VoteNeutral)
}
