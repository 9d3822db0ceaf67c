package state

import (
	"context"
	"strings"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/itchan-dev/forumstate/shared/validation"
)

// FetchThreadDetail opens threadId. Overlapping fetches are not fenced:
// whichever resolves last is shown.
func (c *Coordinator) FetchThreadDetail(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error) {
	if threadId == "" {
		return domain.ThreadDetail{}, &internal_errors.ValidationError{Field: "threadId", Message: "is required"}
	}
	return run(ctx, c, operation[domain.ThreadDetail]{
		name: "fetch_thread_detail",
		slot: c.detailSlot(&c.detail.loading),
		call: func(ctx context.Context) (domain.ThreadDetail, error) {
			return c.backend.GetThreadDetail(ctx, threadId)
		},
		fulfill: c.detail.Load,
	})
}

func (c *Coordinator) AddComment(ctx context.Context, threadId domain.ThreadId, content domain.CommentText) (domain.Comment, error) {
	if threadId == "" {
		return domain.Comment{}, &internal_errors.ValidationError{Field: "threadId", Message: "is required"}
	}
	req := api.CreateCommentRequest{Content: strings.TrimSpace(content)}
	if err := validation.Struct(req); err != nil {
		return domain.Comment{}, err
	}
	if _, err := c.requireUser("add_comment"); err != nil {
		return domain.Comment{}, err
	}

	data := domain.CommentCreationData{ThreadId: threadId, Content: c.render(req.Content)}
	return run(ctx, c, operation[domain.Comment]{
		name: "add_comment",
		slot: c.detailSlot(&c.detail.uploading),
		call: func(ctx context.Context) (domain.Comment, error) {
			return c.backend.AddThreadDetailComment(ctx, data)
		},
		fulfill: func(comment domain.Comment) {
			if comment.ThreadId == "" {
				comment.ThreadId = threadId
			}
			c.detail.AddComment(comment)
		},
	})
}

func (c *Coordinator) UpVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.VoteComment(ctx, threadId, commentId, domain.VoteUp)
}

func (c *Coordinator) DownVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.VoteComment(ctx, threadId, commentId, domain.VoteDown)
}

func (c *Coordinator) NeutralizeCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return c.VoteComment(ctx, threadId, commentId, domain.VoteNeutral)
}

// VoteComment casts d on a comment of threadId. The result applies only while
// threadId is still the open thread.
func (c *Coordinator) VoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error) {
	if threadId == "" {
		return domain.Vote{}, &internal_errors.ValidationError{Field: "threadId", Message: "is required"}
	}
	if commentId == "" {
		return domain.Vote{}, &internal_errors.ValidationError{Field: "commentId", Message: "is required"}
	}
	name, call, err := c.commentVoteCall(d)
	if err != nil {
		return domain.Vote{}, err
	}

	c.mu.Lock()
	user := c.currentUser()
	if user == nil {
		c.mu.Unlock()
		c.log.Debug("intent short-circuited", "intent", name, "error", internal_errors.ErrAuthRequired)
		return domain.Vote{}, internal_errors.ErrAuthRequired
	}
	key := commentVoteKey(user.Id, threadId, commentId)
	generation := c.fence.next(key)
	c.mu.Unlock()

	return run(ctx, c, operation[domain.Vote]{
		name: name,
		slot: c.detailSlot(&c.detail.voting),
		call: func(ctx context.Context) (domain.Vote, error) {
			return call(ctx, threadId, commentId)
		},
		fulfill: func(vote domain.Vote) {
			if !c.fence.accept(key, generation) {
				staleVotesDropped.Inc()
				c.log.Debug("stale vote dropped", "thread_id", threadId, "comment_id", commentId, "direction", d)
				return
			}
			if vote.UserId == "" {
				vote.UserId = user.Id
			}
			vote.ThreadId = threadId
			c.detail.ApplyCommentVote(commentId, vote)
		},
	})
}

// ToggleCommentVote casts d, or neutralizes the vote if the user already holds d.
func (c *Coordinator) ToggleCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error) {
	c.mu.Lock()
	if user := c.currentUser(); user != nil && c.detail.holds(threadId) {
		if comment := c.detail.comment(commentId); comment != nil {
			d = comment.Votes.Toggle(user.Id, d)
		}
	}
	c.mu.Unlock()
	return c.VoteComment(ctx, threadId, commentId, d)
}

type commentVoteFunc func(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error)

func (c *Coordinator) commentVoteCall(d domain.VoteDirection) (string, commentVoteFunc, error) {
	switch d {
	case domain.VoteUp:
		return "up_vote_comment", c.backend.UpVoteComment, nil
	case domain.VoteDown:
		return "down_vote_comment", c.backend.DownVoteComment, nil
	case domain.VoteNeutral:
		return "neutralize_comment_vote", c.backend.NeutralizeCommentVote, nil
	}
	return "", nil, &internal_errors.ValidationError{Field: "direction", Message: "must be one of [up down neutral]"}
}
