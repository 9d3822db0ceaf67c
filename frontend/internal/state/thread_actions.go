package state

import (
	"context"
	"strings"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/itchan-dev/forumstate/shared/validation"
	"golang.org/x/sync/errgroup"
)

func (c *Coordinator) FetchThreads(ctx context.Context) ([]domain.Thread, error) {
	return run(ctx, c, operation[[]domain.Thread]{
		name:    "fetch_threads",
		slot:    c.listSlot(&c.list.loading),
		call:    c.backend.GetAllThreads,
		fulfill: c.list.Load,
	})
}

func (c *Coordinator) FetchUsers(ctx context.Context) ([]domain.User, error) {
	return run(ctx, c, operation[[]domain.User]{
		name:    "fetch_users",
		slot:    c.listSlot(&c.list.loading),
		call:    c.backend.GetAllUsers,
		fulfill: c.list.SetUsers,
	})
}

type threadsAndUsers struct {
	threads []domain.Thread
	users   []domain.User
}

// FetchThreadsAndUsers loads both collections concurrently and resolves every
// thread's creator. Either failure rejects the whole operation.
func (c *Coordinator) FetchThreadsAndUsers(ctx context.Context) ([]domain.Thread, error) {
	res, err := run(ctx, c, operation[threadsAndUsers]{
		name: "fetch_threads_and_users",
		slot: c.listSlot(&c.list.loading),
		call: func(ctx context.Context) (threadsAndUsers, error) {
			var out threadsAndUsers
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				threads, err := c.backend.GetAllThreads(gctx)
				out.threads = threads
				return err
			})
			g.Go(func() error {
				users, err := c.backend.GetAllUsers(gctx)
				out.users = users
				return err
			})
			if err := g.Wait(); err != nil {
				return threadsAndUsers{}, err
			}
			out.threads = withCreators(out.threads, out.users)
			return out, nil
		},
		fulfill: func(res threadsAndUsers) {
			c.list.SetUsers(res.users)
			c.list.Load(res.threads)
		},
	})
	return res.threads, err
}

// EnsureThreads fetches threads and users only when the list is empty.
func (c *Coordinator) EnsureThreads(ctx context.Context) error {
	c.mu.Lock()
	empty := len(c.list.ids) == 0
	c.mu.Unlock()
	if !empty {
		return nil
	}
	_, err := c.FetchThreadsAndUsers(ctx)
	return err
}

func (c *Coordinator) AddThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	req := api.CreateThreadRequest{
		Title:    strings.TrimSpace(creationData.Title),
		Body:     strings.TrimSpace(creationData.Body),
		Category: strings.TrimSpace(creationData.Category),
	}
	if err := validation.Struct(req); err != nil {
		return domain.Thread{}, err
	}
	if _, err := c.requireUser("add_thread"); err != nil {
		return domain.Thread{}, err
	}

	data := domain.ThreadCreationData{Title: req.Title, Body: c.render(req.Body), Category: req.Category}
	return run(ctx, c, operation[domain.Thread]{
		name: "add_thread",
		slot: c.listSlot(&c.list.posting),
		call: func(ctx context.Context) (domain.Thread, error) {
			return c.backend.AddThread(ctx, data)
		},
		fulfill: c.list.AddThread,
	})
}

func (c *Coordinator) UpVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.VoteThread(ctx, threadId, domain.VoteUp)
}

func (c *Coordinator) DownVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.VoteThread(ctx, threadId, domain.VoteDown)
}

func (c *Coordinator) NeutralizeThreadVote(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return c.VoteThread(ctx, threadId, domain.VoteNeutral)
}

// VoteThread casts d on threadId and reconciles the result into every view
// showing the thread.
func (c *Coordinator) VoteThread(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error) {
	if threadId == "" {
		return domain.Vote{}, &internal_errors.ValidationError{Field: "threadId", Message: "is required"}
	}
	name, call, err := c.threadVoteCall(d)
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
	key := threadVoteKey(user.Id, threadId)
	generation := c.fence.next(key)
	c.mu.Unlock()

	return run(ctx, c, operation[domain.Vote]{
		name: name,
		slot: c.listSlot(&c.list.voting),
		call: func(ctx context.Context) (domain.Vote, error) {
			return call(ctx, threadId)
		},
		fulfill: func(vote domain.Vote) {
			if !c.fence.accept(key, generation) {
				staleVotesDropped.Inc()
				c.log.Debug("stale vote dropped", "thread_id", threadId, "direction", d)
				return
			}
			if vote.UserId == "" {
				vote.UserId = user.Id
			}
			vote.ThreadId = threadId
			c.list.ApplyVote(threadId, vote)
			c.detail.ApplyThreadVote(vote)
		},
	})
}

// ToggleThreadVote casts d, or neutralizes the vote if the user already holds d.
func (c *Coordinator) ToggleThreadVote(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error) {
	c.mu.Lock()
	if user := c.currentUser(); user != nil {
		if t := c.table.get(threadId); t != nil {
			d = t.Votes.Toggle(user.Id, d)
		}
	}
	c.mu.Unlock()
	return c.VoteThread(ctx, threadId, d)
}

type threadVoteFunc func(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error)

func (c *Coordinator) threadVoteCall(d domain.VoteDirection) (string, threadVoteFunc, error) {
	switch d {
	case domain.VoteUp:
		return "up_vote_thread", c.backend.UpVoteThread, nil
	case domain.VoteDown:
		return "down_vote_thread", c.backend.DownVoteThread, nil
	case domain.VoteNeutral:
		return "neutralize_thread_vote", c.backend.NeutralizeThreadVote, nil
	}
	return "", nil, &internal_errors.ValidationError{Field: "direction", Message: "must be one of [up down neutral]"}
}
