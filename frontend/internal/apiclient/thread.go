package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/forumstate/shared/api"
	"github.com/itchan-dev/forumstate/shared/domain"
)

func threadPath(threadId domain.ThreadId) string {
	return fmt.Sprintf("/threads/%s", url.PathEscape(threadId))
}

func (c *APIClient) normalizeThread(t domain.Thread) domain.Thread {
	t.Body = c.sanitize(t.Body)
	t.Votes = t.Votes.Clone()
	return t
}

func (c *APIClient) GetAllThreads(ctx context.Context) ([]domain.Thread, error) {
	data, err := call[api.ThreadsData](ctx, c, http.MethodGet, "/threads", nil)
	if err != nil {
		return nil, err
	}
	threads := make([]domain.Thread, len(data.Threads))
	for i, t := range data.Threads {
		threads[i] = c.normalizeThread(t)
	}
	return threads, nil
}

func (c *APIClient) AddThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	req := api.CreateThreadRequest{
		Title:    creationData.Title,
		Body:     creationData.Body,
		Category: creationData.Category,
	}
	data, err := call[api.ThreadData](ctx, c, http.MethodPost, "/threads", req)
	if err != nil {
		return domain.Thread{}, err
	}
	return c.normalizeThread(data.Thread), nil
}

func (c *APIClient) GetThreadDetail(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error) {
	data, err := call[api.DetailThreadData](ctx, c, http.MethodGet, threadPath(threadId), nil)
	if err != nil {
		return domain.ThreadDetail{}, err
	}
	detail := data.DetailThread.ToDomain()
	detail.Body = c.sanitize(detail.Body)
	for i := range detail.Comments {
		detail.Comments[i].Content = c.sanitize(detail.Comments[i].Content)
	}
	return detail, nil
}

func (c *APIClient) AddThreadDetailComment(ctx context.Context, creationData domain.CommentCreationData) (domain.Comment, error) {
	req := api.CreateCommentRequest{Content: creationData.Content}
	data, err := call[api.CommentData](ctx, c, http.MethodPost, threadPath(creationData.ThreadId)+"/comments", req)
	if err != nil {
		return domain.Comment{}, err
	}
	comment := data.Comment.ToDomain(creationData.ThreadId)
	comment.Content = c.sanitize(comment.Content)
	return comment, nil
}
