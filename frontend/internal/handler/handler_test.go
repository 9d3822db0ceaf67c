package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/itchan-dev/forumstate/frontend/internal/state"
	"github.com/itchan-dev/forumstate/shared/domain"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend serves a fixed forum. detailErr, when set, fails detail fetches.
type stubBackend struct {
	detailErr error
}

var stubUser = domain.User{Id: "user-1", Name: "Ann"}

func stubThread(id domain.ThreadId, category domain.Category) domain.Thread {
	return domain.Thread{
		Id: id, Title: "title " + id, Body: "body", Category: category, OwnerId: "user-1",
		Votes: domain.Votes{UpVotesBy: []domain.UserId{}, DownVotesBy: []domain.UserId{}},
	}
}

func (s *stubBackend) Register(ctx context.Context, name, email, password string) error { return nil }
func (s *stubBackend) Login(ctx context.Context, email, password string) (string, error) {
	return "token", nil
}
func (s *stubBackend) PutAccessToken(token string) {}
func (s *stubBackend) GetOwnProfile(ctx context.Context) (domain.User, error) {
	return stubUser, nil
}
func (s *stubBackend) GetAllThreads(ctx context.Context) ([]domain.Thread, error) {
	return []domain.Thread{stubThread("thread-1", "go"), stubThread("thread-2", "rust")}, nil
}
func (s *stubBackend) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return []domain.User{stubUser}, nil
}
func (s *stubBackend) AddThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	t := stubThread("thread-new", data.Category)
	t.Title = data.Title
	return t, nil
}
func (s *stubBackend) vote(threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error) {
	return domain.Vote{UserId: "user-1", ThreadId: threadId, CommentId: commentId, Direction: d}, nil
}
func (s *stubBackend) UpVoteThread(ctx context.Context, id domain.ThreadId) (domain.Vote, error) {
	return s.vote(id, "", domain.VoteUp)
}
func (s *stubBackend) DownVoteThread(ctx context.Context, id domain.ThreadId) (domain.Vote, error) {
	return s.vote(id, "", domain.VoteDown)
}
func (s *stubBackend) NeutralizeThreadVote(ctx context.Context, id domain.ThreadId) (domain.Vote, error) {
	return s.vote(id, "", domain.VoteNeutral)
}
func (s *stubBackend) GetThreadDetail(ctx context.Context, id domain.ThreadId) (domain.ThreadDetail, error) {
	if s.detailErr != nil {
		return domain.ThreadDetail{}, s.detailErr
	}
	comment := domain.Comment{Id: "comment-1", ThreadId: id, Content: "first", Owner: stubUser,
		Votes: domain.Votes{UpVotesBy: []domain.UserId{}, DownVotesBy: []domain.UserId{}}}
	return domain.ThreadDetail{Thread: stubThread(id, "go"), Owner: stubUser, Comments: []domain.Comment{comment}}, nil
}
func (s *stubBackend) AddThreadDetailComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	return domain.Comment{Id: "comment-new", ThreadId: data.ThreadId, Content: data.Content, Owner: stubUser}, nil
}
func (s *stubBackend) UpVoteComment(ctx context.Context, t domain.ThreadId, c domain.CommentId) (domain.Vote, error) {
	return s.vote(t, c, domain.VoteUp)
}
func (s *stubBackend) DownVoteComment(ctx context.Context, t domain.ThreadId, c domain.CommentId) (domain.Vote, error) {
	return s.vote(t, c, domain.VoteDown)
}
func (s *stubBackend) NeutralizeCommentVote(ctx context.Context, t domain.ThreadId, c domain.CommentId) (domain.Vote, error) {
	return s.vote(t, c, domain.VoteNeutral)
}
func (s *stubBackend) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return []domain.LeaderboardEntry{{User: stubUser, Score: 5}}, nil
}

func setupTestHandler(backend state.Backend) (*state.Coordinator, *chi.Mux) {
	forum := state.NewCoordinator(backend)
	h := New(forum, nil)

	r := chi.NewRouter()
	r.Get("/v1/state", h.GetState)
	r.Get("/v1/threads", h.GetThreads)
	r.Post("/v1/threads", h.CreateThread)
	r.Post("/v1/threads/refresh", h.RefreshThreads)
	r.Post("/v1/threads/{threadId}/vote", h.VoteThread)
	r.Post("/v1/threads/{threadId}/comments", h.CreateComment)
	r.Post("/v1/threads/{threadId}/comments/{commentId}/vote", h.VoteComment)
	r.Get("/v1/detail", h.GetDetail)
	r.Post("/v1/detail/{threadId}", h.OpenThread)
	r.Delete("/v1/detail", h.LeaveThread)
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)
	r.Post("/v1/leaderboard/refresh", h.RefreshLeaderboard)
	r.Get("/v1/events", h.Events)
	return forum, r
}

func do(t *testing.T, router http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func login(t *testing.T, router http.Handler) {
	t.Helper()
	rr := do(t, router, http.MethodPost, "/v1/auth/login", `{"email":"ann@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestThreadsEndpoints(t *testing.T) {
	_, router := setupTestHandler(&stubBackend{})

	rr := do(t, router, http.MethodPost, "/v1/threads/refresh", "")
	require.Equal(t, http.StatusOK, rr.Code)
	refreshed := decodeBody[threadsResponse](t, rr)
	assert.Len(t, refreshed.Threads, 2)
	assert.Equal(t, []domain.Category{"go", "rust"}, refreshed.Categories)
	assert.False(t, refreshed.Loading)

	rr = do(t, router, http.MethodGet, "/v1/threads?category=rust", "")
	require.Equal(t, http.StatusOK, rr.Code)
	filtered := decodeBody[threadsResponse](t, rr)
	require.Len(t, filtered.Threads, 1)
	assert.Equal(t, "thread-2", filtered.Threads[0].Id)
}

func TestCreateThread(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		_, router := setupTestHandler(&stubBackend{})
		rr := do(t, router, http.MethodPost, "/v1/threads", `{"title":"t","body":"b"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"message":"authentication required"}`, rr.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		_, router := setupTestHandler(&stubBackend{})
		login(t, router)
		rr := do(t, router, http.MethodPost, "/v1/threads", `{"title":"","body":"b"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"message":"title: is required"}`, rr.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		_, router := setupTestHandler(&stubBackend{})
		rr := do(t, router, http.MethodPost, "/v1/threads", `{`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"message":"Body is invalid json"}`, rr.Body.String())
	})

	t.Run("prepends", func(t *testing.T) {
		_, router := setupTestHandler(&stubBackend{})
		login(t, router)
		require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/threads/refresh", "").Code)

		rr := do(t, router, http.MethodPost, "/v1/threads", `{"title":"Hello","body":"b","category":"go"}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[threadsResponse](t, rr)
		require.Len(t, resp.Threads, 3)
		assert.Equal(t, "thread-new", resp.Threads[0].Id)
		assert.False(t, resp.Posting)
	})
}

func TestVoteThroughBridge(t *testing.T) {
	forum, router := setupTestHandler(&stubBackend{})
	login(t, router)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/threads/refresh", "").Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/detail/thread-1", "").Code)

	rr := do(t, router, http.MethodPost, "/v1/threads/thread-1/vote", `{"direction":"up"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	st := decodeBody[state.State](t, rr)
	assert.Equal(t, []domain.UserId{"user-1"}, st.Threads.Threads[0].UpVotesBy)
	assert.Equal(t, []domain.UserId{"user-1"}, st.Detail.Thread.UpVotesBy)

	rr = do(t, router, http.MethodPost, "/v1/threads/thread-1/vote?toggle=true", `{"direction":"up"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, forum.Threads().Threads[0].UpVotesBy)

	rr = do(t, router, http.MethodPost, "/v1/threads/thread-1/comments/comment-1/vote", `{"direction":"down"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decodeBody[state.Detail](t, rr)
	assert.Equal(t, []domain.UserId{"user-1"}, detail.Thread.Comments[0].DownVotesBy)

	rr = do(t, router, http.MethodPost, "/v1/threads/thread-1/vote", `{"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCommentsAndDetail(t *testing.T) {
	_, router := setupTestHandler(&stubBackend{})
	login(t, router)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/detail/thread-1", "").Code)

	rr := do(t, router, http.MethodPost, "/v1/threads/thread-1/comments", `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"content: is required"}`, rr.Body.String())

	rr = do(t, router, http.MethodPost, "/v1/threads/thread-1/comments", `{"content":"second"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decodeBody[state.Detail](t, rr)
	require.Len(t, detail.Thread.Comments, 2)
	assert.Equal(t, "comment-new", detail.Thread.Comments[0].Id)

	rr = do(t, router, http.MethodDelete, "/v1/detail", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decodeBody[state.Detail](t, rr).Thread)
}

func TestBackendErrorPropagates(t *testing.T) {
	backend := &stubBackend{detailErr: &internal_errors.ErrorWithStatusCode{Message: "thread not found", StatusCode: http.StatusNotFound}}
	forum, router := setupTestHandler(backend)

	rr := do(t, router, http.MethodPost, "/v1/detail/thread-404", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"thread not found"}`, rr.Body.String())
	assert.Equal(t, "thread not found", forum.Detail().Error)
}

func TestLogoutAndState(t *testing.T) {
	_, router := setupTestHandler(&stubBackend{})
	login(t, router)

	rr := do(t, router, http.MethodGet, "/v1/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[state.State](t, rr).Auth.Authenticated)

	rr = do(t, router, http.MethodPost, "/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, rr.Code)
	a := decodeBody[state.Auth](t, rr)
	assert.False(t, a.Authenticated)
	assert.Nil(t, a.User)
}

func TestEventsFeed(t *testing.T) {
	_, router := setupTestHandler(&stubBackend{})
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := http.Post(srv.URL+"/v1/leaderboard/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var pending, fulfilled state.Event
	require.NoError(t, conn.ReadJSON(&pending))
	require.NoError(t, conn.ReadJSON(&fulfilled))
	assert.Equal(t, state.StoreLeaderboard, pending.Store)
	assert.Equal(t, state.PhasePending, pending.Phase)
	assert.Equal(t, state.PhaseFulfilled, fulfilled.Phase)
	assert.Equal(t, "fetch_leaderboard", fulfilled.Operation)
}
