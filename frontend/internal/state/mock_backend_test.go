package state

import (
	"context"
	"sync"
	"time"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// --- Mocks ---

// MockBackend mocks the Backend interface. Unset funcs succeed with
// predictable data for user-1.
type MockBackend struct {
	registerFunc        func(ctx context.Context, name, email, password string) error
	loginFunc           func(ctx context.Context, email, password string) (string, error)
	getOwnProfileFunc   func(ctx context.Context) (domain.User, error)
	getAllThreadsFunc   func(ctx context.Context) ([]domain.Thread, error)
	getAllUsersFunc     func(ctx context.Context) ([]domain.User, error)
	addThreadFunc       func(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	voteThreadFunc      func(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error)
	getThreadDetailFunc func(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error)
	addCommentFunc      func(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	voteCommentFunc     func(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error)
	getLeaderboardFunc  func(ctx context.Context) ([]domain.LeaderboardEntry, error)

	mu     sync.Mutex
	calls  []string
	tokens []string
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockBackend) Tokens() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}

func (m *MockBackend) ResetCallTracking() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.tokens = nil
}

func (m *MockBackend) Register(ctx context.Context, name, email, password string) error {
	m.record("Register")
	if m.registerFunc != nil {
		return m.registerFunc(ctx, name, email, password)
	}
	return nil
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (string, error) {
	m.record("Login")
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return "token-1", nil
}

func (m *MockBackend) PutAccessToken(token string) {
	m.record("PutAccessToken")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, token)
}

func (m *MockBackend) GetOwnProfile(ctx context.Context) (domain.User, error) {
	m.record("GetOwnProfile")
	if m.getOwnProfileFunc != nil {
		return m.getOwnProfileFunc(ctx)
	}
	return testUser("user-1"), nil
}

func (m *MockBackend) GetAllThreads(ctx context.Context) ([]domain.Thread, error) {
	m.record("GetAllThreads")
	if m.getAllThreadsFunc != nil {
		return m.getAllThreadsFunc(ctx)
	}
	return []domain.Thread{testThread("thread-1", "user-1")}, nil
}

func (m *MockBackend) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	m.record("GetAllUsers")
	if m.getAllUsersFunc != nil {
		return m.getAllUsersFunc(ctx)
	}
	return []domain.User{testUser("user-1")}, nil
}

func (m *MockBackend) AddThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	m.record("AddThread")
	if m.addThreadFunc != nil {
		return m.addThreadFunc(ctx, data)
	}
	t := testThread("thread-new", "user-1")
	t.Title, t.Body, t.Category = data.Title, data.Body, data.Category
	return t, nil
}

func (m *MockBackend) voteThread(ctx context.Context, threadId domain.ThreadId, d domain.VoteDirection) (domain.Vote, error) {
	m.record("VoteThread:" + d.String())
	if m.voteThreadFunc != nil {
		return m.voteThreadFunc(ctx, threadId, d)
	}
	return domain.Vote{Id: "vote-1", UserId: "user-1", ThreadId: threadId, Direction: d}, nil
}

func (m *MockBackend) UpVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return m.voteThread(ctx, threadId, domain.VoteUp)
}

func (m *MockBackend) DownVoteThread(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return m.voteThread(ctx, threadId, domain.VoteDown)
}

func (m *MockBackend) NeutralizeThreadVote(ctx context.Context, threadId domain.ThreadId) (domain.Vote, error) {
	return m.voteThread(ctx, threadId, domain.VoteNeutral)
}

func (m *MockBackend) GetThreadDetail(ctx context.Context, threadId domain.ThreadId) (domain.ThreadDetail, error) {
	m.record("GetThreadDetail")
	if m.getThreadDetailFunc != nil {
		return m.getThreadDetailFunc(ctx, threadId)
	}
	return testDetail(threadId, testComment("comment-1")), nil
}

func (m *MockBackend) AddThreadDetailComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	m.record("AddThreadDetailComment")
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, data)
	}
	c := testComment("comment-new")
	c.ThreadId = data.ThreadId
	c.Content = data.Content
	return c, nil
}

func (m *MockBackend) voteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId, d domain.VoteDirection) (domain.Vote, error) {
	m.record("VoteComment:" + d.String())
	if m.voteCommentFunc != nil {
		return m.voteCommentFunc(ctx, threadId, commentId, d)
	}
	return domain.Vote{Id: "vote-1", UserId: "user-1", ThreadId: threadId, CommentId: commentId, Direction: d}, nil
}

func (m *MockBackend) UpVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return m.voteComment(ctx, threadId, commentId, domain.VoteUp)
}

func (m *MockBackend) DownVoteComment(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return m.voteComment(ctx, threadId, commentId, domain.VoteDown)
}

func (m *MockBackend) NeutralizeCommentVote(ctx context.Context, threadId domain.ThreadId, commentId domain.CommentId) (domain.Vote, error) {
	return m.voteComment(ctx, threadId, commentId, domain.VoteNeutral)
}

func (m *MockBackend) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	m.record("GetLeaderboard")
	if m.getLeaderboardFunc != nil {
		return m.getLeaderboardFunc(ctx)
	}
	return []domain.LeaderboardEntry{{User: testUser("user-1"), Score: 10}}, nil
}

// --- Helpers ---

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testUser(id domain.UserId) domain.User {
	return domain.User{Id: id, Name: "name of " + id, Avatar: "https://avatars.example/" + id}
}

func testThread(id domain.ThreadId, owner domain.UserId) domain.Thread {
	return domain.Thread{
		Id:        id,
		Title:     "title of " + id,
		Body:      "body of " + id,
		Category:  "general",
		CreatedAt: testTime,
		OwnerId:   owner,
		Votes:     domain.Votes{UpVotesBy: []domain.UserId{}, DownVotesBy: []domain.UserId{}},
	}
}

func testComment(id domain.CommentId) domain.Comment {
	return domain.Comment{
		Id:        id,
		Content:   "content of " + id,
		CreatedAt: testTime,
		Owner:     testUser("user-2"),
		Votes:     domain.Votes{UpVotesBy: []domain.UserId{}, DownVotesBy: []domain.UserId{}},
	}
}

func testDetail(id domain.ThreadId, comments ...domain.Comment) domain.ThreadDetail {
	t := testThread(id, "user-1")
	owner := testUser("user-1")
	t.Creator = &owner
	t.TotalComments = len(comments)
	for i := range comments {
		comments[i].ThreadId = id
	}
	return domain.ThreadDetail{Thread: t, Owner: owner, Comments: comments}
}

// gate blocks a mocked call until the test releases it.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) wait(ctx context.Context) error {
	g.started <- struct{}{}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gate) open() { close(g.release) }

// async runs f in a goroutine and reports its error on the returned channel.
func async(f func() error) <-chan error {
	done := make(chan error, 1)
	go func() { done <- f() }()
	return done
}
