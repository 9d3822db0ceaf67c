package state

import (
	"slices"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// ThreadListStore is the landing view: every thread summary plus the users
// needed to resolve creators.
type ThreadListStore struct {
	table *entityTable
	ids   []domain.ThreadId
	users []domain.User

	loading busy
	posting busy
	voting  busy
	err     string
}

// NewThreadListStore returns a list view over its own entity table.
func NewThreadListStore() *ThreadListStore {
	return newThreadListStore(newEntityTable())
}

func newThreadListStore(table *entityTable) *ThreadListStore {
	return &ThreadListStore{table: table, ids: []domain.ThreadId{}, users: []domain.User{}}
}

// Load replaces the whole collection. Prior vote state is not preserved.
func (s *ThreadListStore) Load(threads []domain.Thread) {
	for _, id := range s.ids {
		s.table.release(id)
	}
	s.ids = make([]domain.ThreadId, 0, len(threads))
	for _, t := range threads {
		s.table.hold(t)
		s.ids = append(s.ids, t.Id)
	}
}

func (s *ThreadListStore) SetUsers(users []domain.User) {
	s.users = slices.Clone(users)
	if s.users == nil {
		s.users = []domain.User{}
	}
}

// AddThread prepends thread, resolving its creator from the known users.
// The creator stays absent when the owner is not known yet. A thread the list
// already shows is replaced and moved to the front.
func (s *ThreadListStore) AddThread(thread domain.Thread) {
	thread.Creator = domain.FindUser(s.users, thread.OwnerId)
	if s.holds(thread.Id) {
		s.table.replace(thread)
		s.ids = slices.DeleteFunc(s.ids, func(id domain.ThreadId) bool { return id == thread.Id })
	} else {
		s.table.hold(thread)
	}
	s.ids = slices.Insert(s.ids, 0, thread.Id)
}

func (s *ThreadListStore) holds(id domain.ThreadId) bool {
	return slices.Contains(s.ids, id)
}

// ApplyVote reconciles vote into threadId if the list shows it.
func (s *ThreadListStore) ApplyVote(threadId domain.ThreadId, vote domain.Vote) bool {
	if !s.holds(threadId) {
		return false
	}
	t := s.table.get(threadId)
	if t == nil {
		return false
	}
	domain.ApplyVote(&t.Votes, vote.UserId, vote.Direction)
	return true
}

func (s *ThreadListStore) reset() {
	s.Load(nil)
	s.users = []domain.User{}
	s.loading.clear()
	s.posting.clear()
	s.voting.clear()
	s.err = ""
}

func (s *ThreadListStore) Snapshot() ThreadList {
	threads := make([]domain.Thread, 0, len(s.ids))
	for _, id := range s.ids {
		if t := s.table.get(id); t != nil {
			threads = append(threads, t.Clone())
		}
	}
	return ThreadList{
		Threads: threads,
		Users:   slices.Clone(s.users),
		Loading: s.loading.active(),
		Posting: s.posting.active(),
		Voting:  s.voting.active(),
		Error:   s.err,
	}
}

// ThreadList is a deep copy of the list view.
type ThreadList struct {
	Threads []domain.Thread `json:"threads"`
	Users   []domain.User   `json:"users"`
	Loading bool            `json:"loading"`
	Posting bool            `json:"posting"`
	Voting  bool            `json:"voting"`
	Error   string          `json:"error,omitempty"`
}

// Categories lists the distinct non-empty categories in first-seen order.
func (l ThreadList) Categories() []domain.Category {
	categories := []domain.Category{}
	for _, t := range l.Threads {
		if t.Category != "" && !slices.Contains(categories, t.Category) {
			categories = append(categories, t.Category)
		}
	}
	return categories
}

// InCategory filters the threads by category. An empty category keeps all of them.
func (l ThreadList) InCategory(category domain.Category) []domain.Thread {
	if category == "" {
		return l.Threads
	}
	out := []domain.Thread{}
	for _, t := range l.Threads {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// withCreators resolves each thread's creator against users.
func withCreators(threads []domain.Thread, users []domain.User) []domain.Thread {
	out := make([]domain.Thread, len(threads))
	for i, t := range threads {
		t.Creator = domain.FindUser(users, t.OwnerId)
		out[i] = t
	}
	return out
}
