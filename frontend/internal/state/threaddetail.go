package state

import (
	"slices"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// ThreadDetailStore is the single open thread with its comments, newest first.
// The thread itself lives in the entity table shared with the list view.
type ThreadDetailStore struct {
	table    *entityTable
	active   domain.ThreadId // empty when no thread is open
	owner    domain.User
	comments []domain.Comment

	loading   busy
	uploading busy
	voting    busy
	err       string
}

// NewThreadDetailStore returns a detail view over its own entity table.
func NewThreadDetailStore() *ThreadDetailStore {
	return newThreadDetailStore(newEntityTable())
}

func newThreadDetailStore(table *entityTable) *ThreadDetailStore {
	return &ThreadDetailStore{table: table}
}

// Load replaces the active thread wholesale, comments included.
func (s *ThreadDetailStore) Load(detail domain.ThreadDetail) {
	s.drop()
	s.table.hold(detail.Thread)
	s.active = detail.Id
	s.owner = detail.Owner
	s.comments = domain.CloneComments(detail.Comments)
}

// Clear closes the active thread so late events for it become no-ops.
// It also resets the loading flag and the error; fetches still in flight
// stop counting towards the flag.
func (s *ThreadDetailStore) Clear() {
	s.drop()
	s.loading.clear()
	s.err = ""
}

func (s *ThreadDetailStore) drop() {
	if s.active != "" {
		s.table.release(s.active)
	}
	s.active = ""
	s.owner = domain.User{}
	s.comments = nil
}

// Active returns the id of the open thread.
func (s *ThreadDetailStore) Active() (domain.ThreadId, bool) {
	return s.active, s.active != ""
}

func (s *ThreadDetailStore) holds(id domain.ThreadId) bool {
	return s.active != "" && s.active == id
}

func (s *ThreadDetailStore) thread() *domain.Thread {
	if s.active == "" {
		return nil
	}
	return s.table.get(s.active)
}

// ApplyThreadVote reconciles vote only if it targets the open thread.
func (s *ThreadDetailStore) ApplyThreadVote(vote domain.Vote) bool {
	if !s.holds(vote.ThreadId) {
		return false
	}
	t := s.thread()
	if t == nil {
		return false
	}
	domain.ApplyVote(&t.Votes, vote.UserId, vote.Direction)
	return true
}

// ApplyCommentVote reconciles vote into commentId of the open thread.
// A vote carrying another thread id, or a comment no longer shown, is ignored.
func (s *ThreadDetailStore) ApplyCommentVote(commentId domain.CommentId, vote domain.Vote) bool {
	if s.active == "" || (vote.ThreadId != "" && vote.ThreadId != s.active) {
		return false
	}
	for i := range s.comments {
		if s.comments[i].Id == commentId {
			domain.ApplyVote(&s.comments[i].Votes, vote.UserId, vote.Direction)
			return true
		}
	}
	return false
}

// AddComment prepends comment to the open thread.
func (s *ThreadDetailStore) AddComment(comment domain.Comment) bool {
	if s.active == "" || (comment.ThreadId != "" && comment.ThreadId != s.active) {
		return false
	}
	comment = comment.Clone()
	comment.ThreadId = s.active
	s.comments = slices.Insert(s.comments, 0, comment)
	if t := s.thread(); t != nil {
		t.TotalComments++
	}
	return true
}

// comment returns the open thread's comment with the given id.
func (s *ThreadDetailStore) comment(id domain.CommentId) *domain.Comment {
	for i := range s.comments {
		if s.comments[i].Id == id {
			return &s.comments[i]
		}
	}
	return nil
}

func (s *ThreadDetailStore) reset() {
	s.Clear()
	s.uploading.clear()
	s.voting.clear()
}

func (s *ThreadDetailStore) Snapshot() Detail {
	d := Detail{
		Loading:   s.loading.active(),
		Uploading: s.uploading.active(),
		Voting:    s.voting.active(),
		Error:     s.err,
	}
	if t := s.thread(); t != nil {
		d.Thread = &domain.ThreadDetail{
			Thread:   t.Clone(),
			Owner:    s.owner,
			Comments: domain.CloneComments(s.comments),
		}
	}
	return d
}

// Detail is a deep copy of the detail view. Thread is nil when none is open.
type Detail struct {
	Thread    *domain.ThreadDetail `json:"thread"`
	Loading   bool                 `json:"loading"`
	Uploading bool                 `json:"uploading"`
	// Voting covers comment votes only. Votes on the thread itself report
	// through ThreadList.Voting and ThreadList.Error, whichever page cast them.
	Voting    bool                 `json:"voting"`
	Error     string               `json:"error,omitempty"`
}
