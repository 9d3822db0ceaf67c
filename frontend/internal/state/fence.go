package state

import (
	"fmt"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// fence numbers vote intents per target and user. A response changes state
// only if no newer intent for the same key has been applied already, so a
// rejected newer intent leaves the last accepted vote in place.
type fence struct {
	issued  map[string]uint64
	applied map[string]uint64
}

func newFence() *fence {
	return &fence{issued: make(map[string]uint64), applied: make(map[string]uint64)}
}

func threadVoteKey(userId domain.UserId, threadId domain.ThreadId) string {
	return fmt.Sprintf("thread:%s@%s", threadId, userId)
}

func commentVoteKey(userId domain.UserId, threadId domain.ThreadId, commentId domain.CommentId) string {
	return fmt.Sprintf("comment:%s/%s@%s", threadId, commentId, userId)
}

func (f *fence) next(key string) uint64 {
	f.issued[key]++
	return f.issued[key]
}

// accept reports whether the response for generation may be applied and,
// if so, records it as the newest applied one.
func (f *fence) accept(key string, generation uint64) bool {
	if generation <= f.applied[key] {
		return false
	}
	f.applied[key] = generation
	return true
}
