package domain

import "time"

type CommentCreationData struct {
	ThreadId ThreadId
	Content  CommentText
}

type Comment struct {
	Id        CommentId `json:"id"`
	ThreadId  ThreadId  `json:"threadId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     User      `json:"owner"`
	Votes
}
