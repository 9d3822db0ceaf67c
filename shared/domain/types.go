package domain

type (
	UserId    = string
	ThreadId  = string
	CommentId = string
	VoteId    = string

	Email    = string
	Password = string

	ThreadTitle = string
	Category    = string
	Body        = string
	CommentText = string
)
