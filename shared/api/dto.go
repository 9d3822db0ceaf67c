package api

import (
	"time"

	"github.com/itchan-dev/forumstate/shared/domain"
)

// Request DTOs validated before an intent reaches the backend

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateThreadRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type VoteRequest struct {
	Direction domain.VoteDirection `json:"direction"`
}

// Envelope wraps every backend response.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

const StatusSuccess = "success"

type TokenData struct {
	Token string `json:"token"`
}

type UserData struct {
	User domain.User `json:"user"`
}

type UsersData struct {
	Users []domain.User `json:"users"`
}

type ThreadData struct {
	Thread domain.Thread `json:"thread"`
}

type ThreadsData struct {
	Threads []domain.Thread `json:"threads"`
}

type DetailThreadData struct {
	DetailThread DetailThreadResponse `json:"detailThread"`
}

type CommentData struct {
	Comment CommentResponse `json:"comment"`
}

type VoteData struct {
	Vote VoteResponse `json:"vote"`
}

type LeaderboardsData struct {
	Leaderboards []domain.LeaderboardEntry `json:"leaderboards"`
}

type DetailThreadResponse struct {
	Id          domain.ThreadId   `json:"id"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Category    string            `json:"category"`
	CreatedAt   time.Time         `json:"createdAt"`
	Owner       domain.User       `json:"owner"`
	UpVotesBy   []domain.UserId   `json:"upVotesBy"`
	DownVotesBy []domain.UserId   `json:"downVotesBy"`
	Comments    []CommentResponse `json:"comments"`
}

type CommentResponse struct {
	Id          domain.CommentId `json:"id"`
	Content     string           `json:"content"`
	CreatedAt   time.Time        `json:"createdAt"`
	Owner       domain.User      `json:"owner"`
	UpVotesBy   []domain.UserId  `json:"upVotesBy"`
	DownVotesBy []domain.UserId  `json:"downVotesBy"`
}

type VoteResponse struct {
	Id        domain.VoteId    `json:"id"`
	UserId    domain.UserId    `json:"userId"`
	ThreadId  domain.ThreadId  `json:"threadId,omitempty"`
	CommentId domain.CommentId `json:"commentId,omitempty"`
	VoteType  int              `json:"voteType"`
}
