package domain

import (
	"time"
)

// to iterate thru layers: intent -> backend
type ThreadCreationData struct {
	Title    ThreadTitle
	Body     Body
	Category Category
}

type Thread struct {
	Id        ThreadId  `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerId   UserId    `json:"ownerId"`
	Creator   *User     `json:"creator,omitempty"` // resolved from known users, may be absent
	Votes
	TotalComments int `json:"totalComments"`
}

// ThreadDetail is a thread together with its comments, newest first.
type ThreadDetail struct {
	Thread
	Owner    User      `json:"owner"`
	Comments []Comment `json:"comments"`
}
