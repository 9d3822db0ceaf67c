package domain

import (
	"fmt"
	"time"
)

func (t Thread) Clone() Thread {
	out := t
	out.Votes = t.Votes.Clone()
	if t.Creator != nil {
		creator := *t.Creator
		out.Creator = &creator
	}
	return out
}

func (c Comment) Clone() Comment {
	out := c
	out.Votes = c.Votes.Clone()
	return out
}

func CloneComments(comments []Comment) []Comment {
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = c.Clone()
	}
	return out
}

func (d ThreadDetail) Clone() ThreadDetail {
	return ThreadDetail{
		Thread:   d.Thread.Clone(),
		Owner:    d.Owner,
		Comments: CloneComments(d.Comments),
	}
}

// for debug
func (t *Thread) String() string {
	return fmt.Sprintf("[id:%s, title:%s, category:%s, owner:%s, created:%s, up:%v, down:%v, comments:%d]",
		t.Id, t.Title, t.Category, t.OwnerId, t.CreatedAt.Format(time.StampMilli), t.UpVotesBy, t.DownVotesBy, t.TotalComments)
}

func (c *Comment) String() string {
	return fmt.Sprintf("[id:%s, thread:%s, owner:%s, content:%s, up:%v, down:%v]",
		c.Id, c.ThreadId, c.Owner.Id, c.Content, c.UpVotesBy, c.DownVotesBy)
}
