package api

import "github.com/itchan-dev/forumstate/shared/domain"

func (c CommentResponse) ToDomain(threadId domain.ThreadId) domain.Comment {
	return domain.Comment{
		Id:        c.Id,
		ThreadId:  threadId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Owner:     c.Owner,
		Votes:     domain.Votes{UpVotesBy: c.UpVotesBy, DownVotesBy: c.DownVotesBy}.Clone(),
	}
}

func (d DetailThreadResponse) ToDomain() domain.ThreadDetail {
	owner := d.Owner
	comments := make([]domain.Comment, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = c.ToDomain(d.Id)
	}
	return domain.ThreadDetail{
		Thread: domain.Thread{
			Id:            d.Id,
			Title:         d.Title,
			Body:          d.Body,
			Category:      d.Category,
			CreatedAt:     d.CreatedAt,
			OwnerId:       owner.Id,
			Creator:       &owner,
			Votes:         domain.Votes{UpVotesBy: d.UpVotesBy, DownVotesBy: d.DownVotesBy}.Clone(),
			TotalComments: len(comments),
		},
		Owner:    d.Owner,
		Comments: comments,
	}
}

// ToDomain targets the vote at the ids the request was issued for.
// Comment votes come back without a threadId.
func (v VoteResponse) ToDomain(threadId domain.ThreadId, commentId domain.CommentId) domain.Vote {
	if threadId == "" {
		threadId = v.ThreadId
	}
	if commentId == "" {
		commentId = v.CommentId
	}
	return domain.Vote{
		Id:        v.Id,
		UserId:    v.UserId,
		ThreadId:  threadId,
		CommentId: commentId,
		Direction: directionOf(v.VoteType),
	}
}

func directionOf(voteType int) domain.VoteDirection {
	switch {
	case voteType > 0:
		return domain.VoteUp
	case voteType < 0:
		return domain.VoteDown
	default:
		return domain.VoteNeutral
	}
}
