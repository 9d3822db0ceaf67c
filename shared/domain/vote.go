package domain

import (
	"fmt"
	"slices"
	"strings"
)

// VoteDirection is the effect a vote has on an entity's membership sets.
// Numeric values match the backend's voteType field.
type VoteDirection int8

const (
	VoteDown    VoteDirection = -1
	VoteNeutral VoteDirection = 0
	VoteUp      VoteDirection = 1
)

func (d VoteDirection) String() string {
	switch d {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	case VoteNeutral:
		return "neutral"
	}
	return fmt.Sprintf("VoteDirection(%d)", int8(d))
}

func ParseVoteDirection(s string) (VoteDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "1":
		return VoteUp, nil
	case "down", "-1":
		return VoteDown, nil
	case "neutral", "0", "":
		return VoteNeutral, nil
	}
	return VoteNeutral, fmt.Errorf("unknown vote direction %q", s)
}

func (d VoteDirection) MarshalText() ([]byte, error) {
	if d < VoteDown || d > VoteUp {
		return nil, fmt.Errorf("invalid vote direction %d", int8(d))
	}
	return []byte(d.String()), nil
}

func (d *VoteDirection) UnmarshalText(text []byte) error {
	parsed, err := ParseVoteDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Vote is the result of a vote intent. CommentId is empty for thread votes.
type Vote struct {
	Id        VoteId        `json:"id"`
	UserId    UserId        `json:"userId"`
	ThreadId  ThreadId      `json:"threadId"`
	CommentId CommentId     `json:"commentId,omitempty"`
	Direction VoteDirection `json:"direction"`
}

// Votes holds the membership sets of everyone who voted on an entity.
type Votes struct {
	UpVotesBy   []UserId `json:"upVotesBy"`
	DownVotesBy []UserId `json:"downVotesBy"`
}

// ApplyVote removes userId from both sets and re-inserts it according to d.
// It repairs input where userId is in both sets and is idempotent.
func ApplyVote(v *Votes, userId UserId, d VoteDirection) {
	if v == nil {
		return
	}
	isUser := func(id UserId) bool { return id == userId }
	v.UpVotesBy = slices.DeleteFunc(v.UpVotesBy, isUser)
	v.DownVotesBy = slices.DeleteFunc(v.DownVotesBy, isUser)

	switch d {
	case VoteUp:
		v.UpVotesBy = append(v.UpVotesBy, userId)
	case VoteDown:
		v.DownVotesBy = append(v.DownVotesBy, userId)
	}
}

// Direction reports how userId currently votes. Up wins if the sets are inconsistent.
func (v Votes) Direction(userId UserId) VoteDirection {
	if slices.Contains(v.UpVotesBy, userId) {
		return VoteUp
	}
	if slices.Contains(v.DownVotesBy, userId) {
		return VoteDown
	}
	return VoteNeutral
}

func (v Votes) Score() int {
	return len(v.UpVotesBy) - len(v.DownVotesBy)
}

// Toggle returns the direction to dispatch when userId presses d:
// pressing the direction already held neutralizes it.
func (v Votes) Toggle(userId UserId, d VoteDirection) VoteDirection {
	if d != VoteNeutral && v.Direction(userId) == d {
		return VoteNeutral
	}
	return d
}

func (v Votes) Clone() Votes {
	return Votes{
		UpVotesBy:   cloneIds(v.UpVotesBy),
		DownVotesBy: cloneIds(v.DownVotesBy),
	}
}

// cloneIds never returns nil so snapshots encode as [] rather than null.
func cloneIds(ids []UserId) []UserId {
	out := make([]UserId, len(ids))
	copy(out, ids)
	return out
}
