package domain

type User struct {
	Id     UserId `json:"id"`
	Name   string `json:"name"`
	Email  Email  `json:"email,omitempty"`
	Avatar string `json:"avatar"`
}

// FindUser returns the user with the given id, nil if users does not contain it.
func FindUser(users []User, id UserId) *User {
	for i := range users {
		if users[i].Id == id {
			u := users[i]
			return &u
		}
	}
	return nil
}

type LeaderboardEntry struct {
	User  User `json:"user"`
	Score int  `json:"score"`
}
