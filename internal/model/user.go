package model

// User is a stored credential record.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Identity is the user snapshot embedded in an access token.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Identity returns the token-safe view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}
