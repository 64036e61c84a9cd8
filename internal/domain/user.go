package domain

import "time"

// User represents a registered account.
type User struct {
	ID             string    `json:"id"         db:"id"`
	Username       string    `json:"username"   db:"username"`
	Email          string    `json:"email"      db:"email"`
	HashedPassword string    `json:"-"          db:"hashed_password"` // never serialized to JSON
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UserResponse is the public view of a User.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Response converts the user into its public representation.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Token is returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserContext is the authenticated user context injected into request handlers.
type UserContext struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
