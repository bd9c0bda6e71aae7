package auth

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the domain entity.
type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Role      string
	CreatedAt time.Time

	// IsSubscribed is relative to the viewer that loaded the user.
	IsSubscribed bool
}

// Profile is the public view of a user.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}
