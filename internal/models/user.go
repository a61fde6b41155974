package models

import "time"

// Role values stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row. OpenID is the opaque identity issued by the
// external OAuth portal and is the natural key for login.
type User struct {
	ID           int64     `json:"id"`
	OpenID       string    `json:"openId"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	LoginMethod  *string   `json:"loginMethod"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

// UserIdentity is the verified identity payload the OAuth portal hands us
// after a successful login. Only OpenID is guaranteed to be present.
type UserIdentity struct {
	OpenID      string  `json:"openId" binding:"required"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	LoginMethod *string `json:"loginMethod"`
}
