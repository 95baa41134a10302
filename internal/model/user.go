package model

import "time"

// User is an account that owns forms and bookmarks others.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Bookmarks    []string  `json:"bookmarks" bson:"bookmarks"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the profile shape returned to clients, without the hash.
type PublicUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Bookmarks []string `json:"bookmarks"`
}

// Public strips the credential fields for API responses.
func (u *User) Public() PublicUser {
	bookmarks := u.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bookmarks: bookmarks,
	}
}
