package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	Role              string    `json:"role"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	PhoneNumber       string    `json:"phoneNumber"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
