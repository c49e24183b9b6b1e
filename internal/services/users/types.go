package users

import "time"

// User is the API projection of an identity record; the password hash never
// leaves the service layer.
type User struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarUrl *string   `json:"avatarUrl,omitempty"`
	Role      string    `json:"role"`
	IsBanned  bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateMetadataRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	AvatarUrl *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

type AllUsersResponse struct {
	Users []User `json:"users"`
}
