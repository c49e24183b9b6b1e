package users

import (
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
)

func MapDbUserToApiUser(userDb mongodb.UserDb) User {
	return User{
		Id:        userDb.Id,
		Email:     userDb.Email,
		Name:      userDb.Name,
		AvatarUrl: userDb.AvatarUrl,
		Role:      userDb.Role,
		IsBanned:  userDb.IsBanned,
		CreatedAt: userDb.CreatedAt,
		UpdatedAt: userDb.UpdatedAt,
	}
}
