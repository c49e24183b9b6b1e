package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/movies"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register creates a new identity record with the default user role. The
// email is normalized to lower case; the unique email index turns a
// duplicate registration into a conflict.
func Register(db *mongodb.DB, ctx context.Context, req NewUserRequest) (User, error) {
	if err := validate.Struct(req); err != nil {
		return User{}, validationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}

	userDb := mongodb.UserDb{
		Id:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         "user",
		IsBanned:     false,
	}

	newUser, err := db.AddUser(ctx, userDb)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}

	return MapDbUserToApiUser(newUser), nil
}

// Login verifies the credentials and issues an access token carrying the
// user's role claim. Banned users cannot log in.
func Login(db *mongodb.DB, ctx context.Context, email, password, tokenSecret string) (string, error) {
	userDb, err := db.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return "", auth.ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.CheckPasswordHash(userDb.PasswordHash, password); err != nil {
		return "", auth.ErrInvalidCredentials
	}

	if userDb.IsBanned {
		return "", auth.ErrUserBanned
	}

	return auth.MakeJWT(userDb.Id, userDb.Role, tokenSecret, auth.TokenTTL)
}

func GetUserById(db *mongodb.DB, ctx context.Context, userId string) (User, error) {
	userDb, err := db.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	return MapDbUserToApiUser(userDb), nil
}

func ListUsers(db *mongodb.DB, ctx context.Context) ([]User, error) {
	usersDb, err := db.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	allUsers := make([]User, 0, len(usersDb))
	for _, userDb := range usersDb {
		allUsers = append(allUsers, MapDbUserToApiUser(userDb))
	}

	return allUsers, nil
}

func SetBanned(db *mongodb.DB, ctx context.Context, userId string, banned bool) (User, error) {
	updated, err := db.UpdateUserFields(ctx, userId, bson.M{"isBanned": banned})
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	return MapDbUserToApiUser(updated), nil
}

func SetAdmin(db *mongodb.DB, ctx context.Context, userId string, admin bool) (User, error) {
	role := "user"
	if admin {
		role = auth.RoleAdmin
	}

	updated, err := db.UpdateUserFields(ctx, userId, bson.M{"role": role})
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	return MapDbUserToApiUser(updated), nil
}

// DeleteUser removes the identity record together with the user's ratings
// and watchlist entries, then recomputes the aggregates of every movie the
// user had rated.
func DeleteUser(db *mongodb.DB, ctx context.Context, userId string) error {
	deleted, err := db.DeleteUserById(ctx, userId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	movieIds, err := db.DeleteRatingsByUserId(ctx, userId)
	if err != nil {
		return err
	}

	if _, err := db.ClearWatchlistByUserId(ctx, userId); err != nil {
		return err
	}

	for _, movieId := range movieIds {
		if err := movies.RecomputeRatingStats(db, ctx, movieId); err != nil {
			return err
		}
	}

	return nil
}

// UpdateMetadata applies the user-editable profile fields.
func UpdateMetadata(db *mongodb.DB, ctx context.Context, userId string, req UpdateMetadataRequest) (User, error) {
	if err := validate.Struct(req); err != nil {
		return User{}, validationError(err)
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.AvatarUrl != nil {
		fields["avatarUrl"] = *req.AvatarUrl
	}

	if len(fields) == 0 {
		return User{}, ErrEmptyMetadata
	}

	updated, err := db.UpdateUserFields(ctx, userId, fields)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	return MapDbUserToApiUser(updated), nil
}
