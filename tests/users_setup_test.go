package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// addUser registers a new user and returns it together with an access token.
func addUser(t *testing.T, req users.NewUserRequest) (users.User, string) {
	t.Helper()

	respRegister := doRequest(t, http.MethodPost, "/auth/register", req, "")
	defer respRegister.Body.Close()
	require.Equal(t, http.StatusCreated, respRegister.StatusCode)
	user := decodeBody[users.User](t, respRegister)

	respLogin := doRequest(t, http.MethodPost, "/auth/login", auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, "")
	defer respLogin.Body.Close()
	require.Equal(t, http.StatusOK, respLogin.StatusCode)
	login := decodeBody[auth.LoginResponse](t, respLogin)
	require.NotEmpty(t, login.AccessToken)

	return user, login.AccessToken
}

// promoteToAdmin flips the role directly in the database; the middleware
// reads the role from the user record, so existing tokens pick it up.
func promoteToAdmin(t *testing.T, userId string) {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.UsersCollection)

	result, err := coll.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$set": bson.M{"role": "admin"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.MatchedCount)
}

// addAdmin registers a user and promotes it to admin.
func addAdmin(t *testing.T, req users.NewUserRequest) (users.User, string) {
	t.Helper()

	user, token := addUser(t, req)
	promoteToAdmin(t, user.Id)
	return user, token
}

func getUserDb(t *testing.T, userId string) mongodb.UserDb {
	t.Helper()

	ctx := context.Background()
	coll := testClient.Database(TEST_DB_NAME).Collection(mongodb.UsersCollection)

	var userDb mongodb.UserDb
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": userId}).Decode(&userDb))
	return userDb
}
