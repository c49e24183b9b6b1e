package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/its-m4npreet/CriticScore-sub000/internal/api"
	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
)

type contextKey string

const requestIdKey contextKey = "requestId"

////////////////////////////////////////////////////////////////////////////
//  LOGGER MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// Creates a unique 5-character identifier
func generateRequestId() string {
	bytes := make([]byte, 3) // 3 bytes = 6 hex chars, we'll take first 5
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:5]
}

// responseRecorder wraps http.ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

/*
RequestIdMiddleware creates a unique request ID for each request and stores it in the context.
Creates a logger with the request ID prefixed to all log messages and stores it in the context.
- Log prefix format: [RequestId][Method:Endpoint]
- Logs when recive a request
- Logs when returns the response with time the request take and status code

Handlers can retrieve the logger using logx.FromContext(r.Context()).
Returns an http.Handler that wraps the next handler.
*/
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := generateRequestId()
		startTime := time.Now()

		logger := log.New(os.Stdout, "["+requestId+"]["+r.Method+":"+r.URL.Path+"] - ", log.LstdFlags)

		logger.Printf("Request received...")

		ctx := context.WithValue(r.Context(), requestIdKey, requestId)
		ctx = logx.WithLogger(ctx, logger)
		r = r.WithContext(ctx)

		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(startTime)
		if duration > time.Second {
			logger.Printf("Request completed in %.2fs (status %d)", duration.Seconds(), recorder.statusCode)
		} else {
			logger.Printf("Request completed in %dms (status %d)", duration.Milliseconds(), recorder.statusCode)
		}
	})
}

////////////////////////////////////////////////////////////////////////////
//  AUTHENTICATION MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// resolveUser validates the bearer token and loads the identity record.
func resolveUser(tokenSecret string, db *mongodb.DB, r *http.Request) (mongodb.UserDb, error) {
	tokenString, err := auth.GetBearerToken(r.Header)
	if err != nil {
		return mongodb.UserDb{}, err
	}

	userId, _, err := auth.ValidateJWT(tokenString, tokenSecret)
	if err != nil {
		return mongodb.UserDb{}, err
	}

	userDb, err := db.GetUserById(r.Context(), userId)
	if err != nil {
		if err == mongodb.ErrRecordNotFound {
			return mongodb.UserDb{}, auth.ErrInvalidToken
		}
		return mongodb.UserDb{}, err
	}
	if userDb.IsBanned {
		return mongodb.UserDb{}, auth.ErrUserBanned
	}

	return userDb, nil
}

// RequireAuth rejects requests without a valid token or with a banned user.
func RequireAuth(tokenSecret string, db *mongodb.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userDb, err := resolveUser(tokenSecret, db, r)
		if err != nil {
			api.RespondWithUnauthorized(w, authFailure(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userDb)))
	}
}

// authFailure keeps the error body contract for token failures coming out of
// the jwt library, which are not this package's sentinels.
func authFailure(err error) error {
	if _, ok := auth.ErrorsMap[err]; ok {
		return err
	}
	return auth.ErrInvalidToken
}

// RequireAdmin is RequireAuth plus the admin role check.
func RequireAdmin(tokenSecret string, db *mongodb.DB, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(tokenSecret, db, func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			api.RespondWithForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OptionalAuth resolves the caller when a token is presented but lets
// anonymous requests through; public listings use it so admins see hidden
// movies.
func OptionalAuth(tokenSecret string, db *mongodb.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		userDb, err := resolveUser(tokenSecret, db, r)
		if err != nil {
			api.RespondWithUnauthorized(w, authFailure(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userDb)))
	}
}
