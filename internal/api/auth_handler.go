package api

import (
	"encoding/json"
	"net/http"

	"github.com/its-m4npreet/CriticScore-sub000/internal/auth"
	"github.com/its-m4npreet/CriticScore-sub000/internal/logx"
	"github.com/its-m4npreet/CriticScore-sub000/internal/services/users"
)

func (api *API) Register(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var req users.NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	newUser, err := users.Register(api.Db, r.Context(), req)
	if err != nil {
		if respondWithDomainError(w, err, users.ErrorMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusCreated, newUser)
}

func (api *API) Login(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	token, err := users.Login(api.Db, r.Context(), req.Email, req.Password, api.TokenSecret)
	if err != nil {
		if respondWithDomainError(w, err, auth.ErrorsMap) {
			return
		}
		logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, auth.LoginResponse{AccessToken: token})
}
