package api

import (
	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
)

type API struct {
	Db          *mongodb.DB
	TokenSecret string
}

func NewAPI(db *mongodb.DB, tokenSecret string) *API {
	return &API{Db: db, TokenSecret: tokenSecret}
}
