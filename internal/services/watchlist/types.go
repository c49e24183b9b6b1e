package watchlist

import "time"

type WatchlistEntry struct {
	Id      string    `json:"id"`
	UserId  string    `json:"userId"`
	MovieId string    `json:"movieId"`
	AddedAt time.Time `json:"addedAt"`
}

type AddToWatchlistRequest struct {
	MovieId string `json:"movieId"`
}

type WatchlistResponse struct {
	Entries []WatchlistEntry `json:"entries"`
}

type WatchlistCheckResponse struct {
	InWatchlist bool `json:"inWatchlist"`
}

type ClearWatchlistResponse struct {
	Deleted int64 `json:"deleted"`
}
