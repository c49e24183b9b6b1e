package main

import (
	"context"
	"log"

	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/its-m4npreet/CriticScore-sub000/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	client := mongodb.ConnectMongo(ctx)
	defer client.Disconnect(ctx)

	if err := server.ListenAndServe(client); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
