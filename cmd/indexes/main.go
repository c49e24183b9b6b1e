package main

import (
	"context"
	"flag"
	"log"

	"github.com/its-m4npreet/CriticScore-sub000/internal/mongodb"
	"github.com/joho/godotenv"
)

// Bootstraps (or resets) the unique and text indexes without starting the
// server.
func main() {
	godotenv.Load()

	reset := flag.Bool("reset", false, "drop and recreate indexes that already exist")
	flag.Parse()

	ctx := context.Background()
	client := mongodb.ConnectMongo(ctx)
	defer client.Disconnect(ctx)

	db := client.Database(mongodb.GetDatabaseName())
	if err := mongodb.CreateAllIndexes(ctx, db, *reset); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Indexes are in place")
}
