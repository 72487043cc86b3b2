package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/arjunkrishnadas/expense-tracker/internal/config"
	"github.com/arjunkrishnadas/expense-tracker/internal/database"
	"github.com/arjunkrishnadas/expense-tracker/utils"
)

func main() {
	numUsers := flag.Int("users", 5, "number of demo users to create")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	if err := utils.SeedDemoData(context.Background(), pool, *numUsers); err != nil {
		log.Fatalf("seeding demo data: %v", err)
	}
	log.Println("demo data seeded")
}
