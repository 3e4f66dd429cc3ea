// Command seed populates the database with demo users, warbles, follows
// and likes.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.WarblesPerUser, "warbles", opts.WarblesPerUser, "warbles per user")
	flag.Float64Var(&opts.FollowProbability, "follow-p", opts.FollowProbability, "probability of a follow edge between any user pair")
	flag.Float64Var(&opts.LikeProbability, "like-p", opts.LikeProbability, "probability of a user liking any warble")
	flag.StringVar(&opts.Password, "password", opts.Password, "shared plaintext password for seeded users")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
