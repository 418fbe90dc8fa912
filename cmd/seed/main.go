package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/raihansp/wishwell/config"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// Seeds a demo account and a handful of catalog wishes for local
// development. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@wishwell.dev"
	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (email, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%s email=%s username=%s password=%s\n", id, email, username, password)

	// A few catalog wishes to stage and share
	wishes := []struct {
		name, description string
	}{
		{"Bike", "Red city bike, 21 gears"},
		{"Book", "Any good science fiction"},
		{"Headphones", "Over-ear, noise cancelling"},
	}
	for _, w := range wishes {
		var wishID string
		err := db.QueryRow(`
			SELECT id FROM wishes WHERE name = $1 ORDER BY added_at LIMIT 1
		`, w.name).Scan(&wishID)
		if err == sql.ErrNoRows {
			if err := db.QueryRow(`
				INSERT INTO wishes (name, description) VALUES ($1, $2) RETURNING id
			`, w.name, w.description).Scan(&wishID); err != nil {
				log.Fatalf("failed to seed wish %q: %v", w.name, err)
			}
		} else if err != nil {
			log.Fatalf("failed to look up wish %q: %v", w.name, err)
		}
		fmt.Printf("wish ensured: id=%s name=%s\n", wishID, w.name)
	}
}
