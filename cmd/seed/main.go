package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/danisworo/taskhub/config"
	"github.com/danisworo/taskhub/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@taskhub.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Demo User").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	seedTasks := []struct {
		title       string
		description string
		completed   bool
	}{
		{"Buy milk", "2 liters, semi-skimmed", false},
		{"Write weekly report", "", true},
		{"Book dentist appointment", "ask about the evening slot", false},
	}
	for _, t := range seedTasks {
		var taskID int64
		err := db.QueryRow(`
			INSERT INTO tasks (title, description, completed, user_id)
			VALUES ($1, NULLIF($2, ''), $3, $4)
			RETURNING id
		`, t.title, t.description, t.completed, id).Scan(&taskID)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
		fmt.Printf("seeded task: id=%d title=%q completed=%v\n", taskID, t.title, t.completed)
	}
}
