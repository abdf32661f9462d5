package main

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/ignite/delivery-monitor/internal/database"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		if err := database.RunMigrations(dsn); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("Migrations applied")
	case "down":
		m, err := database.NewMigrator(dsn)
		if err != nil {
			log.Fatalf("create migrator: %v", err)
		}
		defer m.Close()
		if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("Rolled back one migration")
	default:
		log.Fatalf("unknown direction %q (want up or down)", direction)
	}
}
