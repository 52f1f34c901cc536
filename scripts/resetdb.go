package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Dev helper: wipes all game data so the server reseeds defaults on next
// start. Run with: go run scripts/resetdb.go
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	tables := []string{
		"wheel_spins",
		"game_stats",
		"upgrades",
		"game_settings",
		"users",
	}

	for _, table := range tables {
		result, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
		rows, _ := result.RowsAffected()
		fmt.Printf("Cleared %s (%d rows)\n", table, rows)
	}

	fmt.Println("Done. Restart the server to reseed default game settings.")
}
