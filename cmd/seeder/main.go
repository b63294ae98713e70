package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	name        string
	squadNumber int
	role        string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	roster := []seedPlayer{
		{"Seeder Keeper", 1, "GK"},
		{"Seeder Back A", 2, "DF"},
		{"Seeder Back B", 3, "DF"},
		{"Seeder Back C", 4, "DF"},
		{"Seeder Back D", 5, "DF"},
		{"Seeder Mid A", 6, "MF"},
		{"Seeder Mid B", 8, "MF"},
		{"Seeder Mid C", 10, "MF"},
		{"Seeder Mid D", 14, "MF"},
		{"Seeder Forward A", 9, "FW"},
		{"Seeder Forward B", 11, "FW"},
	}

	playerIDs := make([]string, 0, len(roster))
	for _, p := range roster {
		id := uuid.NewString()
		playerIDs = append(playerIDs, id)
		_, err := db.Exec(
			"INSERT OR IGNORE INTO players (id, name, squad_number, preferred_role) VALUES (?, ?, ?, ?)",
			id, p.name, p.squadNumber, p.role,
		)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured dummy players exist.", "count", len(roster))

	matchID := uuid.NewString()
	log.Info("Seeding a demo match...", "matchID", matchID)

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	_, err = tx.Exec(`
		INSERT INTO formations (match_id, match_number, team_a_template, team_b_template, team_a_strategy, team_b_strategy, opponent_name)
		VALUES (?, 1, '4-4-2', '4-3-3', 'Press high after losses', '', 'Riverside FC');`,
		matchID,
	)
	if err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert demo formation: %s", err)
	}

	// Two scorers with stored clock labels plus one opponent goal. The
	// forward's second goal predates timestamp capture, so its list is
	// shorter than its counter on purpose.
	entries := []struct {
		playerID   string
		playerName string
		isOpponent int
		team       string
		goals      int
		assists    int
		goalTs     any
		assistTs   any
		x, y       any
	}{
		{playerIDs[9], roster[9].name, 0, "A", 2, 0, "오전 10:12:30", nil, 43.0, 35.0},
		{playerIDs[7], roster[7].name, 0, "A", 0, 2, nil, "오전 10:12:30,오후 3:05:00", 34.0, 50.0},
		{playerIDs[10], roster[10].name, 0, "A", 1, 0, "오후 3:05:00", nil, 43.0, 65.0},
		{"Riverside FC", "Riverside FC", 1, "B", 1, 0, "오후 3:40:11", nil, nil, nil},
	}
	for _, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO match_entries (match_id, match_number, player_id, player_name, is_opponent, team, goals, assists, goal_timestamps, assist_timestamps, position_x, position_y)
			VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			matchID, e.playerID, e.playerName, e.isOpponent, e.team, e.goals, e.assists, e.goalTs, e.assistTs, e.x, e.y,
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert demo entry for %s: %s", e.playerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	log.Info("Successfully seeded demo match.", "matchID", matchID, "entries", len(entries))
}
