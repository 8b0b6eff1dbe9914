package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const tableName = "high_scores"

type Score struct {
	ID         int
	PlayerName string
	Score      int
	Ticks      int
	CreatedAt  time.Time
}

// NewHighScoreService opens (or creates) the sqlite database at dbPath.
// ":memory:" works too; the pool is pinned to one connection so it stays a single database.
func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveHighScore(playerName string, score int, ticks int) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, ticks)
	VALUES (?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, playerName, score, ticks)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", playerName, err)
	}

	return nil
}

// GetHighScores retrieves a paginated list of scores, best first; faster runs win ties.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, ticks, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, ticks ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score

	for rows.Next() {
		var score Score
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.Ticks, &score.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}
