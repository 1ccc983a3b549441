package postgres

import (
	"database/sql"

	"wordballs/internal/domain"

	"github.com/lib/pq"
)

// PlayerRepo implements repository.PlayerRepository
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a new player repository
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// EnsurePlayerExists creates player with default settings if not exists
func (r *PlayerRepo) EnsurePlayerExists(playerID int64, language string) error {
	query := `
		INSERT INTO players (player_id, language)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO NOTHING
	`
	_, err := r.db.Exec(query, playerID, language)
	return err
}

// GetPlayer returns the player or nil if not found
func (r *PlayerRepo) GetPlayer(playerID int64) (*domain.Player, error) {
	var p domain.Player
	query := `
		SELECT player_id, language, categories, sentence_mode, created_at
		FROM players
		WHERE player_id = $1
	`
	err := r.db.QueryRow(query, playerID).Scan(
		&p.PlayerID, &p.Language, pq.Array(&p.Categories), &p.SentenceMode, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateSettings stores language, category filter and sentence mode
func (r *PlayerRepo) UpdateSettings(player *domain.Player) error {
	query := `
		INSERT INTO players (player_id, language, categories, sentence_mode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id)
		DO UPDATE SET language = $2, categories = $3, sentence_mode = $4
	`
	_, err := r.db.Exec(query, player.PlayerID, player.Language, pq.Array(player.Categories), player.SentenceMode)
	return err
}
