package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brickengine/publisher/cmd/publisher/models"
	"github.com/brickengine/publisher/common/db"
)

// GameRepository handles database operations for published games
type GameRepository struct {
	db *db.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *db.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a published game version and fills in the store-assigned
// id and creation time
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (game_id, name, version, bundle_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		game.GameID,
		game.Name,
		game.Version,
		game.BundleURL,
	).Scan(&game.ID, &game.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	return nil
}

// GetByGameVersion retrieves a published game by its (game_id, version)
// pair. Returns (nil, nil) when no such row exists.
func (r *GameRepository) GetByGameVersion(ctx context.Context, gameID, version string) (*models.Game, error) {
	query := `
		SELECT id, game_id, name, version, bundle_url, created_at
		FROM games
		WHERE game_id = $1 AND version = $2
		LIMIT 1
	`

	game := &models.Game{}
	err := r.db.QueryRow(ctx, query, gameID, version).Scan(
		&game.ID,
		&game.GameID,
		&game.Name,
		&game.Version,
		&game.BundleURL,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get game %s/%s: %w", gameID, version, err)
	}

	return game, nil
}

// ListByNewest lists all published games, newest first
func (r *GameRepository) ListByNewest(ctx context.Context) ([]*models.Game, error) {
	query := `
		SELECT id, game_id, name, version, bundle_url, created_at
		FROM games
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID,
			&game.GameID,
			&game.Name,
			&game.Version,
			&game.BundleURL,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return games, nil
}
