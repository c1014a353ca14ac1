package service

import (
	"context"
	"fmt"

	"github.com/brickengine/publisher/cmd/publisher/models"
	"github.com/brickengine/publisher/common/logger"
)

// CatalogService derives the public listing from the games table. It is a
// pure projection with no state of its own.
type CatalogService struct {
	games GameStore
	log   *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(games GameStore, log *logger.Logger) *CatalogService {
	return &CatalogService{
		games: games,
		log:   log,
	}
}

// List returns one entry per distinct game_id, each pointing at the newest
// approved version. Rows arrive newest first, so the first occurrence of a
// game_id wins.
func (s *CatalogService) List(ctx context.Context) ([]models.CatalogEntry, error) {
	games, err := s.games.ListByNewest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}

	seen := make(map[string]struct{}, len(games))
	entries := make([]models.CatalogEntry, 0, len(games))

	for _, game := range games {
		if _, ok := seen[game.GameID]; ok {
			continue
		}
		seen[game.GameID] = struct{}{}
		entries = append(entries, models.CatalogEntry{
			ID:   game.GameID,
			Name: game.Name,
			URL:  game.BundleURL,
		})
	}

	return entries, nil
}
