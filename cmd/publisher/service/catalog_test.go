package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickengine/publisher/cmd/publisher/models"
	"github.com/brickengine/publisher/common/logger"
)

func seedGame(t *testing.T, games *fakeGameStore, gameID, name, version, url string, createdAt time.Time) {
	t.Helper()
	game := &models.Game{
		GameID:    gameID,
		Name:      name,
		Version:   version,
		BundleURL: url,
		CreatedAt: createdAt,
	}
	require.NoError(t, games.Create(context.Background(), game))
}

func TestCatalogListNewestVersionWins(t *testing.T) {
	games := newFakeGameStore()
	now := time.Now()

	seedGame(t, games, "pong", "Pong", "1.0.0", "https://cdn.example.com/game-bundles/pong/1.0.0/game.bundle.js", now.Add(-2*time.Hour))
	seedGame(t, games, "snake", "Snake", "1.0.0", "https://cdn.example.com/game-bundles/snake/1.0.0/game.bundle.js", now.Add(-time.Hour))
	seedGame(t, games, "pong", "Pong", "2.0.0", "https://cdn.example.com/game-bundles/pong/2.0.0/game.bundle.js", now)

	svc := NewCatalogService(games, logger.New("error", "text"))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest row first, one entry per game_id
	assert.Equal(t, models.CatalogEntry{
		ID:   "pong",
		Name: "Pong",
		URL:  "https://cdn.example.com/game-bundles/pong/2.0.0/game.bundle.js",
	}, entries[0])
	assert.Equal(t, models.CatalogEntry{
		ID:   "snake",
		Name: "Snake",
		URL:  "https://cdn.example.com/game-bundles/snake/1.0.0/game.bundle.js",
	}, entries[1])
}

func TestCatalogListEmpty(t *testing.T) {
	svc := NewCatalogService(newFakeGameStore(), logger.New("error", "text"))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCatalogListStoreFailure(t *testing.T) {
	games := newFakeGameStore()
	games.listErr = errStoreDown

	svc := NewCatalogService(games, logger.New("error", "text"))

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, errStoreDown)
}
