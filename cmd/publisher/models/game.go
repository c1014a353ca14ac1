package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is one published, catalog-visible version. Rows are created by
// approval only and never updated or deleted; several rows may share a
// game_id, one per approved version.
type Game struct {
	ID        uuid.UUID `json:"id"`
	GameID    string    `json:"game_id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	BundleURL string    `json:"bundle_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogEntry is the public listing shape: one entry per game, pointing
// at its newest approved version.
type CatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
