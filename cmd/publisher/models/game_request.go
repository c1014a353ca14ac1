package models

import (
	"time"

	"github.com/google/uuid"
)

// BundleFilename is the only accepted upload filename
const BundleFilename = "game.bundle.js"

// BundleContentType is the content type stored with every bundle object
const BundleContentType = "application/javascript"

// GameRequest is one submission attempt by a developer. It is created
// pending and transitions exactly once to approved or rejected; after that
// the row is immutable.
type GameRequest struct {
	ID              uuid.UUID  `json:"id"`
	GameID          string     `json:"game_id"`
	GameName        string     `json:"game_name"`
	Version         string     `json:"version"`
	BundleURL       string     `json:"bundle_url"`
	DeveloperEmail  *string    `json:"developer_email,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Terminal reports whether the request has been decided
func (r *GameRequest) Terminal() bool {
	return r.ApprovedAt != nil || r.RejectedAt != nil
}

// BundleKey returns the object store key for a game version's bundle
func BundleKey(gameID, version string) string {
	return gameID + "/" + version + "/" + BundleFilename
}
