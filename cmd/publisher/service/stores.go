package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brickengine/publisher/cmd/publisher/models"
)

// RequestStore is the persistence contract for submission requests.
// Implemented by repository.GameRequestRepository.
type RequestStore interface {
	Create(ctx context.Context, req *models.GameRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameRequest, error)
	// MarkApproved and MarkRejected are conditional updates: they only touch
	// rows that are still pending and report whether a row was matched.
	MarkApproved(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, id uuid.UUID, at time.Time, reason string) (bool, error)
}

// GameStore is the persistence contract for published games.
// Implemented by repository.GameRepository.
type GameStore interface {
	Create(ctx context.Context, game *models.Game) error
	GetByGameVersion(ctx context.Context, gameID, version string) (*models.Game, error)
	ListByNewest(ctx context.Context) ([]*models.Game, error)
}
